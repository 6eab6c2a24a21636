/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/gts"
)

var validateIDFlag string

var cmdValidateID = &cobra.Command{
	Use:   "validate-id",
	Short: "Validate a GTS ID format",
	Example: `  gtsctl validate-id --gts-id gts.vendor.pkg.ns.type.v1~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("gts-id", validateIDFlag); err != nil {
			return err
		}
		return writeJSON(gts.ValidateGtsID(validateIDFlag))
	},
}

func init() {
	cmdValidateID.Flags().StringVar(&validateIDFlag, "gts-id", "", "GTS ID to validate")
}
