/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/gts"
)

var parseIDFlag string

var cmdParseID = &cobra.Command{
	Use:     "parse-id",
	Short:   "Parse a GTS ID into its components",
	Example: `  gtsctl parse-id --gts-id gts.vendor.pkg.ns.type.v1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("gts-id", parseIDFlag); err != nil {
			return err
		}
		return writeJSON(gts.ParseGtsID(parseIDFlag))
	},
}

func init() {
	cmdParseID.Flags().StringVar(&parseIDFlag, "gts-id", "", "GTS ID to parse")
}
