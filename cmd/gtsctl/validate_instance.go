/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var validateInstanceID string

var cmdValidateInstance = &cobra.Command{
	Use:     "validate-instance",
	Short:   "Validate an instance against its resolved schema",
	Long:    "validate-instance loads the catalog from --path and checks the instance named by --gts-id against its schema.",
	Example: `  gtsctl --path ./examples validate-instance --gts-id gts.vendor.pkg.ns.type.v1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("gts-id", validateInstanceID); err != nil {
			return err
		}
		store := newStore()
		return writeJSON(store.ValidateInstance(validateInstanceID))
	},
}

func init() {
	cmdValidateInstance.Flags().StringVar(&validateInstanceID, "gts-id", "", "GTS ID of the instance")
}
