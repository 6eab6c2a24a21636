/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var (
	compatOld string
	compatNew string
)

var cmdCompatibility = &cobra.Command{
	Use:     "compatibility",
	Short:   "Check backward/forward compatibility between two schema versions",
	Example: `  gtsctl --path ./examples compatibility --old-schema-id gts.vendor.pkg.ns.type.v1~ --new-schema-id gts.vendor.pkg.ns.type.v2~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("old-schema-id", compatOld); err != nil {
			return err
		}
		if err := requireFlag("new-schema-id", compatNew); err != nil {
			return err
		}
		store := newStore()
		return writeJSON(store.CheckCompatibility(compatOld, compatNew))
	},
}

func init() {
	cmdCompatibility.Flags().StringVar(&compatOld, "old-schema-id", "", "GTS ID of the old schema")
	cmdCompatibility.Flags().StringVar(&compatNew, "new-schema-id", "", "GTS ID of the new schema")
}
