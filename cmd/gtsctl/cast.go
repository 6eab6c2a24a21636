/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var (
	castFromID string
	castToID   string
)

var cmdCast = &cobra.Command{
	Use:     "cast",
	Short:   "Cast an instance to a target schema version",
	Example: `  gtsctl --path ./examples cast --from-id gts.vendor.pkg.ns.type.v1.0 --to-schema-id gts.vendor.pkg.ns.type.v2~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("from-id", castFromID); err != nil {
			return err
		}
		if err := requireFlag("to-schema-id", castToID); err != nil {
			return err
		}
		store := newStore()
		result, err := store.Cast(castFromID, castToID)
		if err != nil {
			return err
		}
		return writeJSON(result)
	},
}

func init() {
	cmdCast.Flags().StringVar(&castFromID, "from-id", "", "GTS ID of the instance to cast (schema IDs are rejected)")
	cmdCast.Flags().StringVar(&castToID, "to-schema-id", "", "GTS ID of the target schema")
}
