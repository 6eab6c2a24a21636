/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var relationshipsID string

var cmdRelationships = &cobra.Command{
	Use:     "resolve-relationships",
	Short:   "Build the schema relationship graph for an entity",
	Example: `  gtsctl --path ./examples resolve-relationships --gts-id gts.vendor.pkg.ns.type.v1~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("gts-id", relationshipsID); err != nil {
			return err
		}
		store := newStore()
		return writeJSON(store.BuildSchemaGraph(relationshipsID))
	},
}

func init() {
	cmdRelationships.Flags().StringVar(&relationshipsID, "gts-id", "", "GTS ID of the entity")
}
