/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/gts"
)

var uuidIDFlag string

var cmdUUID = &cobra.Command{
	Use:     "uuid",
	Short:   "Derive the deterministic UUIDv5 for a GTS ID",
	Example: `  gtsctl uuid --gts-id gts.vendor.pkg.ns.type.v1~`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("gts-id", uuidIDFlag); err != nil {
			return err
		}
		return writeJSON(gts.IDToUUID(uuidIDFlag))
	},
}

func init() {
	cmdUUID.Flags().StringVar(&uuidIDFlag, "gts-id", "", "GTS ID")
}
