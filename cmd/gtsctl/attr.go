/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var attrGtsWithPath string

var cmdAttr = &cobra.Command{
	Use:     "attr",
	Short:   "Get an attribute value from a GTS entity by path",
	Example: `  gtsctl --path ./examples attr --gts-with-path gts.vendor.pkg.ns.type.v1.0@name`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("gts-with-path", attrGtsWithPath); err != nil {
			return err
		}
		store := newStore()
		return writeJSON(store.GetAttribute(attrGtsWithPath))
	},
}

func init() {
	cmdAttr.Flags().StringVar(&attrGtsWithPath, "gts-with-path", "", "GTS ID with attribute path (e.g. gts.x.y.z.v1.0@field.subfield)")
}
