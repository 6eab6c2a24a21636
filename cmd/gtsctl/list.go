/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var listLimit int

var cmdList = &cobra.Command{
	Use:     "list",
	Short:   "List entities currently loaded from --path",
	Example: `  gtsctl --path ./examples list --limit 50`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := newStore()
		return writeJSON(store.List(listLimit))
	},
}

func init() {
	cmdList.Flags().IntVar(&listLimit, "limit", 100, "maximum number of results")
}
