/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"
)

var (
	queryExpr  string
	queryLimit int
)

var cmdQuery = &cobra.Command{
	Use:     "query",
	Short:   "Query entities using a GTS query expression",
	Example: `  gtsctl --path ./examples query --expr "gts.vendor.pkg.*" --limit 10`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("expr", queryExpr); err != nil {
			return err
		}
		store := newStore()
		return writeJSON(store.Query(queryExpr, queryLimit))
	},
}

func init() {
	cmdQuery.Flags().StringVar(&queryExpr, "expr", "", "query expression")
	cmdQuery.Flags().IntVar(&queryLimit, "limit", 100, "maximum number of results")
}
