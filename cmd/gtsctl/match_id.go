/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/gts"
)

var (
	matchPattern   string
	matchCandidate string
)

var cmdMatchIDPattern = &cobra.Command{
	Use:     "match-id-pattern",
	Short:   "Match a GTS ID against a wildcard pattern",
	Example: `  gtsctl match-id-pattern --pattern "gts.vendor.pkg.*" --candidate gts.vendor.pkg.ns.type.v1.0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireFlag("pattern", matchPattern); err != nil {
			return err
		}
		if err := requireFlag("candidate", matchCandidate); err != nil {
			return err
		}
		return writeJSON(gts.MatchIDPattern(matchCandidate, matchPattern))
	},
}

func init() {
	cmdMatchIDPattern.Flags().StringVar(&matchPattern, "pattern", "", "pattern to match against")
	cmdMatchIDPattern.Flags().StringVar(&matchCandidate, "candidate", "", "candidate GTS ID")
}
