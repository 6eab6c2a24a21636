/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print gtsctl version",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("gtsctl version unknown")
			return nil
		}

		fmt.Printf("gtsctl version %s\n", info.Main.Version)
		if flags.verbose > 0 {
			fmt.Printf("go version %s\n", info.GoVersion)
			fmt.Printf("path %s\n", info.Path)
		}
		return nil
	},
}
