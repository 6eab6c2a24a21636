/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

// Command gtsctl is the GTS command-line tool: identifier validation,
// schema compatibility checks, instance casting, and a catalog server over
// a tree of JSON/JSONC entity files.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	charmlog "charm.land/log/v2"
	"github.com/spf13/cobra"

	"github.com/gts-labs/gtscat/gts"
	"github.com/gts-labs/gtscat/internal/discovery"
	"github.com/gts-labs/gtscat/internal/entityconfig"
)

var logger = charmlog.New(os.Stderr)

// globalFlags mirrors the persistent flags every subcommand can see.
type globalFlags struct {
	path    string
	config  string
	verbose int
}

var flags globalFlags

var rootCmd = &cobra.Command{
	Use:           "gtsctl",
	Short:         "Catalog, validate, and cast Global Type System identifiers",
	Long:          `gtsctl parses and validates GTS identifiers, flattens and compares JSON schemas for compatibility, casts instances between schema versions, and serves a catalog of entities over HTTP.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flags.path, "path", "", "comma-separated roots (files or directories) of JSON/JSONC entities to load")
	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "path to a YAML or JSON entity-config override file")
	rootCmd.PersistentFlags().IntVarP(&flags.verbose, "verbose", "v", 0, "verbosity of the serve request log (0=off, 1=one line per request, 2=also request and response bodies)")

	rootCmd.AddCommand(
		cmdValidateID,
		cmdParseID,
		cmdMatchIDPattern,
		cmdUUID,
		cmdValidateInstance,
		cmdRelationships,
		cmdCompatibility,
		cmdCast,
		cmdQuery,
		cmdAttr,
		cmdList,
		cmdWatch,
		cmdServe,
		cmdVersion,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// entityConfig loads the configured --config override, or the default field
// lists when --config is empty.
func entityConfig() *gts.EntityConfig {
	cfg, err := entityconfig.Load(flags.config)
	if err != nil {
		logger.Error("loading entity config", "err", err)
		return gts.DefaultEntityConfig()
	}
	return cfg
}

// roots splits the --path flag into individual, trimmed filesystem roots.
func roots() []string {
	if flags.path == "" {
		return nil
	}
	parts := strings.Split(flags.path, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// newStore builds a Store from --path (when set) and --config, matching
// the teacher CLI's lazy, path-optional catalog construction.
func newStore() *gts.Store {
	rs := roots()
	if len(rs) == 0 {
		return gts.NewStore(nil)
	}

	reader := discovery.NewFileReader(rs, entityConfig())
	store := gts.NewStore(reader)
	logger.Info("loaded entities", "roots", strings.Join(rs, ", "), "count", store.Count())
	return store
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
