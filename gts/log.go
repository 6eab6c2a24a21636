/*
Copyright © 2025 Global Type System
Released under Apache License 2.0
*/

package gts

import (
	"os"

	charmlog "charm.land/log/v2"
)

// logger is the package-wide structured logger for the store's collaborator
// operations (registration, validation). The core identifier/schema/cast
// algebra in this package stays log-free: it is pure and has no business
// emitting diagnostics of its own.
var logger = charmlog.New(os.Stderr)
