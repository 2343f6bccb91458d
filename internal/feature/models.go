// Package feature holds per-tenant capability flags. The identity pipeline
// consumes it through ports.FeatureGate.
package feature

import (
	"slices"
	"strings"

	"leadscout/internal/identity/ports"
	dErrors "leadscout/pkg/domain-errors"
)

// Capability names a gated product capability.
type Capability string

// CapabilityScreenshotImport gates screenshot extraction.
const CapabilityScreenshotImport Capability = ports.CapabilityScreenshotImport

// Known lists every capability the admin API accepts.
var Known = []Capability{CapabilityScreenshotImport}

// ParseCapability validates s against the known capabilities.
func ParseCapability(s string) (Capability, error) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return "", dErrors.New(dErrors.CodeValidation, "capability is required")
	}
	if !slices.Contains(Known, c) {
		return "", dErrors.New(dErrors.CodeValidation, "unknown capability "+string(c))
	}
	return c, nil
}

// Flags maps capabilities to their enabled state for one tenant.
type Flags map[Capability]bool
