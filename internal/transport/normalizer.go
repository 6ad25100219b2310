// Package transport canonicalizes free-text transport mode strings. Users
// type the same mode in many shapes ("Road", "mode of transport:road",
// "Mode Of Transports - Road"); one canonical form is stored for all of them.
package transport

import "strings"

// canonicalPrefix is the single stored form.
const canonicalPrefix = "Mode of Transport: "

// prefixVariants are recognized (case-insensitively) at the start of input,
// longest first so the plural no-colon form wins over the singular one.
var prefixVariants = []string{
	"mode of transports:",
	"mode of transport:",
	"mode of transports",
	"mode of transport",
}

// Core strips any recognized prefix variant and residual "-", ":" or space
// characters, returning the bare transport value.
func Core(raw string) string {
	val := strings.TrimSpace(raw)
	low := strings.ToLower(val)
	for _, prefix := range prefixVariants {
		if strings.HasPrefix(low, prefix) {
			val = strings.Trim(val[len(prefix):], " -:")
			break
		}
	}
	return strings.TrimSpace(val)
}

// Normalize re-wraps the core value into the canonical stored form. Blank
// input yields an empty string, never a bare canonical wrapper.
func Normalize(raw string) string {
	core := Core(raw)
	if core == "" {
		return ""
	}
	return canonicalPrefix + core
}
