package noop

import (
	"context"
	"log"

	"gstbill/internal/port"
)

type noopConverter struct{}

// NewNoopConverter creates a no-op DocumentConverter for hosts without any
// PDF toolchain. It logs the skipped conversion and returns an empty path.
func NewNoopConverter() port.DocumentConverter {
	return &noopConverter{}
}

func (c *noopConverter) Convert(_ context.Context, sourcePath string) (string, error) {
	log.Printf("[NOOP CONVERT] PDF conversion skipped for %s", sourcePath)
	return "", nil
}
