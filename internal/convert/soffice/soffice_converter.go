// Package soffice converts spreadsheets to PDF with a headless LibreOffice
// subprocess. LibreOffice cannot run two conversions at once on the same
// machine, so a package-level mutex serializes calls.
package soffice

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gstbill/internal/domain"
	"gstbill/internal/port"
)

var conversionMu sync.Mutex

type sofficeConverter struct {
	binary  string
	timeout time.Duration
}

// NewConverter creates a DocumentConverter shelling out to the given
// LibreOffice binary ("soffice" when empty).
func NewConverter(binary string, timeout time.Duration) port.DocumentConverter {
	if binary == "" {
		binary = "soffice"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &sofficeConverter{binary: binary, timeout: timeout}
}

func (c *sofficeConverter) Convert(ctx context.Context, sourcePath string) (string, error) {
	conversionMu.Lock()
	defer conversionMu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	outDir := filepath.Dir(sourcePath)
	cmd := exec.CommandContext(ctx, c.binary,
		"--headless", "--convert-to", "pdf", "--outdir", outDir, sourcePath)

	output, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("soffice.Convert: %s failed: %v: %s", sourcePath, err, strings.TrimSpace(string(output)))
		return "", fmt.Errorf("converting %s: %w", sourcePath, domain.ErrConversionFailed)
	}

	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(outDir, base+".pdf"), nil
}
