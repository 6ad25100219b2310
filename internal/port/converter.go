package port

import "context"

// DocumentConverter abstracts spreadsheet-to-PDF conversion. Implementations
// return the path of the produced PDF. Conversion failures are reported as
// errors but callers treat them as non-fatal: the spreadsheet artifact is the
// source of truth.
type DocumentConverter interface {
	// Convert produces a PDF next to sourcePath and returns its path. An
	// empty path with a nil error means the converter is not available on
	// this host.
	Convert(ctx context.Context, sourcePath string) (string, error)
}
