// Package sequence allocates sequential invoice numbers scoped to the Indian
// financial year (April-March). Numbers come from two sources that are
// reconciled on every call: the generated-document filenames already on disk
// and a persisted counter. Suggesting never mutates state; Commit records a
// number after successful generation, and Reserve hands out a unique number
// under a cross-process lock.
package sequence

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gstbill/internal/domain"
	"gstbill/internal/store"
)

// filePattern extracts the sequence number from generated invoice filenames.
var filePattern = regexp.MustCompile(`Invoice_(\d+)_`)

// FinancialYearSuffix returns the suffix for t, e.g. "/2025-26". The Indian
// financial year starts in April.
func FinancialYearSuffix(t time.Time) string {
	year := t.Year()
	start, end := year, year+1
	if t.Month() < time.April {
		start, end = year-1, year
	}
	endStr := strconv.Itoa(end)
	return fmt.Sprintf("/%d-%s", start, endStr[len(endStr)-2:])
}

// MaxSequence returns the highest sequence number found in the given
// identifiers, or zero when none match.
func MaxSequence(identifiers []string) int {
	max := 0
	for _, id := range identifiers {
		m := filePattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max
}

// NextNumber derives the next invoice number from existing identifiers:
// max+1, zero-padded to three digits, with the financial-year suffix for t.
// The counter does not reset at a financial-year boundary.
func NextNumber(identifiers []string, t time.Time) string {
	return Format(MaxSequence(identifiers)+1, t)
}

// Format renders a sequence value as a full invoice number for time t.
func Format(n int, t time.Time) string {
	return fmt.Sprintf("%03d%s", n, FinancialYearSuffix(t))
}

// NumericPart parses the sequence value out of a full invoice number such as
// "004/2025-26".
func NumericPart(invoiceNumber string) (int, error) {
	head, _, _ := strings.Cut(invoiceNumber, "/")
	n, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, domain.NewValidationError("invoice_number", "numeric part is not a number")
	}
	return n, nil
}

// Allocator reconciles the on-disk corpus with the persisted counter.
type Allocator struct {
	outputDir string
	state     *store.File
	now       func() time.Time
}

// NewAllocator creates an Allocator scanning outputDir and persisting the
// counter in state.
func NewAllocator(outputDir string, state *store.File) *Allocator {
	return &Allocator{outputDir: outputDir, state: state, now: time.Now}
}

// SuggestNext returns the next unused invoice number without mutating any
// state, so an abandoned request leaks nothing.
func (a *Allocator) SuggestNext() string {
	return a.SuggestNextFor(a.now())
}

// SuggestNextFor is SuggestNext with the financial-year suffix taken from t,
// for callers that date an invoice in the past or future.
func (a *Allocator) SuggestNextFor(t time.Time) string {
	return Format(a.highWaterMark()+1, t)
}

// Reserve atomically increments the persisted counter under a cross-process
// file lock and returns the reserved number. Two concurrent callers can never
// receive the same value.
func (a *Allocator) Reserve() (string, error) {
	release, err := a.state.AcquireFileLock()
	if err != nil {
		return "", fmt.Errorf("reserving invoice number: %w", err)
	}
	defer release()

	next := a.highWaterMark() + 1
	if err := a.persist(next); err != nil {
		return "", err
	}
	return Format(next, a.now()), nil
}

// Commit records a successfully generated invoice number in the persisted
// counter. The counter only moves forward; committing an older number than
// the current high-water mark is a no-op. Commit contends on the same
// cross-process file lock as Reserve, so the two can never interleave their
// load/save cycles on the counter.
func (a *Allocator) Commit(invoiceNumber string) error {
	n, err := NumericPart(invoiceNumber)
	if err != nil {
		log.Printf("sequence.Commit: could not parse %q, counter not updated", invoiceNumber)
		return err
	}

	release, err := a.state.AcquireFileLock()
	if err != nil {
		return fmt.Errorf("committing invoice number: %w", err)
	}
	defer release()

	var st domain.SequenceState
	_ = a.state.Load(&st)
	if n <= st.LastInvoiceNumber {
		return nil
	}
	return a.persist(n)
}

// InUse reports whether a generated document in the output directory already
// carries the sequence value of invoiceNumber.
func (a *Allocator) InUse(invoiceNumber string) (bool, error) {
	n, err := NumericPart(invoiceNumber)
	if err != nil {
		return false, err
	}
	for _, name := range a.listOutput() {
		m := filePattern.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v == n {
			return true, nil
		}
	}
	return false, nil
}

// highWaterMark is the greater of the persisted counter and the highest
// sequence number found in the output directory.
func (a *Allocator) highWaterMark() int {
	var st domain.SequenceState
	_ = a.state.Load(&st)
	mark := st.LastInvoiceNumber

	if scanned := MaxSequence(a.listOutput()); scanned > mark {
		mark = scanned
	}
	return mark
}

func (a *Allocator) listOutput() []string {
	entries, err := os.ReadDir(a.outputDir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (a *Allocator) persist(n int) error {
	if err := a.state.Save(&domain.SequenceState{LastInvoiceNumber: n}); err != nil {
		return fmt.Errorf("persisting sequence state: %w", err)
	}
	return nil
}
