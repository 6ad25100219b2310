// Command importer rebuilds the JSON stores from a corpus of generated
// invoice documents. It scans one or more directories, extracts buyer
// profiles and transport modes from each workbook, and merges them into the
// configured stores (latest file wins per profile).
// Usage: go run ./cmd/importer -dirs generated_invoices,old_invoices
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gstbill/internal/config"
	"gstbill/internal/document"
	"gstbill/internal/domain"
	"gstbill/internal/profile"
	"gstbill/internal/store"
	"gstbill/internal/transport"
)

// gstinPattern matches a 15-character Indian GSTIN.
var gstinPattern = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z][A-Z\d]Z[A-Z\d]\b`)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var dirsFlag string
	flag.StringVar(&dirsFlag, "dirs", "", "comma-separated invoice directories (default: configured output dir)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	dirs := []string{cfg.Output.Dir}
	if dirsFlag != "" {
		dirs = strings.Split(dirsFlag, ",")
	}

	cloner := document.NewCloner(document.DefaultLayout())

	profilesByID := make(map[string]domain.BuyerProfile)
	modeSet := make(map[string]string)

	scanned := 0
	for _, dir := range dirs {
		files, err := invoiceFiles(strings.TrimSpace(dir))
		if err != nil {
			log.Printf("importer: skipping %s: %v", dir, err)
			continue
		}
		// Lexical order makes later invoice numbers win on conflicts.
		sort.Strings(files)

		for _, path := range files {
			ext, err := cloner.Extract(path)
			if err != nil {
				log.Printf("importer: skipping %s: %v", filepath.Base(path), err)
				continue
			}
			scanned++

			if p, ok := profileFromExtract(ext); ok {
				profilesByID[p.ProfileID] = p
			}
			if core := ext.TransportMode; core != "" {
				modeSet[strings.ToLower(core)] = transport.Normalize(core)
			}
		}
	}

	merged := make([]domain.BuyerProfile, 0, len(profilesByID))
	for _, p := range profilesByID {
		merged = append(merged, p)
	}
	merged = profile.Deduplicate(merged)

	backupDir := cfg.Store.BackupDir
	if err := store.NewFile(cfg.Store.ProfilesPath(), backupDir).Save(merged); err != nil {
		return fmt.Errorf("writing profile store: %w", err)
	}

	modes := make([]string, 0, len(modeSet))
	for _, mode := range modeSet {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	if err := store.NewFile(cfg.Store.TransportPath(), backupDir).Save(modes); err != nil {
		return fmt.Errorf("writing transport store: %w", err)
	}

	log.Printf("importer: scanned %d invoices, wrote %d profiles and %d transport modes",
		scanned, len(merged), len(modes))
	return nil
}

// invoiceFiles lists the generated invoice workbooks in dir.
func invoiceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// profileFromExtract derives a buyer profile from an extracted invoice. The
// first buyer line is the name; a GSTIN found anywhere in the block becomes
// both the GSTIN and the profile id. Without one the id is a deterministic
// token from the name so repeated imports stay stable.
func profileFromExtract(ext *domain.ExtractedInvoice) (domain.BuyerProfile, bool) {
	if len(ext.BuyerDetails) == 0 {
		return domain.BuyerProfile{}, false
	}

	name := ext.BuyerDetails[0]
	details := ext.BuyerDetails[1:]

	gstin := ""
	for _, line := range ext.BuyerDetails {
		if m := gstinPattern.FindString(strings.ToUpper(line)); m != "" {
			gstin = m
			break
		}
	}

	id := gstin
	if id == "" {
		id = deterministicID(name)
	}

	return domain.BuyerProfile{
		ProfileID:      id,
		BuyerName:      name,
		BuyerDetails:   details,
		GSTIN:          gstin,
		DefaultTaxType: ext.TaxType,
	}, true
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9]+`)

func deterministicID(name string) string {
	safe := unsafeIDChars.ReplaceAllString(strings.TrimSpace(name), "_")
	return strings.ToLower(strings.Trim(safe, "_"))
}
