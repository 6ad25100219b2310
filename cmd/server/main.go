package main

import (
	"fmt"
	"log"
	"time"

	"gstbill/internal/config"
	"gstbill/internal/convert/fpdf"
	"gstbill/internal/convert/noop"
	"gstbill/internal/convert/soffice"
	"gstbill/internal/document"
	"gstbill/internal/gst"
	"gstbill/internal/handler"
	"gstbill/internal/port"
	"gstbill/internal/profile"
	"gstbill/internal/router"
	"gstbill/internal/sequence"
	"gstbill/internal/service"
	"gstbill/internal/store"
	"gstbill/internal/transport"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return fmt.Errorf("failed to create data directories: %w", err)
	}

	// Initialize stores
	backupDir := cfg.Store.BackupDir
	profiles := profile.NewStore(store.NewFile(cfg.Store.ProfilesPath(), backupDir))
	modes := transport.NewStore(store.NewFile(cfg.Store.TransportPath(), backupDir))
	alloc := sequence.NewAllocator(cfg.Output.Dir, store.NewFile(cfg.Store.SequencePath(), backupDir))

	// Initialize the document pipeline
	cloner := document.NewCloner(document.DefaultLayout())
	calc := gst.NewCalculator(&cfg.Tax)
	converter := newConverter(cfg, cloner)

	// Initialize services
	invoiceSvc := service.NewInvoiceService(cfg, calc, alloc, cloner, profiles, modes, converter)
	profileSvc := service.NewProfileService(profiles)
	transportSvc := service.NewTransportService(modes)

	// Initialize handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	profileH := handler.NewProfileHandler(profileSvc)
	transportH := handler.NewTransportHandler(transportSvc)
	healthH := handler.NewHealthHandler(cfg)

	// Setup router
	r := router.Setup(invoiceH, profileH, transportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func newConverter(cfg *config.Config, cloner *document.Cloner) port.DocumentConverter {
	switch cfg.Convert.Provider {
	case "soffice":
		return soffice.NewConverter(cfg.Convert.Binary, time.Duration(cfg.Convert.TimeoutSecs)*time.Second)
	case "fpdf":
		return fpdf.NewConverter(cloner)
	default:
		return noop.NewNoopConverter()
	}
}
