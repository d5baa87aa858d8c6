package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"mobapp/internal/config"
	"mobapp/internal/rates"
	"mobapp/internal/server"
	"mobapp/internal/sheet"
	"mobapp/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	if n, err := db.CountInstalls(); err == nil {
		log.Printf("mobapp: %d store(s) installed", n)
	}

	variant := rates.VariantByName(cfg.Variant)
	cache := sheet.NewCache()
	engine := rates.NewEngine(cache, variant, cfg.PostalSheetName)

	// A broken sheet source must not keep the service down: quotes are
	// served from an empty cache (empty rate lists) until a reload works.
	var loader *sheet.Loader
	source, err := makeSource(context.Background(), cfg)
	if err != nil {
		log.Printf("mobapp: sheet source unavailable, serving empty rates: %v", err)
	} else {
		loader = sheet.NewLoader(cache, source, cfg.PostalSheetName, variant.RateSheets)
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		if err := loader.LoadAll(ctx); err != nil {
			log.Printf("mobapp: initial sheet load incomplete: %v", err)
		}
		cancel()
	}

	handler := server.New(cfg, engine, loader, db)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("mobapp listening on :%s (variant=%s source=%s)", cfg.Port, variant.Name, cfg.RatesSource)
	if cfg.PublicAPIURL != "" {
		log.Printf("mobapp public url: %s (must be reachable from Tienda Nube)", cfg.PublicAPIURL)
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		must(err)
	}
}

func makeSource(ctx context.Context, cfg config.Config) (sheet.Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.RatesSource)) {
	case "google", "":
		return sheet.NewGoogleSource(ctx, cfg.CredentialsPath, cfg.SpreadsheetID)
	case "xlsx":
		return sheet.NewXLSXSource(cfg.RatesXLSXPath)
	default:
		return nil, fmt.Errorf("unsupported rates source: %s", cfg.RatesSource)
	}
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
