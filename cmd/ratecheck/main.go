package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"mobapp/internal/config"
	"mobapp/internal/rates"
	"mobapp/internal/sheet"
)

// ratecheck loads the configured sheets once and answers a single lookup
// from the command line, for checking spreadsheet contents without going
// through a store checkout.
func main() {
	cp := flag.String("cp", "", "destination postal code")
	weight := flag.Float64("weight", 0, "package weight in kg")
	option := flag.String("option", "", "service display name (e.g. \"OCA A SUCURSAL\")")
	flag.Parse()

	if strings.TrimSpace(*cp) == "" {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	must(err)

	variant := rates.VariantByName(cfg.Variant)
	cache := sheet.NewCache()
	engine := rates.NewEngine(cache, variant, cfg.PostalSheetName)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	source, err := makeSource(ctx, cfg)
	must(err)
	loader := sheet.NewLoader(cache, source, cfg.PostalSheetName, variant.RateSheets)
	if err := loader.LoadAll(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	fmt.Printf("loaded sheets: %s\n", strings.Join(cache.Names(), ", "))

	province := engine.ResolveProvince(*cp)
	if province == "" {
		fmt.Printf("cp %s: no province found\n", *cp)
		return
	}
	fmt.Printf("cp %s -> %s\n", *cp, province)

	if strings.TrimSpace(*option) == "" {
		return
	}
	sheetName, ok := variant.SheetByOption[*option]
	if !ok {
		fmt.Printf("option %q is not mapped in variant %s\n", *option, variant.Name)
		return
	}

	match, err := engine.MatchRate(sheetName, *weight, *cp)
	must(err)
	if match == nil {
		fmt.Printf("option %q: no rate for %.2fkg in %s\n", *option, *weight, province)
		return
	}
	fmt.Printf("option %q: sheet=%s title=%q price=%.2f type=%s\n", *option, sheetName, match.Title, match.Price, match.DeliveryType)
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

func usage() {
	fmt.Println("usage: ratecheck --cp=1000 [--weight=3] [--option=\"OCA A SUCURSAL\"]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
