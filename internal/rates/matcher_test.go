package rates

import (
	"testing"

	"mobapp/internal"
)

func postalTable() [][]string {
	return [][]string{
		{"CP", "PROVINCIA"},
		{"1000", "CABA"},
		{"5000", "CORDOBA"},
	}
}

func TestMatchRateWeightBands(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			{"CABA", "0", "5", "1500", "OCA A SUCURSAL"},
			{"CABA", "5.01", "10", "2200", "OCA A SUCURSAL"},
		},
	})

	cases := []struct {
		name      string
		weight    float64
		wantPrice float64
		wantMiss  bool
	}{
		{name: "inside first band", weight: 3, wantPrice: 1500},
		{name: "lower bound inclusive", weight: 0, wantPrice: 1500},
		{name: "upper bound inclusive", weight: 5, wantPrice: 1500},
		{name: "second band", weight: 7, wantPrice: 2200},
		{name: "above every band", weight: 11, wantMiss: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			match, err := e.MatchRate("OCA SUC", tc.weight, "1000")
			if err != nil {
				t.Fatal(err)
			}
			if tc.wantMiss {
				if match != nil {
					t.Fatalf("unexpected match: %+v", match)
				}
				return
			}
			if match == nil {
				t.Fatal("expected a match")
			}
			if match.Price != tc.wantPrice {
				t.Fatalf("price=%v want %v", match.Price, tc.wantPrice)
			}
			if match.DeliveryType != internal.DeliveryTypeShip {
				t.Fatalf("type=%q", match.DeliveryType)
			}
		})
	}
}

// Overlapping bands are legal and resolved by row position: the earlier row
// wins even when it is more expensive. Spreadsheet authors rely on this to
// control precedence, so it must not be "fixed" to cheapest-wins.
func TestMatchRateFirstRowWinsOverCheaper(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			{"CABA", "0", "10", "3000", "OCA A SUCURSAL"},
			{"CABA", "0", "10", "1500", "OCA A SUCURSAL"},
		},
	})

	match, err := e.MatchRate("OCA SUC", 3, "1000")
	if err != nil {
		t.Fatal(err)
	}
	if match == nil || match.Price != 3000 {
		t.Fatalf("expected first row (3000), got %+v", match)
	}
}

func TestMatchRateDefaultsAndParsing(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			// Blank min defaults to 0, blank max is open-ended.
			{"CABA", "", "", "garbage", "OCA A SUCURSAL"},
		},
	})

	match, err := e.MatchRate("OCA SUC", 500, "1000")
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected a match")
	}
	if match.Price != 0 {
		t.Fatalf("unparseable price should default to 0, got %v", match.Price)
	}
}

func TestMatchRateUnparseableBoundDisqualifiesRow(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			// A bound that is present but unreadable must skip the row, not
			// fall back to the defaults and widen the band.
			{"CABA", "n/a", "5", "1000", "OCA A SUCURSAL"},
			{"CABA", "0", "n/a", "1200", "OCA A SUCURSAL"},
			{"CABA", "0", "5", "1500", "OCA A SUCURSAL"},
		},
	})

	match, err := e.MatchRate("OCA SUC", 3, "1000")
	if err != nil {
		t.Fatal(err)
	}
	if match == nil {
		t.Fatal("expected a match from the well-formed row")
	}
	if match.Price != 1500 {
		t.Fatalf("rows with unreadable bounds should be skipped, got price %v", match.Price)
	}
}

func TestMatchRateProvinceCaseInsensitive(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			{"Caba", "0", "5", "1500", "OCA A SUCURSAL"},
		},
	})
	match, err := e.MatchRate("OCA SUC", 3, "1000")
	if err != nil || match == nil {
		t.Fatalf("match=%+v err=%v", match, err)
	}
}

func TestMatchRateNoDataConditions(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TÍTULO"},
			{"CABA", "0", "5", "1500", "OCA A SUCURSAL"},
		},
	})

	// Empty postal code.
	if m, err := e.MatchRate("OCA SUC", 3, ""); m != nil || err != nil {
		t.Fatalf("m=%+v err=%v", m, err)
	}
	// Unloaded sheet.
	if m, err := e.MatchRate("CA SUC", 3, "1000"); m != nil || err != nil {
		t.Fatalf("m=%+v err=%v", m, err)
	}
	// Postal code not in the postal table.
	if m, err := e.MatchRate("OCA SUC", 3, "9999"); m != nil || err != nil {
		t.Fatalf("m=%+v err=%v", m, err)
	}
	// Province with no rows in this sheet.
	if m, err := e.MatchRate("OCA SUC", 3, "5000"); m != nil || err != nil {
		t.Fatalf("m=%+v err=%v", m, err)
	}
}

func TestMatchRateMissingColumnsIsStructural(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PRECIO"},
			{"CABA", "1500"},
		},
	})
	match, err := e.MatchRate("OCA SUC", 3, "1000")
	if err == nil {
		t.Fatal("expected structural error for missing columns")
	}
	if match != nil {
		t.Fatalf("unexpected match: %+v", match)
	}
}

func TestMatchRateUnaccentedTitleHeader(t *testing.T) {
	e := newTestEngine(FullVariant(), map[string][][]string{
		postalSheetName: postalTable(),
		"OCA SUC": {
			{"PROVINCIA", "PESO MIN", "PESO MAX", "PRECIO", "TITULO"},
			{"CABA", "0", "5", "1500", "OCA A SUCURSAL"},
		},
	})
	match, err := e.MatchRate("OCA SUC", 3, "1000")
	if err != nil || match == nil || match.Title != "OCA A SUCURSAL" {
		t.Fatalf("match=%+v err=%v", match, err)
	}
}
