package rates

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"mobapp/internal"
)

const (
	colWeightMin = "PESO MIN"
	colWeightMax = "PESO MAX"
	colPrice     = "PRECIO"

	// Rows with no usable PESO MAX are open-ended upward.
	maxWeightSentinel = 9999999
)

// titleColumns lists the accepted spellings of the title header; the sheet
// authors use both.
var titleColumns = []string{"TÍTULO", "TITULO"}

// MatchRate finds the rate row for a weight and destination postal code in
// the named sheet. It returns (nil, nil) for every no-data condition: blank
// postal code, unloaded or empty sheet, unresolvable province, or no band
// covering the weight. A sheet that lacks required columns is structurally
// unusable and reported as an error.
//
// When several rows qualify, the first one in sheet order wins. Not the
// cheapest and not the narrowest band: overlapping or duplicated bands are
// resolved by row position so the spreadsheet authors control precedence.
func (e *Engine) MatchRate(sheetName string, weightKg float64, postalCode string) (*internal.RateMatch, error) {
	if strings.TrimSpace(postalCode) == "" {
		log.Printf("rates: match against %q skipped, empty postal code", sheetName)
		return nil, nil
	}

	tbl := e.cache.Table(sheetName)
	if tbl.Empty() {
		return nil, nil
	}

	iMin, okMin := tbl.Column(colWeightMin)
	iMax, okMax := tbl.Column(colWeightMax)
	iPrice, okPrice := tbl.Column(colPrice)
	iProv, okProv := tbl.Column(colProvince)
	iTitle, okTitle := tbl.ColumnAny(titleColumns...)
	if !okMin || !okMax || !okPrice || !okProv || !okTitle {
		return nil, fmt.Errorf("sheet %q is missing required rate columns", sheetName)
	}

	province := e.ResolveProvince(postalCode)
	if province == "" {
		return nil, nil
	}

	for i := 0; i < tbl.Len(); i++ {
		prov := tbl.Cell(i, iProv)
		if prov == "" || !strings.EqualFold(prov, province) {
			continue
		}
		min, minOK := parseBound(tbl.Cell(i, iMin), 0)
		max, maxOK := parseBound(tbl.Cell(i, iMax), maxWeightSentinel)
		if !minOK || !maxOK {
			continue
		}
		if weightKg < min || weightKg > max {
			continue
		}
		return &internal.RateMatch{
			Title:        tbl.Cell(i, iTitle),
			Price:        parseFloatOr(tbl.Cell(i, iPrice), 0),
			DeliveryType: internal.DeliveryTypeShip,
		}, nil
	}
	return nil, nil
}

// parseBound reads a weight bound. A blank cell takes the fallback; a
// non-blank cell that does not parse disqualifies the row, it does not
// widen the band.
func parseBound(value string, fallback float64) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return fallback, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func parseFloatOr(value string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return v
}
