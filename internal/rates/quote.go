package rates

import (
	"log"
	"strings"
	"time"

	"mobapp/internal"
)

const (
	quoteCurrency      = "ARS"
	quoteReference     = "ref123"
	deliveryWindowDays = 7
)

// BuildQuote assembles the shipping_rates response for a checkout request.
// It never fails: every internal miss or error collapses into omitting the
// affected option, and a panic is recovered into an empty rate list with an
// advisory error. The platform expects HTTP 200 with {"rates": []} even when
// nothing can be quoted.
func (e *Engine) BuildQuote(req internal.QuoteRequest) (resp internal.QuoteResponse) {
	resp.Rates = []internal.Rate{}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("rates: quote assembly panic: %v", r)
			resp = internal.QuoteResponse{
				Rates: []internal.Rate{},
				Error: "internal error while computing shipping rates",
			}
		}
	}()

	postalCode := destinationPostalCode(req)
	weightKg := TotalWeightKg(req.Items)

	if postalCode == "" {
		log.Printf("rates: quote request without postal code")
		return resp
	}
	log.Printf("rates: quoting cp=%s weight=%.2fkg", postalCode, weightKg)

	var options []internal.RequestedOption
	if req.Carrier != nil {
		options = req.Carrier.Options
	}

	now := time.Now().UTC()
	for _, option := range options {
		sheetName, ok := e.variant.SheetByOption[option.Name]
		if !ok {
			continue
		}

		match, err := e.MatchRate(sheetName, weightKg, postalCode)
		if err != nil {
			log.Printf("rates: option %q: %v", option.Name, err)
			continue
		}
		if match == nil {
			log.Printf("rates: no rate for option %q (cp=%s weight=%.2fkg)", option.Name, postalCode, weightKg)
			continue
		}

		// The sheet row must announce the same service the checkout asked
		// for; this catches sheets drifting out of step with the mapping.
		if !strings.EqualFold(strings.TrimSpace(match.Title), strings.TrimSpace(option.Name)) {
			log.Printf("rates: sheet %q title %q does not match option %q", sheetName, match.Title, option.Name)
			continue
		}

		resp.Rates = append(resp.Rates, internal.Rate{
			ID:              option.ID,
			Name:            option.Name,
			Code:            option.Code,
			Price:           match.Price,
			PriceMerchant:   match.Price,
			Currency:        quoteCurrency,
			Type:            match.DeliveryType,
			MinDeliveryDate: now.Format(time.RFC3339),
			MaxDeliveryDate: now.AddDate(0, 0, deliveryWindowDays).Format(time.RFC3339),
			PhoneRequired:   false,
			Reference:       quoteReference,
		})
	}

	if len(resp.Rates) == 0 {
		log.Printf("rates: no quotable options for cp=%s weight=%.2fkg", postalCode, weightKg)
	}
	return resp
}

// destinationPostalCode picks the postal code with the same precedence the
// platform callbacks rely on: destination zipcode, destination postal_code,
// then origin postal_code as a last resort.
func destinationPostalCode(req internal.QuoteRequest) string {
	if req.Destination != nil {
		if req.Destination.Zipcode != "" {
			return req.Destination.Zipcode
		}
		if req.Destination.PostalCode != "" {
			return req.Destination.PostalCode
		}
	}
	if req.Origin != nil {
		return req.Origin.PostalCode
	}
	return ""
}

// TotalWeightKg sums line-item weights, grams to kilograms times quantity.
// No rounding happens here; any rounding is display-only.
func TotalWeightKg(items []internal.QuoteItem) float64 {
	total := 0.0
	for _, item := range items {
		total += (item.Grams / 1000) * item.Quantity
	}
	return total
}
