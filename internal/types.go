package internal

// DeliveryTypeShip is the only delivery classification this service ever
// reports. The storefront carrier has both ship and pickup modalities, but
// the checkout is configured to render every option as a direct shipment and
// differentiate them by display name only. Changing this requires touching
// the carrier configuration on the Tienda Nube side first.
const DeliveryTypeShip = "ship"

// QuoteAddress carries the address fragments Tienda Nube sends with a
// shipping_rates callback. Only the postal code fields matter here.
type QuoteAddress struct {
	Zipcode    string `json:"zipcode"`
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
}

type QuoteItem struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Grams    float64 `json:"grams"`
	Quantity float64 `json:"quantity"`
}

// RequestedOption is one carrier modality the checkout asks to be quoted.
// Name must equal a configured service display name to be considered.
type RequestedOption struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type QuoteCarrier struct {
	ID      int64             `json:"id"`
	Options []RequestedOption `json:"options"`
}

type QuoteRequest struct {
	Origin      *QuoteAddress `json:"origin"`
	Destination *QuoteAddress `json:"destination"`
	Items       []QuoteItem   `json:"items"`
	Carrier     *QuoteCarrier `json:"carrier"`
	Currency    string        `json:"currency"`
}

// Rate is one quoted line in the shipping_rates response. Price is repeated
// under price_merchant because the platform reads both fields.
type Rate struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Code            string  `json:"code"`
	Price           float64 `json:"price"`
	PriceMerchant   float64 `json:"price_merchant"`
	Currency        string  `json:"currency"`
	Type            string  `json:"type"`
	MinDeliveryDate string  `json:"min_delivery_date"`
	MaxDeliveryDate string  `json:"max_delivery_date"`
	PhoneRequired   bool    `json:"phone_required"`
	Reference       string  `json:"reference"`
}

// QuoteResponse is always returned with HTTP 200. Error is advisory only and
// accompanies an empty rate list when quote assembly blew up unexpectedly.
type QuoteResponse struct {
	Rates []Rate `json:"rates"`
	Error string `json:"error,omitempty"`
}

// RateMatch is the single best row a rate sheet yields for a weight and
// destination province.
type RateMatch struct {
	Title        string
	Price        float64
	DeliveryType string
}

type InstallRow struct {
	StoreID     int64
	AccessToken string
	CarrierID   int64
	InstalledAt string
}
