package nube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"mobapp/internal/config"
)

const (
	apiBaseURL = "https://api.tiendanube.com"
	apiVersion = "v1"

	maxPostAttempts = 5
)

// Client wraps the Tienda Nube store API calls this app needs: registering
// the shipping carrier and creating its modality options after install.
type Client struct {
	baseURL    string
	clientID   string
	httpClient *http.Client
	limiter    *limiter
}

// Carrier is the registered shipping carrier as the API echoes it back.
type Carrier struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	CallbackURL string `json:"callback_url"`
	Active      bool   `json:"active"`
}

// CarrierOption is one modality created under the carrier. Types is the
// platform-side classification ("ship" or "pickup"); it only affects how the
// option is configured upstream, quoting always reports ship.
type CarrierOption struct {
	Code              string  `json:"code"`
	Name              string  `json:"name"`
	Types             string  `json:"types"`
	AdditionalDays    int     `json:"additional_days"`
	AdditionalCost    float64 `json:"additional_cost"`
	AllowFreeShipping bool    `json:"allow_free_shipping"`
	Active            bool    `json:"active"`
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:    apiBaseURL,
		clientID:   cfg.TNClientID,
		httpClient: &http.Client{Timeout: time.Duration(cfg.TNTimeoutMs) * time.Millisecond},
		limiter:    newLimiter(cfg.TNRateLimitRPS),
	}
}

// RegisterCarrier creates the shipping carrier pointed at our quote
// callback. Tienda Nube will POST checkout quote requests to callback_url.
func (c *Client) RegisterCarrier(ctx context.Context, storeID int64, accessToken, name, publicAPIURL string) (Carrier, error) {
	payload := map[string]any{
		"name":          name,
		"callback_url":  strings.TrimRight(publicAPIURL, "/") + "/shipping_rates",
		"active":        true,
		"country_codes": []string{"AR"},
		"types":         "ship,pickup",
	}

	body, err := c.post(ctx, fmt.Sprintf("%d/shipping_carriers", storeID), accessToken, payload)
	if err != nil {
		return Carrier{}, fmt.Errorf("register carrier: %w", err)
	}

	var carrier Carrier
	if err := json.Unmarshal(body, &carrier); err != nil {
		return Carrier{}, fmt.Errorf("decode carrier response: %w", err)
	}
	if carrier.ID == 0 {
		return Carrier{}, fmt.Errorf("carrier response has no id: %s", string(body))
	}
	return carrier, nil
}

// CreateCarrierOption adds one modality under an existing carrier.
func (c *Client) CreateCarrierOption(ctx context.Context, storeID int64, accessToken string, carrierID int64, opt CarrierOption) error {
	endpoint := fmt.Sprintf("%d/shipping_carriers/%d/options", storeID, carrierID)
	if _, err := c.post(ctx, endpoint, accessToken, opt); err != nil {
		return fmt.Errorf("create option %q: %w", opt.Name, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint, accessToken string, payload any) ([]byte, error) {
	blob, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.baseURL, "/"), apiVersion, endpoint)

	var lastErr error
	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		c.limiter.wait()

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(blob))
		if err != nil {
			return nil, err
		}
		// The platform reads the token from an Authentication header, not the
		// standard Authorization one.
		req.Header.Set("Authentication", "bearer "+accessToken)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "MobappShipping/"+c.clientID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			return nil, readErr
		}

		// 429 means the request was rejected before processing, so it is
		// safe to repeat. These POSTs create resources, so a 5xx after the
		// server may have acted is surfaced instead of repeated.
		if resp.StatusCode == http.StatusTooManyRequests && attempt < maxPostAttempts {
			backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
			time.Sleep(backoff)
			lastErr = fmt.Errorf("tiendanube status %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("tiendanube api status=%d body=%s", resp.StatusCode, string(body))
		}
		return body, nil
	}

	return nil, lastErr
}

// DefaultCarrierOptions returns every modality the carrier registers at
// install time. Quoting availability is narrower on restricted deployments,
// but registration always declares the full set.
func DefaultCarrierOptions() []CarrierOption {
	names := []struct {
		code, name, types string
	}{
		{"ANDREANI_DOM", "ANDREANI A DOMICILIO", "ship"},
		{"ANDREANI_SUC", "ANDREANI A SUCURSAL", "pickup"},
		{"CA_DOM", "CORREO ARGENTINO A DOMICILIO", "ship"},
		{"CA_SUC", "CORREO ARGENTINO A SUCURSAL", "pickup"},
		{"OCA_DOM", "OCA A DOMICILIO", "ship"},
		{"OCA_SUC", "OCA A SUCURSAL", "pickup"},
		{"URBANO_DOM", "URBANO A DOMICILIO", "ship"},
		{"ANDREANI_BIGGER_DOM", "ANDREANI BIGGER A DOM", "ship"},
	}

	out := make([]CarrierOption, 0, len(names))
	for _, n := range names {
		out = append(out, CarrierOption{
			Code:              n.code,
			Name:              n.name,
			Types:             n.types,
			AllowFreeShipping: true,
			Active:            true,
		})
	}
	return out
}
