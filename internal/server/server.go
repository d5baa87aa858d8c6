package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"mobapp/internal"
	"mobapp/internal/config"
	"mobapp/internal/nube"
	"mobapp/internal/rates"
	"mobapp/internal/sheet"
	"mobapp/internal/storage"
)

type Server struct {
	cfg    config.Config
	engine *rates.Engine
	loader *sheet.Loader
	db     *storage.DB
	oauth  *nube.OAuth
	client *nube.Client
	states *stateStore
}

// New wires the HTTP surface: the quote callback the platform hits at
// checkout, the OAuth install flow, and operational endpoints.
func New(cfg config.Config, engine *rates.Engine, loader *sheet.Loader, db *storage.DB) http.Handler {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		loader: loader,
		db:     db,
		oauth:  nube.NewOAuth(cfg.TNClientID, cfg.TNClientSecret, cfg.PublicAPIURL),
		client: nube.NewClient(cfg),
		states: newStateStore(),
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(middleware.Logger)
	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Get("/install", s.handleInstall)
	r.Get("/oauth_callback", s.handleOAuthCallback)
	r.Post("/shipping_rates", s.handleShippingRates)
	r.Post("/admin/reload", s.handleReload)
	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, "Mobapp shipping carrier bridge is running. Visit /install to connect a store.")
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// handleShippingRates answers checkout quote requests. The contract with the
// platform is strict: always HTTP 200 with a rates array, possibly empty. An
// unreadable body degrades to an empty quote rather than a 4xx.
func (s *Server) handleShippingRates(w http.ResponseWriter, r *http.Request) {
	if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "TiendaNubeAPI") {
		log.Printf("server: shipping_rates request from unexpected user agent %q", ua)
	}

	var req internal.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("server: unreadable quote payload: %v", err)
		writeJSON(w, internal.QuoteResponse{Rates: []internal.Rate{}})
		return
	}

	writeJSON(w, s.engine.BuildQuote(req))
}

func (s *Server) handleInstall(w http.ResponseWriter, r *http.Request) {
	if err := s.cfg.Require("TIENDA_NUBE_CLIENT_ID", s.cfg.TNClientID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	state := uuid.NewString()
	s.states.Put(state)
	http.Redirect(w, r, s.oauth.AuthorizationURL(state), http.StatusFound)
}

// handleOAuthCallback finishes the install: code exchange, token persistence,
// carrier registration and option creation. Option failures are logged and
// skipped so one bad modality does not abort the rest.
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errCode := q.Get("error"); errCode != "" {
		log.Printf("server: oauth callback error: %s - %s", errCode, q.Get("error_description"))
		http.Error(w, "Tienda Nube reported: "+firstNonEmpty(q.Get("error_description"), errCode), http.StatusBadRequest)
		return
	}
	if !s.states.Take(q.Get("state")) {
		log.Printf("server: oauth state mismatch")
		http.Error(w, "invalid oauth state", http.StatusBadRequest)
		return
	}
	code := q.Get("code")
	if code == "" {
		http.Error(w, "missing authorization code", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		log.Printf("server: oauth exchange failed: %v", err)
		http.Error(w, "could not obtain access token", http.StatusInternalServerError)
		return
	}
	log.Printf("server: oauth complete for store %d", token.StoreID)

	if s.db != nil {
		if err := s.db.SaveInstall(token.StoreID, token.AccessToken); err != nil {
			log.Printf("server: persist install for store %d: %v", token.StoreID, err)
		}
	}

	// The store needs a moment to finish provisioning before it accepts
	// carrier registration.
	select {
	case <-time.After(time.Duration(s.cfg.RegisterDelaySec) * time.Second):
	case <-ctx.Done():
		return
	}

	carrier, err := s.client.RegisterCarrier(ctx, token.StoreID, token.AccessToken, s.cfg.CarrierName, s.cfg.PublicAPIURL)
	if err != nil {
		log.Printf("server: register carrier for store %d: %v", token.StoreID, err)
		http.Error(w, "carrier registration failed", http.StatusInternalServerError)
		return
	}
	log.Printf("server: carrier %q registered with id %d", carrier.Name, carrier.ID)

	if s.db != nil {
		if err := s.db.SetCarrier(token.StoreID, carrier.ID); err != nil {
			log.Printf("server: persist carrier id for store %d: %v", token.StoreID, err)
		}
	}

	created := make([]string, 0)
	for _, opt := range nube.DefaultCarrierOptions() {
		if err := s.client.CreateCarrierOption(ctx, token.StoreID, token.AccessToken, carrier.ID, opt); err != nil {
			log.Printf("server: %v", err)
			continue
		}
		created = append(created, opt.Name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<h1>Carrier %q registered.</h1><p>Modalities created: %s</p><p>Quote callback: %s/shipping_rates</p>",
		carrier.Name, strings.Join(created, ", "), strings.TrimRight(s.cfg.PublicAPIURL, "/"))
}

// handleReload re-runs the sheet load. Partial failures keep serving the
// previous tables and are reported as advisory, never as an error status.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.loader == nil {
		writeJSON(w, map[string]string{"status": "unavailable", "error": "no sheet source configured"})
		return
	}
	if err := s.loader.LoadAll(r.Context()); err != nil {
		writeJSON(w, map[string]string{"status": "partial", "error": err.Error()})
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: encode response: %v", err)
	}
}

// requestIDMiddleware ensures X-Request-ID is set on the response,
// propagating an inbound id when present.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
