package nube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
)

const (
	authURL  = "https://www.tiendanube.com/apps/authorize"
	tokenURL = "https://www.tiendanube.com/apps/authorize/token"
)

// oauthScopes must match the permissions ticked in the Tienda Nube partner
// panel or the authorize step rejects the request.
var oauthScopes = []string{
	"read_products", "write_products", "read_orders",
	"read_shipping", "edit_shipping", "read_logistics", "write_logistics",
}

// OAuth drives the authorization-code flow against Tienda Nube. The token
// endpoint wants client credentials in the form body, not basic auth.
type OAuth struct {
	cfg *oauth2.Config
}

func NewOAuth(clientID, clientSecret, publicAPIURL string) *OAuth {
	return &OAuth{cfg: &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  strings.TrimRight(publicAPIURL, "/") + "/oauth_callback",
		Scopes:       oauthScopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   authURL,
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}}
}

// AuthorizationURL builds the authorize redirect carrying the CSRF state.
func (o *OAuth) AuthorizationURL(state string) string {
	return o.cfg.AuthCodeURL(state)
}

// StoreToken is the useful part of a successful exchange: the access token
// and the store (user_id) it belongs to.
type StoreToken struct {
	AccessToken string
	StoreID     int64
}

// Exchange trades the authorization code for an access token. Tienda Nube
// returns the store id as a user_id extra on the token response.
func (o *OAuth) Exchange(ctx context.Context, code string) (StoreToken, error) {
	tok, err := o.cfg.Exchange(ctx, code)
	if err != nil {
		return StoreToken{}, fmt.Errorf("exchange authorization code: %w", err)
	}
	if tok.AccessToken == "" {
		return StoreToken{}, errors.New("token response has empty access_token")
	}
	storeID, ok := userID(tok)
	if !ok {
		return StoreToken{}, errors.New("token response missing user_id")
	}
	return StoreToken{AccessToken: tok.AccessToken, StoreID: storeID}, nil
}

func userID(tok *oauth2.Token) (int64, bool) {
	switch v := tok.Extra("user_id").(type) {
	case float64:
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		return id, err == nil
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}
