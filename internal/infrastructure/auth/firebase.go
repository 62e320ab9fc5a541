package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/marketplace/backend/internal/infrastructure/config"
)

// ErrInvalidIDToken is returned when the identity provider rejects an ID token
var ErrInvalidIDToken = errors.New("invalid firebase id token")

// FirebaseIdentity is the verified profile behind a Firebase ID token
type FirebaseIdentity struct {
	UID           string
	Email         string
	EmailVerified bool
	Name          string
	PhotoURL      string
}

// FirebaseVerifier verifies Firebase ID tokens with the Identity Toolkit
// accounts:lookup endpoint
type FirebaseVerifier struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewFirebaseVerifier creates a verifier for the configured project
func NewFirebaseVerifier(cfg config.FirebaseConfig) *FirebaseVerifier {
	return &FirebaseVerifier{
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID       string `json:"localId"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"emailVerified"`
		DisplayName   string `json:"displayName"`
		PhotoURL      string `json:"photoUrl"`
	} `json:"users"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Verify resolves idToken to the account it was issued for
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*FirebaseIdentity, error) {
	if strings.TrimSpace(idToken) == "" {
		return nil, ErrInvalidIDToken
	}

	body, err := json.Marshal(lookupRequest{IDToken: idToken})
	if err != nil {
		return nil, err
	}

	endpoint := v.endpoint + "/accounts:lookup?key=" + url.QueryEscape(v.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build firebase lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("firebase lookup: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read firebase lookup response: %w", err)
	}

	var parsed lookupResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode firebase lookup response (status %d): %w", resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return nil, ErrInvalidIDToken
	case resp.StatusCode != http.StatusOK:
		msg := ""
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return nil, fmt.Errorf("firebase lookup failed with status %d: %s", resp.StatusCode, msg)
	case len(parsed.Users) == 0 || parsed.Users[0].LocalID == "":
		return nil, ErrInvalidIDToken
	}

	u := parsed.Users[0]
	return &FirebaseIdentity{
		UID:           u.LocalID,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		Name:          u.DisplayName,
		PhotoURL:      u.PhotoURL,
	}, nil
}
