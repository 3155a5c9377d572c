package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultVerifyURL is the Cloudflare Turnstile siteverify endpoint.
const DefaultVerifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

const defaultTimeout = 10 * time.Second

// ErrVerifyUnavailable wraps transport and decoding failures against the
// verification service. It is distinct from a token that simply failed.
var ErrVerifyUnavailable = errors.New("challenge verification unavailable")

// Verifier reports whether a client-supplied challenge token passes.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// Config holds HTTPVerifier settings. SecretKey is the shared secret issued
// by the challenge provider.
type Config struct {
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

// HTTPVerifier validates challenge tokens against a siteverify-compatible
// HTTP endpoint.
type HTTPVerifier struct {
	config Config
	client *http.Client
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// NewHTTPVerifier creates an HTTPVerifier. VerifyURL defaults to
// [DefaultVerifyURL] and Timeout to 10s.
func NewHTTPVerifier(cfg Config) (*HTTPVerifier, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("turnstile secret key required")
	}
	if cfg.VerifyURL == "" {
		cfg.VerifyURL = DefaultVerifyURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	return &HTTPVerifier{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Verify implements [Verifier]. An empty token fails without a network call.
func (v *HTTPVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	form := url.Values{}
	form.Set("secret", v.config.SecretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		v.config.VerifyURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerifyUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerifyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: status %d", ErrVerifyUnavailable, resp.StatusCode)
	}

	var decoded siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return false, fmt.Errorf("%w: %v", ErrVerifyUnavailable, err)
	}

	return decoded.Success, nil
}

// Static is a Verifier that always answers the same way. Intended for tests
// and local development only.
type Static bool

// Verify implements [Verifier].
func (s Static) Verify(context.Context, string) (bool, error) {
	return bool(s), nil
}
