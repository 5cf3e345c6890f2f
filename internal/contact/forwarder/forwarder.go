// Package forwarder delivers contact submissions to the external form
// processing endpoint.
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/accessguide/accessguide-backend/internal/contact/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// ErrNotConfigured is returned by Forward when no endpoint is set.
var ErrNotConfigured = errors.New("contact forward URL is not configured")

// Forwarder delivers a submission somewhere.
type Forwarder interface {
	Forward(ctx context.Context, s *domain.Submission) error
}

// Config configures HTTPForwarder. Token fields are optional; when TokenURL
// is set requests carry an OAuth2 client-credentials bearer token.
type Config struct {
	URL          string
	Timeout      time.Duration
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
	RatePerSec   float64
	Burst        int
}

// HTTPForwarder posts submissions as JSON.
type HTTPForwarder struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

type payload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject,omitempty"`
	Message     string    `json:"message"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// New builds an HTTPForwarder. base may be nil to use a fresh http.Client.
func New(cfg Config, base *http.Client) *HTTPForwarder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 10
	}
	if base == nil {
		base = &http.Client{}
	}

	cp := *base
	client := &cp
	if cfg.TokenURL != "" {
		cc := &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
			Scopes:       cfg.Scopes,
		}
		// Token requests go through base as well.
		client = cc.Client(context.WithValue(context.Background(), oauth2.HTTPClient, base))
	}
	client.Timeout = cfg.Timeout

	return &HTTPForwarder{
		url:     cfg.URL,
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.Burst),
	}
}

// Forward makes a single delivery attempt.
func (f *HTTPForwarder) Forward(ctx context.Context, s *domain.Submission) error {
	if f.url == "" {
		return ErrNotConfigured
	}
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	body, err := json.Marshal(payload{
		ID:          s.ID,
		Name:        s.Name,
		Email:       s.Email,
		Subject:     s.Subject,
		Message:     s.Message,
		SubmittedAt: s.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("forward endpoint returned %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
