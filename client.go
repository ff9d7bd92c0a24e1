package swifttoo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultBaseURL is the production TOO API endpoint.
const DefaultBaseURL = "https://www.swift.psu.edu/toop/api/v1"

// AnonymousUser is the read-only identity accepted by the API when no
// personal credentials are configured.
const AnonymousUser = "anonymous"

var (
	// ErrNotFound reports that a resource or query match does not exist.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized reports rejected credentials or an invalid signature.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError carries a failure reported by the TOO API itself.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: %s (status %d)", e.Detail, e.StatusCode)
}

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// ClientConfig collects the settings for a Client. Zero values fall back to
// the anonymous identity against the production endpoint.
type ClientConfig struct {
	BaseURL      string
	Username     string
	SharedSecret string
	Timeout      time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
	Debug        bool
}

// Client wraps http.Client with base URL handling and request signing so the
// query types do not duplicate transport boilerplate.
type Client struct {
	baseURL  string
	username string
	secret   string
	client   *http.Client
	logger   *slog.Logger
	debug    bool
}

func NewClient(cfg ClientConfig) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.TrimRight(base, "/")

	username := strings.TrimSpace(cfg.Username)
	secret := strings.TrimSpace(cfg.SharedSecret)
	if username == "" {
		username = AnonymousUser
	}
	if secret == "" && username == AnonymousUser {
		secret = AnonymousUser
	}

	var client *http.Client
	if cfg.HTTPClient == nil {
		client = &http.Client{Timeout: timeoutOrDefault(cfg.Timeout)}
	} else {
		// Copy so the timeout override never touches the caller's client.
		copied := *cfg.HTTPClient
		if cfg.Timeout > 0 {
			copied.Timeout = cfg.Timeout
		}
		client = &copied
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:  base,
		username: username,
		secret:   secret,
		client:   client,
		logger:   logger,
		debug:    cfg.Debug,
	}
}

// Username returns the identity requests are signed as.
func (c *Client) Username() string { return c.username }

func timeoutOrDefault(value time.Duration) time.Duration {
	if value <= 0 {
		return 60 * time.Second
	}
	return value
}

// signToken mints the short-lived HS256 token the API expects on every call.
func (c *Client) signToken() (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   c.username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(5 * time.Minute)),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(c.secret))
	if err != nil {
		return "", fmt.Errorf("sign request token: %w", err)
	}
	return signed, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, values url.Values, body io.Reader) (*http.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if values != nil {
		req.URL.RawQuery = values.Encode()
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.signToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	return req, nil
}

// get performs a signed GET and decodes a 200 body into out. A 404 maps to
// ErrNotFound so callers can treat empty query results as a warning.
func (c *Client) get(ctx context.Context, endpoint string, values url.Values, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, values, nil)
	if err != nil {
		c.logger.Error("request build failed", slog.String("endpoint", endpoint), slog.Any("error", err))
		return err
	}
	c.logger.Debug("api request", slog.String("method", http.MethodGet), slog.String("url", req.URL.String()))

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("api request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return fmt.Errorf("api request failed: %w", err)
	}
	defer res.Body.Close()
	c.logger.Debug("api response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if err := c.checkStatus(res, http.StatusOK); err != nil {
		return err
	}
	return decodeBody(res.Body, out)
}

// send performs a signed POST, PUT or DELETE carrying a JSON payload. Created
// is 201; a plain 200 means accepted with warnings attached to the body.
func (c *Client) send(ctx context.Context, method, endpoint string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := c.newRequest(ctx, method, endpoint, nil, body)
	if err != nil {
		c.logger.Error("request build failed", slog.String("endpoint", endpoint), slog.Any("error", err))
		return err
	}
	c.logger.Debug("api request", slog.String("method", method), slog.String("url", req.URL.String()))

	res, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("api request error", slog.String("endpoint", endpoint), slog.Any("error", err))
		return fmt.Errorf("api request failed: %w", err)
	}
	defer res.Body.Close()
	c.logger.Debug("api response", slog.Int("status", res.StatusCode), slog.String("url", req.URL.String()))

	if err := c.checkStatus(res, http.StatusOK, http.StatusCreated); err != nil {
		return err
	}
	return decodeBody(res.Body, out)
}

func (c *Client) checkStatus(res *http.Response, accepted ...int) error {
	for _, code := range accepted {
		if res.StatusCode == code {
			return nil
		}
	}
	switch res.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	raw, _ := io.ReadAll(io.LimitReader(res.Body, 2048))
	detail := parseDetail(raw)
	c.logger.Error("api unexpected status",
		slog.Int("status", res.StatusCode),
		slog.String("url", res.Request.URL.String()),
		slog.String("detail", detail),
	)
	return &APIError{StatusCode: res.StatusCode, Detail: detail}
}

func parseDetail(raw []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Detail) != "" {
		return strings.TrimSpace(payload.Detail)
	}
	return strings.TrimSpace(string(raw))
}

func decodeBody(body io.Reader, out any) error {
	if out == nil {
		io.Copy(io.Discard, body)
		return nil
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
