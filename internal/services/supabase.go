package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/P3chys/content-tools/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

const bodySnippetLimit = 200

// APIError is returned when the backend answers with an unexpected status.
type APIError struct {
	Op     string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Op, e.Status, e.Body)
}

// SupabaseClient carries the base URL and API key shared by the storage and
// REST endpoints.
type SupabaseClient struct {
	baseURL string
	key     string
	http    *http.Client
}

func NewSupabaseClient(cfg *config.Config) *SupabaseClient {
	return &SupabaseClient{
		baseURL: strings.TrimRight(cfg.SupabaseURL, "/"),
		key:     cfg.SupabaseKey,
		http:    &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

func (c *SupabaseClient) BaseURL() string {
	return c.baseURL
}

func (c *SupabaseClient) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("apikey", c.key)
	return req, nil
}

// do sends req and returns the response when its status is one of ok, or any
// 2xx when ok is empty. The caller closes the body of a successful response.
func (c *SupabaseClient) do(req *http.Request, op string, ok ...int) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if statusAccepted(resp.StatusCode, ok) {
		return resp, nil
	}

	defer resp.Body.Close()
	return nil, &APIError{Op: op, Status: resp.StatusCode, Body: readSnippet(resp.Body)}
}

func statusAccepted(status int, ok []int) bool {
	if len(ok) == 0 {
		return status >= 200 && status < 300
	}
	for _, code := range ok {
		if status == code {
			return true
		}
	}
	return false
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, bodySnippetLimit))
	return strings.TrimSpace(strings.ToValidUTF8(string(b), ""))
}

// KeyInfo is what can be read from a Supabase API key without its secret.
type KeyInfo struct {
	Role      string
	Issuer    string
	ExpiresAt time.Time
}

func (k KeyInfo) Expired(now time.Time) bool {
	return !k.ExpiresAt.IsZero() && now.After(k.ExpiresAt)
}

var ErrMalformedKey = errors.New("api key is not a JWT")

// InspectAPIKey decodes the claims of a Supabase anon/service key. The
// signature is not verified; only the backend can do that.
func InspectAPIKey(key string) (KeyInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return KeyInfo{}, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}

	var info KeyInfo
	info.Role, _ = claims["role"].(string)
	info.Issuer, _ = claims.GetIssuer()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	return info, nil
}
