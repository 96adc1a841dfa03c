// Package upstream implements the HTTP pull clients for the external data
// sources: the inventory service (companies, assets, contacts), the ticketing
// system and the backup provider. Each client maps wire payloads into
// inventory entities; classification and pricing happen elsewhere.
package upstream

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/ledger/backend/internal/infrastructure/config"
)

// maxResponseSize caps upstream response bodies to guard memory
const maxResponseSize = 10 * 1024 * 1024

type authStyle int

const (
	authAPIKeyHeader authStyle = iota // X-Api-Key: <key>
	authBasicKey                      // Basic base64(<key>:X)
	authBearer                        // Authorization: Bearer <key>
)

// httpSource is the shared request plumbing for all three upstream clients
type httpSource struct {
	baseURL    string
	apiKey     string
	auth       authStyle
	httpClient *http.Client
}

func newHTTPSource(cfg config.UpstreamEndpoint, auth authStyle) httpSource {
	return httpSource{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		auth:    auth,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// getJSON issues a GET against path with query values and decodes the JSON
// response into out
func (s *httpSource) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("upstream: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	switch s.auth {
	case authAPIKeyHeader:
		req.Header.Set("X-Api-Key", s.apiKey)
	case authBasicKey:
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(s.apiKey+":X")))
	case authBearer:
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("upstream: read response %s: %w", path, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("upstream: %s returned HTTP %d", path, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("upstream: decode response %s: %w", path, err)
	}
	return nil
}
