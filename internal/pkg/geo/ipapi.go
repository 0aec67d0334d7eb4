package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ManuelReschke/ShopLedger/internal/pkg/env"
)

const defaultIPAPIBaseURL = "https://ipapi.co"

// Locator maps an IP address to an ISO country code.
type Locator interface {
	Lookup(ctx context.Context, ip string) (string, error)
}

// IPAPIClient queries an ipapi.co compatible service.
type IPAPIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewIPAPIClientFromEnv() *IPAPIClient {
	return &IPAPIClient{
		BaseURL: strings.TrimSpace(env.GetEnv("GEOIP_API_URL", defaultIPAPIBaseURL)),
		HTTPClient: &http.Client{
			Timeout: env.GetEnvDuration("GEOIP_TIMEOUT", 3*time.Second),
		},
	}
}

type ipapiResponse struct {
	CountryCode string `json:"country_code"`
	Error       bool   `json:"error"`
	Reason      string `json:"reason"`
}

// Lookup calls GET {base}/{ip}/json/ and returns the reported country code.
func (c *IPAPIClient) Lookup(ctx context.Context, ip string) (string, error) {
	parsed := net.ParseIP(strings.TrimSpace(ip))
	if parsed == nil {
		return "", fmt.Errorf("invalid ip %q", ip)
	}
	ip = parsed.String()

	// ipapi redirects when the trailing slash is missing
	u, err := url.JoinPath(c.BaseURL, ip, "json/")
	if err != nil {
		return "", fmt.Errorf("invalid GEOIP_API_URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "shopledger/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("geoip lookup failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out ipapiResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("geoip lookup: decode response: %w", err)
	}
	if out.Error {
		return "", fmt.Errorf("geoip lookup failed: %s", out.Reason)
	}
	if strings.TrimSpace(out.CountryCode) == "" {
		return "", errors.New("geoip lookup returned no country_code")
	}
	return out.CountryCode, nil
}
