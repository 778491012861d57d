// Package aur queries the AUR RPC interface (v5) for package metadata.
package aur

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/arthur-debert/packops/pkg/errors"
	"github.com/arthur-debert/packops/pkg/logging"
)

// Defaults for the public AUR.
const (
	DefaultRPCURL    = "https://aur.archlinux.org/rpc.php"
	DefaultBaseURL   = "https://aur.archlinux.org"
	DefaultUserAgent = "packops"
	DefaultTimeout   = 30 * time.Second
)

// StringList decodes either a single string or a list of strings.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*s = nil
		} else {
			*s = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*s = many
	return nil
}

// Package is one result record of an info query.
type Package struct {
	Name        string     `json:"Name"`
	PackageBase string     `json:"PackageBase"`
	Version     string     `json:"Version"`
	Description string     `json:"Description"`
	URLPath     string     `json:"URLPath"`
	Depends     StringList `json:"Depends"`
	MakeDepends StringList `json:"MakeDepends"`
}

// response is the RPC envelope.
type response struct {
	Version     int       `json:"version"`
	Type        string    `json:"type"`
	ResultCount int       `json:"resultcount"`
	Results     []Package `json:"results"`
	Error       string    `json:"error"`
}

// Client performs info lookups against one RPC endpoint.
type Client struct {
	rpcURL    string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithTimeout sets the timeout of the default HTTP client. Non-positive
// durations keep DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// NewClient returns a client for the RPC endpoint at rpcURL.
func NewClient(rpcURL string, opts ...Option) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	c := &Client{
		rpcURL:    rpcURL,
		userAgent: DefaultUserAgent,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Info looks up name by exact match. It returns nil without error when the
// service answers with a non-success status, no results, or no result whose
// name equals name. Transport and decoding problems are returned as errors
// coded errors.ErrMetadataFetch.
func (c *Client) Info(ctx context.Context, name string) (*Package, error) {
	logger := logging.GetLogger("aur").With().Str("package", name).Logger()

	query := url.Values{}
	query.Set("v", "5")
	query.Set("type", "info")
	query.Set("by", "name")
	query.Set("arg", name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.rpcURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMetadataFetch, "creating request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrMetadataFetch, "sending request").
			WithDetail("package", name)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		logger.Debug().Int("status", resp.StatusCode).Msg("Metadata service returned non-success status")
		return nil, nil
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, errors.ErrMetadataFetch, "decoding response").
			WithDetail("package", name)
	}
	if body.Error != "" {
		logger.Debug().Str("error", body.Error).Msg("Metadata service reported an error")
		return nil, nil
	}
	if body.ResultCount == 0 {
		return nil, nil
	}

	for i := range body.Results {
		if body.Results[i].Name == name {
			pkg := body.Results[i]
			logger.Debug().Str("version", pkg.Version).Str("urlpath", pkg.URLPath).Msg("Found package metadata")
			return &pkg, nil
		}
	}
	return nil, nil
}
