// Package emass is the saf client for the eMASS REST API.
//
// It holds three things: the connection Config loaded from .env and EMASSER_*
// variables, a resty-based Client with one typed method per remote operation,
// and the embedded endpoint catalog plus the Invoker that connects catalog
// variants to those methods for `saf emasser get`.
//
// Every request is a single attempt. Failures below HTTP come back as
// *TransportError, HTTP error statuses as *APIError carrying the decoded body.
package emass

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/secureonelabs/saf/internal/logging"
	"github.com/secureonelabs/saf/internal/version"
)

// Client performs eMASS API calls for one connection context.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient builds a client for cfg. timeout bounds each request; zero means
// no client-side timeout. cfg is expected to have passed Validate.
func NewClient(cfg *Config, timeout time.Duration) (*Client, error) {
	tlsConfig, err := buildTLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	client := resty.New()

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(logging.RestyLogger{})

	client.
		SetBaseURL(cfg.HostURL).
		SetTLSClientConfig(tlsConfig).
		SetHeader("api-key", cfg.APIKey).
		SetHeader("user-uid", cfg.UserUID).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("saf/%s", version.SafVersion)).
		SetDebug(cfg.Debugging)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	// One attempt per invocation
	client.SetRetryCount(0)

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making eMASS request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("eMASS response: %s (took %v)", resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("eMASS request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &Client{
		client:  client,
		baseURL: cfg.HostURL,
	}, nil
}

// buildTLSConfig applies VerifySSL, the optional client certificate pair and
// the optional CA bundle.
func buildTLSConfig(cfg *Config) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: !cfg.VerifySSL, //nolint:gosec // operator opt-out via EMASSER_VERIFY_SSL=false
	}
	if !cfg.VerifySSL {
		logging.Warn("TLS certificate verification is disabled (%s=false)", EnvVerifySSL)
	}

	if cfg.ClientCert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCert, cfg.ClientKey)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	if cfg.CACert != "" {
		pem, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA bundle: %w", err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in CA bundle %s", cfg.CACert)
		}
		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}

// get performs one GET and decodes the response body.
func (c *Client) get(ctx context.Context, path string, pathParams map[string]string, q query) (any, error) {
	req := c.client.R().SetContext(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if len(q.values) > 0 {
		req.SetQueryParamsFromValues(q.values)
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, &TransportError{Method: http.MethodGet, URL: c.baseURL + path, Err: err}
	}

	body := decodeBody(resp.Body())
	if resp.IsError() {
		return nil, &APIError{Status: resp.StatusCode(), URL: resp.Request.URL, Body: body}
	}
	return body, nil
}

// decodeBody returns JSON bodies as generic values with numbers kept as
// json.Number, and anything else as text.
func decodeBody(raw []byte) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil || dec.More() {
		return string(raw)
	}
	return v
}

// query accumulates query parameters, skipping values the caller left unset.
type query struct {
	values url.Values
}

func newQuery() query {
	return query{values: url.Values{}}
}

func (q query) str(key, value string) query {
	if value != "" {
		q.values.Set(key, value)
	}
	return q
}

func (q query) boolean(key string, value *bool) query {
	if value != nil {
		q.values.Set(key, fmt.Sprintf("%t", *value))
	}
	return q
}

func (q query) integer(key string, value *int) query {
	if value != nil {
		q.values.Set(key, fmt.Sprintf("%d", *value))
	}
	return q
}

// list sends multi-valued filters the way eMASS expects them: comma separated.
func (q query) list(key string, values []string) query {
	if len(values) > 0 {
		q.values.Set(key, strings.Join(values, ","))
	}
	return q
}

func pathID(id int) string {
	return fmt.Sprintf("%d", id)
}
