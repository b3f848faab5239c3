// Package fhirclient implements the resource-server client contract the
// mapping layer consumes. All persisted state lives on the upstream FHIR
// server; this client never caches resources across calls.
package fhirclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/medimind/emr-admin/internal/platform/fhir"
)

// Resource is any FHIR resource struct the client can persist.
type Resource interface {
	ResourceName() string
	ResourceID() string
	ResourceMeta() *fhir.Meta
}

// ResourceClient is the narrow contract domain services depend on. The HTTP
// Client is the production implementation; tests substitute fakes.
type ResourceClient interface {
	Read(ctx context.Context, resourceType, id string, out any) error
	Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error)
	Create(ctx context.Context, res Resource) error
	Update(ctx context.Context, res Resource) error
	Delete(ctx context.Context, resourceType, id string) error
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  zerolog.Logger
}

func New(baseURL, token string, timeout time.Duration, logger zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "fhirclient").Logger(),
	}
}

// Read fetches one resource by id and decodes it into out.
func (c *Client) Read(ctx context.Context, resourceType, id string, out any) error {
	op := "read " + resourceType
	resp, err := c.do(ctx, http.MethodGet, c.resourceURL(resourceType, id), nil, "")
	if err != nil {
		return &fhir.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		return &fhir.NotFoundError{Resource: resourceType, Key: id}
	case resp.StatusCode >= 300:
		return &fhir.NetworkError{Op: op, Status: resp.StatusCode}
	}
	return decodeBody(resp.Body, out, op)
}

// Search runs a search and returns the result Bundle.
func (c *Client) Search(ctx context.Context, resourceType string, params url.Values) (*fhir.Bundle, error) {
	op := "search " + resourceType
	u := c.baseURL + "/" + resourceType
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return nil, &fhir.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &fhir.NetworkError{Op: op, Status: resp.StatusCode}
	}
	var bundle fhir.Bundle
	if err := decodeBody(resp.Body, &bundle, op); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Create posts a new resource; the server assigns the id, which is decoded
// back into res.
func (c *Client) Create(ctx context.Context, res Resource) error {
	op := "create " + res.ResourceName()
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}
	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/"+res.ResourceName(), body, "")
	if err != nil {
		return &fhir.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &fhir.NetworkError{Op: op, Status: resp.StatusCode}
	}
	return decodeBody(resp.Body, res, op)
}

// Update replaces a resource that already carries its id. When the resource
// carries meta.versionId the write is conditional (If-Match), so a stale
// whole-document overwrite is rejected instead of silently clobbering a
// concurrent writer.
func (c *Client) Update(ctx context.Context, res Resource) error {
	op := "update " + res.ResourceName()
	if res.ResourceID() == "" {
		return fmt.Errorf("%s: resource has no id", op)
	}
	body, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%s: encode: %w", op, err)
	}
	etag := ""
	if meta := res.ResourceMeta(); meta != nil && meta.VersionID != "" {
		etag = `W/"` + meta.VersionID + `"`
	}
	resp, err := c.do(ctx, http.MethodPut, c.resourceURL(res.ResourceName(), res.ResourceID()), body, etag)
	if err != nil {
		return &fhir.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed:
		return &fhir.VersionConflictError{Resource: res.ResourceName(), ID: res.ResourceID()}
	case resp.StatusCode == http.StatusNotFound:
		return &fhir.NotFoundError{Resource: res.ResourceName(), Key: res.ResourceID()}
	case resp.StatusCode >= 300:
		return &fhir.NetworkError{Op: op, Status: resp.StatusCode}
	}
	return decodeBody(resp.Body, res, op)
}

// Delete removes a resource. Deleting an already-absent resource is not an
// error.
func (c *Client) Delete(ctx context.Context, resourceType, id string) error {
	op := "delete " + resourceType
	resp, err := c.do(ctx, http.MethodDelete, c.resourceURL(resourceType, id), nil, "")
	if err != nil {
		return &fhir.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound && resp.StatusCode != http.StatusGone {
		return &fhir.NetworkError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) resourceURL(resourceType, id string) string {
	return c.baseURL + "/" + resourceType + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, u string, body []byte, etag string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/fhir+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/fhir+json")
	}
	if etag != "" {
		req.Header.Set("If-Match", etag)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	evt := c.logger.Debug()
	if err != nil {
		evt = c.logger.Error().Err(err)
	}
	evt.Str("method", method).Str("url", u).Dur("latency", time.Since(start))
	if resp != nil {
		evt = evt.Int("status", resp.StatusCode)
	}
	evt.Msg("resource server call")
	return resp, err
}

func decodeBody(r io.Reader, out any, op string) error {
	if out == nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return &fhir.NetworkError{Op: op, Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}
