// Package coraapi is a client for the CORA hours API.
package coraapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/cora-hours/internal/model"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:5000/api"

// Identity is sent with every request; the API resolves visibility and
// permissions from it.
type Identity struct {
	ConsultantID int64
	Login        string
	Name         string
	Role         string
}

// Options configures a Client.
type Options struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	Identity Identity
	Logger   zerolog.Logger
	// HTTPClient is the transport the bearer token is layered on; nil uses
	// http.DefaultClient.
	HTTPClient *http.Client
}

// Client is an authenticated CORA API client.
type Client struct {
	baseURL    string
	identity   Identity
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client. Without a token requests carry only the
// identity headers.
func NewClient(ctx context.Context, opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	httpClient := opts.HTTPClient
	if opts.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token, TokenType: "Bearer"})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if opts.Timeout > 0 {
		c := *httpClient
		c.Timeout = opts.Timeout
		httpClient = &c
	}

	return &Client{
		baseURL:    base,
		identity:   opts.Identity,
		httpClient: httpClient,
		log:        opts.Logger.With().Str("component", "coraapi").Logger(),
	}
}

// ListEntries fetches the entries visible to the identity (GET /registros).
// Both a bare array and a {"data": [...]} wrapper are accepted.
func (c *Client) ListEntries(ctx context.Context) ([]model.Entry, error) {
	body, err := c.do(ctx, http.MethodGet, "/registros", nil)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	if err := json.Unmarshal(body, &entries); err == nil {
		return entries, nil
	}
	var wrapped struct {
		Data []model.Entry `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding entries: %w", err)
	}
	return wrapped.Data, nil
}

// CreateEntry registers a new entry (POST /registrar-hora). The API answers
// with a message only, not the stored entry.
func (c *Client) CreateEntry(ctx context.Context, p model.Payload) error {
	_, err := c.do(ctx, http.MethodPost, "/registrar-hora", p)
	return err
}

// UpdateEntry replaces entry id (PUT /editar-registro/{id}).
func (c *Client) UpdateEntry(ctx context.Context, id int64, p model.Payload) error {
	_, err := c.do(ctx, http.MethodPut, "/editar-registro/"+strconv.FormatInt(id, 10), p)
	return err
}

// DeleteEntry removes entry id (DELETE /eliminar-registro/{id}).
func (c *Client) DeleteEntry(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, "/eliminar-registro/"+strconv.FormatInt(id, 10), nil)
	return err
}

// ToggleLock flips the locked flag of entry id and returns the new value.
// The API only honours it for administrators.
func (c *Client) ToggleLock(ctx context.Context, id int64) (bool, error) {
	body, err := c.do(ctx, http.MethodPut, "/toggle-bloqueado/"+strconv.FormatInt(id, 10), map[string]string{"rol": c.identity.Role})
	if err != nil {
		return false, err
	}
	var resp struct {
		Locked bool `json:"bloqueado"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("decoding lock state: %w", err)
	}
	return resp.Locked, nil
}

// ShiftInfo is a consultant's current shift and the shifts on offer.
type ShiftInfo struct {
	Current string   `json:"horario"`
	Options []string `json:"opciones"`
}

// Shift fetches the shift assigned to login (GET /consultores/horario).
func (c *Client) Shift(ctx context.Context, login string) (ShiftInfo, error) {
	body, err := c.do(ctx, http.MethodGet, "/consultores/horario?usuario="+url.QueryEscape(login), nil)
	if err != nil {
		return ShiftInfo{}, err
	}
	var info ShiftInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return ShiftInfo{}, fmt.Errorf("decoding shift: %w", err)
	}
	return info, nil
}

// Modules fetches the SAP modules assigned to login (GET /consultores/modulos).
func (c *Client) Modules(ctx context.Context, login string) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, "/consultores/modulos?usuario="+url.QueryEscape(strings.ToLower(login)), nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Modules []string `json:"modulos"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding modules: %w", err)
	}
	return resp.Modules, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-Id", requestID)
	c.setIdentity(req.Header)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("CORA API request failed: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func (c *Client) setIdentity(h http.Header) {
	if c.identity.Login != "" {
		h.Set("X-User-Usuario", strings.ToLower(strings.TrimSpace(c.identity.Login)))
	}
	if c.identity.Name != "" {
		h.Set("X-User-Name", c.identity.Name)
	}
	if c.identity.Role != "" {
		h.Set("X-User-Rol", strings.ToUpper(strings.TrimSpace(c.identity.Role)))
	}
	if c.identity.ConsultantID > 0 {
		h.Set("X-Consultor-Id", strconv.FormatInt(c.identity.ConsultantID, 10))
	}
}
