// Package api is the HTTP client for the leads analytical store: the
// options, records, KPI, export, and ingestion endpoints. The store's
// query execution is an external collaborator; only the wire contract
// lives here.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"leadpanel/pkg/model"
)

// DefaultReadTimeout bounds the interactive read path (options, records,
// KPIs). Short on purpose: these calls sit between a keystroke and a
// repaint.
const DefaultReadTimeout = 10 * time.Second

// DefaultIngestTimeout bounds uploads and exports. The ingestion
// pipeline may chew on a large file for minutes.
const DefaultIngestTimeout = 5 * time.Minute

// Client talks to the leads API. The read path and the ingest/export
// path use separate underlying clients so a slow upload never loosens
// the interactive timeout.
type Client struct {
	baseURL string
	read    *http.Client
	slow    *http.Client
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithReadTimeout overrides the interactive-path timeout.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Client) { c.read.Timeout = d }
}

// WithIngestTimeout overrides the upload/export timeout.
func WithIngestTimeout(d time.Duration) Option {
	return func(c *Client) { c.slow.Timeout = d }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client for the given base URL (scheme + host, no
// trailing path).
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		read:    &http.Client{Timeout: DefaultReadTimeout},
		slow:    &http.Client{Timeout: DefaultIngestTimeout},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string { return c.baseURL }

// OptionsResult is the per-dimension candidate list payload.
type OptionsResult struct {
	Status []string `json:"status"`
	Course []string `json:"curso"`
	Hub    []string `json:"polo"`
	Origin []string `json:"origem"`
}

// ForDimension returns the candidate list for one dimension.
func (r *OptionsResult) ForDimension(dim model.Dimension) []string {
	switch dim {
	case model.DimStatus:
		return r.Status
	case model.DimCourse:
		return r.Course
	case model.DimHub:
		return r.Hub
	case model.DimOrigin:
		return r.Origin
	}
	return nil
}

// LeadsResult is the capped, ordered record listing plus total count.
type LeadsResult struct {
	Count int          `json:"count"`
	Rows  []model.Lead `json:"rows"`
}

// IngestResult reports a completed upload-and-promote run.
type IngestResult struct {
	OK           bool   `json:"ok"`
	RowsLoaded   int    `json:"rows_loaded"`
	Filename     string `json:"filename"`
	StagingTable string `json:"staging_table"`
	LoadJobID    string `json:"load_job_id"`
	PipelineProc string `json:"pipeline_proc"`
	PipelineJob  string `json:"pipeline_job_id"`
}

// Options fetches the candidate lists for every dimension.
func (c *Client) Options(ctx context.Context) (*OptionsResult, error) {
	var out OptionsResult
	if err := c.getJSON(ctx, "options", "/api/options", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Leads fetches the record listing for compiled filter parameters.
func (c *Client) Leads(ctx context.Context, params url.Values) (*LeadsResult, error) {
	var out LeadsResult
	if err := c.getJSON(ctx, "leads", "/api/leads", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// KPIs fetches the aggregate figures for the same compiled parameters.
func (c *Client) KPIs(ctx context.Context, params url.Values) (*model.KPISummary, error) {
	var out model.KPISummary
	if err := c.getJSON(ctx, "kpis", "/api/kpis", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ingest streams the file at path to the upload endpoint as a multipart
// request with the given source label. The server stages the rows and
// runs its promotion pipeline before responding, so this call rides the
// slow client.
func (c *Client) Ingest(ctx context.Context, path, source string) (*IngestResult, error) {
	const op = "ingest"

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".csv" && ext != ".xlsx" && ext != ".xls" {
		return nil, fmt.Errorf("%s: unsupported file type %q (want .csv or .xlsx)", op, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	if source = strings.TrimSpace(source); source == "" {
		source = "UPLOAD_PAINEL"
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		err := func() error {
			if err := mw.WriteField("source", source); err != nil {
				return err
			}
			part, err := mw.CreateFormFile("file", filepath.Base(path))
			if err != nil {
				return err
			}
			if _, err := io.Copy(part, f); err != nil {
				return err
			}
			return mw.Close()
		}()
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.slow.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.serverError(op, resp)
	}

	var out IngestResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", op, err)
	}
	return &out, nil
}

// Export streams the server-side CSV projection for the compiled
// parameters into w and returns the byte count.
func (c *Client) Export(ctx context.Context, params url.Values, w io.Writer) (int64, error) {
	const op = "export"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/export", params), nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.slow.Do(req)
	if err != nil {
		return 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, c.serverError(op, resp)
	}
	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, &TransportError{Op: op, Err: err}
	}
	return n, nil
}

func (c *Client) endpoint(path string, params url.Values) string {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (c *Client) getJSON(ctx context.Context, op, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, params), nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.read.Do(req)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.serverError(op, resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// serverError extracts the structured error envelope from a non-success
// response, falling back to the HTTP status text.
func (c *Client) serverError(op string, resp *http.Response) error {
	se := &ServerError{Op: op, Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err == nil {
		var payload errorPayload
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.Message != "" {
			se.Message = payload.Message
			se.Details = payload.Details
		}
	}
	if se.Message == "" {
		se.Message = http.StatusText(resp.StatusCode)
	}
	c.logger.Printf("api: %s failed: %v", op, se)
	return se
}
