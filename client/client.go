// Package client is the Go client for the CloudHire jobs API. It papers over
// the envelope shapes different backend revisions produce and can optionally
// fall back to bundled fixture data when the backend is unreachable, so demo
// environments keep working offline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"syscall"

	"github.com/cloudhire/cloudhire-backend/internal/ident"
)

// Job is one job record as the API returns it; fields beyond id/title are
// whatever was stored.
type Job map[string]any

// JobList is the normalized listing envelope.
type JobList struct {
	Jobs  []Job `json:"jobs"`
	Total int   `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// ApplicationRequest is the apply payload.
type ApplicationRequest struct {
	CVFileKey   string `json:"cvFileKey"`
	CoverLetter string `json:"coverLetter,omitempty"`
	AllowSearch bool   `json:"allowSearch,omitempty"`
}

// ApplicationReceipt is the apply response.
type ApplicationReceipt struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	CVFileKey     string `json:"cvFileKey"`
	SubmittedAt   string `json:"submittedAt"`
}

// APIError is a non-2xx response from the backend. Network-level failures are
// never APIErrors; they surface as transport errors (or fixtures, when
// enabled).
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

type Client struct {
	baseURL     string
	http        *http.Client
	token       string
	useFixtures bool
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sets the bearer token attached to mutating calls. List and get
// are public and never send it.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithFixtureFallback enables substituting bundled fixture data when a
// request fails at the network level. Off by default: offline/demo mode is an
// explicit choice, not something the client decides on its own.
func WithFixtureFallback() Option {
	return func(c *Client) { c.useFixtures = true }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListJobs fetches one page of valid job records.
func (c *Client) ListJobs(ctx context.Context, page, limit int) (*JobList, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	body, err := c.do(ctx, http.MethodGet, "/jobs?"+q.Encode(), nil, false)
	if err != nil {
		if c.useFixtures && isNetworkError(err) {
			return fixtureList(page, limit), nil
		}
		return nil, err
	}
	return normalizeList(body, page, limit)
}

// GetJob fetches one record by id.
func (c *Client) GetJob(ctx context.Context, id string) (Job, error) {
	id = ident.Normalize(id)
	if id == "" {
		return nil, errors.New("job id is required")
	}

	body, err := c.do(ctx, http.MethodGet, "/jobs?id="+url.QueryEscape(id), nil, false)
	if err != nil {
		if c.useFixtures && isNetworkError(err) {
			return fixtureJob(id)
		}
		return nil, err
	}
	return normalizeJob(body)
}

// CreateJob creates (or overwrites) a job record. When the payload has no id
// the client generates one, the same way the admin form does.
func (c *Client) CreateJob(ctx context.Context, job Job) (Job, error) {
	if id, _ := job["id"].(string); ident.Normalize(id) == "" {
		job = cloneJob(job)
		job["id"] = ident.NewJobID()
	}

	body, err := c.do(ctx, http.MethodPost, "/jobs", job, true)
	if err != nil {
		return nil, err
	}
	return extractItem(body)
}

// UpdateJob applies a partial field delta to the record.
func (c *Client) UpdateJob(ctx context.Context, id string, fields map[string]any) (Job, error) {
	id = ident.Normalize(id)
	if id == "" {
		return nil, errors.New("job id is required")
	}

	body, err := c.do(ctx, http.MethodPut, "/jobs?id="+url.QueryEscape(id), fields, true)
	if err != nil {
		return nil, err
	}
	return extractItem(body)
}

// DeleteJob removes the record. Deleting an id that does not exist succeeds.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	id = ident.Normalize(id)
	if id == "" {
		return errors.New("job id is required")
	}
	_, err := c.do(ctx, http.MethodDelete, "/jobs?id="+url.QueryEscape(id), nil, true)
	return err
}

// SubmitApplication applies to a job. A bearer token must have been
// configured; the apply surface is never public.
func (c *Client) SubmitApplication(ctx context.Context, jobID string, app ApplicationRequest) (*ApplicationReceipt, error) {
	jobID = ident.Normalize(jobID)
	if jobID == "" {
		return nil, errors.New("job id is required")
	}
	if app.CVFileKey == "" {
		return nil, errors.New("cvFileKey is required")
	}
	if c.token == "" {
		return nil, errors.New("authentication token is required")
	}

	body, err := c.do(ctx, http.MethodPost, "/jobs/"+url.PathEscape(jobID)+"/apply", app, true)
	if err != nil {
		if c.useFixtures && isNetworkError(err) {
			return fixtureReceipt(jobID, app.CVFileKey), nil
		}
		return nil, err
	}

	var receipt ApplicationReceipt
	if err := json.Unmarshal(unwrapData(body), &receipt); err != nil {
		return nil, fmt.Errorf("decode application receipt: %w", err)
	}
	return &receipt, nil
}

// do performs one request and returns the raw success body. Non-2xx turns
// into *APIError; transport failures come back as-is for the caller to
// classify.
func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func parseAPIError(status int, body []byte) *APIError {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Code    string `json:"code"`
	}
	_ = json.Unmarshal(body, &parsed)

	msg := parsed.Error
	if msg == "" {
		msg = parsed.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Code: parsed.Code, Message: msg}
}

// isNetworkError reports whether err is a transport-level failure (refused or
// reset connections, DNS misses, timeouts) as opposed to a response the
// server actually produced. Caller cancellation is deliberately not network.
func isNetworkError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// normalizeList turns any of the observed listing envelopes — bare array,
// {jobs:[...]}, {data:[...]}, {data:{jobs:[...]}} — into one JobList, and
// drops records missing an id or title in case the server didn't.
func normalizeList(body []byte, page, limit int) (*JobList, error) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var jobs []Job
		if err := json.Unmarshal(trimmed, &jobs); err != nil {
			return nil, fmt.Errorf("decode job list: %w", err)
		}
		jobs = filterValid(jobs)
		return &JobList{Jobs: jobs, Total: len(jobs), Page: 1, Limit: len(jobs)}, nil
	}

	var env struct {
		Jobs  []Job           `json:"jobs"`
		Total *int            `json:"total"`
		Page  *int            `json:"page"`
		Limit *int            `json:"limit"`
		Data  json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("decode job list envelope: %w", err)
	}

	if len(env.Data) > 0 {
		return normalizeList(env.Data, page, limit)
	}

	jobs := filterValid(env.Jobs)
	out := &JobList{Jobs: jobs, Total: len(jobs), Page: page, Limit: limit}
	if env.Total != nil {
		out.Total = *env.Total
	}
	if env.Page != nil {
		out.Page = *env.Page
	}
	if env.Limit != nil {
		out.Limit = *env.Limit
	}
	return out, nil
}

func normalizeJob(body []byte) (Job, error) {
	var job Job
	if err := json.Unmarshal(unwrapData(body), &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return job, nil
}

// unwrapData peels one {data: ...} layer when present.
func unwrapData(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return body
}

func extractItem(body []byte) (Job, error) {
	var env struct {
		Item Job `json:"item"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response item: %w", err)
	}
	if env.Item != nil {
		return env.Item, nil
	}
	return normalizeJob(body)
}

func filterValid(jobs []Job) []Job {
	out := make([]Job, 0, len(jobs))
	for _, j := range jobs {
		id, _ := j["id"].(string)
		title, _ := j["title"].(string)
		if id != "" && title != "" {
			out = append(out, j)
		}
	}
	return out
}

func cloneJob(j Job) Job {
	out := make(Job, len(j)+1)
	for k, v := range j {
		out[k] = v
	}
	return out
}
