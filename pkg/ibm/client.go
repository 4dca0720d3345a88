package ibm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/projectq-plugins/projectq-go/pkg/log"
)

// Client errors.
var (
	ErrAuthFailed  = errors.New("hardware service authentication failed")
	ErrJobFailed   = errors.New("hardware job failed")
	ErrPollTimeout = errors.New("gave up waiting for hardware job")
)

// Client talks to the hosted quantum service HTTP API.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   Credentials
	poll    PollPolicy
	logger  log.Logger

	mu    sync.Mutex
	token string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the service endpoint. Tests point this at a
// local server.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.httpc = h }
}

// WithPollPolicy overrides the job polling policy.
func WithPollPolicy(p PollPolicy) ClientOption {
	return func(c *Client) { c.poll = p }
}

// WithClientLogger attaches an execution event logger.
func WithClientLogger(l log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a service client for the given credentials.
func NewClient(creds Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
		creds:   creds,
		poll:    DefaultPollPolicy(),
		logger:  log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.NoopLogger{}
	}
	return c
}

// Login authenticates and caches the session token.
func (c *Client) Login(ctx context.Context) error {
	body, err := json.Marshal(loginRequest{
		Email:    c.creds.User,
		Password: c.creds.Password,
	})
	if err != nil {
		return err
	}

	var resp loginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &resp); err != nil {
		return fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	if resp.ID == "" {
		return fmt.Errorf("%w: empty session token", ErrAuthFailed)
	}

	c.mu.Lock()
	c.token = resp.ID
	c.mu.Unlock()
	return nil
}

// Submit sends a program to the service and returns the accepted job.
func (c *Client) Submit(ctx context.Context, backend, qasm string, shots int) (*Job, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	ref := uuid.NewString()
	body, err := json.Marshal(submitRequest{
		QASM:    qasm,
		Backend: backendName{Name: backend},
		Shots:   shots,
		Ref:     ref,
	})
	if err != nil {
		return nil, err
	}

	var job Job
	if err := c.do(ctx, http.MethodPost, "/jobs", body, &job); err != nil {
		return nil, fmt.Errorf("submitting job: %w", err)
	}
	job.Ref = ref
	job.Backend = backend
	job.QASM = qasm
	job.Shots = shots
	if job.SubmittedAt.IsZero() {
		job.SubmittedAt = time.Now()
	}

	c.logJob(&job, "submitted")
	return &job, nil
}

// Job fetches the current state of a job.
func (c *Client) Job(ctx context.Context, jobID string) (*Job, error) {
	if err := c.ensureToken(ctx); err != nil {
		return nil, err
	}

	var job Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+jobID, nil, &job); err != nil {
		return nil, fmt.Errorf("fetching job %s: %w", jobID, err)
	}
	return &job, nil
}

// Await polls a job until it reaches a terminal status. A job in
// StatusError yields ErrJobFailed with the service message attached.
func (c *Client) Await(ctx context.Context, jobID string) (*Job, error) {
	var last *Job
	err := c.poll.Await(ctx, func() (bool, error) {
		job, err := c.Job(ctx, jobID)
		if err != nil {
			return false, err
		}
		last = job
		return job.Status.Terminal(), nil
	})
	if err != nil {
		return nil, err
	}

	if last.Status == StatusError {
		c.logJob(last, "error")
		return nil, fmt.Errorf("%w: %s", ErrJobFailed, last.Error)
	}
	c.logJob(last, "completed")
	return last, nil
}

// Run submits a program and awaits its result.
func (c *Client) Run(ctx context.Context, backend, qasm string, shots int) (*Job, error) {
	job, err := c.Submit(ctx, backend, qasm, shots)
	if err != nil {
		return nil, err
	}
	done, err := c.Await(ctx, job.ID)
	if err != nil {
		return nil, err
	}
	done.Ref = job.Ref
	done.Backend = backend
	done.QASM = qasm
	done.Shots = shots
	done.SubmittedAt = job.SubmittedAt
	return done, nil
}

// ensureToken logs in once per client lifetime.
func (c *Client) ensureToken(ctx context.Context) error {
	c.mu.Lock()
	have := c.token != ""
	c.mu.Unlock()
	if have {
		return nil
	}
	return c.Login(ctx)
}

// do performs one authenticated API call and decodes the response.
func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	url := c.baseURL + path

	c.mu.Lock()
	token := c.token
	c.mu.Unlock()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope apiError
		if json.Unmarshal(data, &envelope) == nil && envelope.Error.Message != "" {
			return fmt.Errorf("%s %s: %s (status %d)", method, path, envelope.Error.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
	}
	return nil
}

// logJob emits a job transition event.
func (c *Client) logJob(job *Job, status string) {
	c.logger.Log(log.Event{
		Timestamp: time.Now(),
		RunID:     job.Ref,
		Device:    ShortName,
		Category:  log.CategoryJob,
		Job: &log.JobEvent{
			JobID:       job.ID,
			Backend:     job.Backend,
			Status:      status,
			Shots:       job.Shots,
			ProgramSize: len(job.QASM),
		},
	})
}
