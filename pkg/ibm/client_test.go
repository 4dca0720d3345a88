package ibm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastPoll keeps client tests quick.
func fastPoll() PollPolicy {
	return PollPolicy{
		MaxAttempts: 10,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
	}
}

// serviceStub is a minimal in-process stand-in for the hosted quantum
// service API.
type serviceStub struct {
	t *testing.T

	mux *http.ServeMux

	// pollsUntilDone is how many status fetches return RUNNING before
	// the job completes.
	pollsUntilDone int32

	counts map[string]int

	logins  atomic.Int32
	submits atomic.Int32
	fetches atomic.Int32

	lastSubmit submitRequest
	lastAuth   string
}

func newServiceStub(t *testing.T) *serviceStub {
	s := &serviceStub{
		t:      t,
		mux:    http.NewServeMux(),
		counts: map[string]int{"00": 1},
	}

	s.mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		s.logins.Add(1)
		var req loginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Email != "alice@example.com" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(apiError{})
			return
		}
		_ = json.NewEncoder(w).Encode(loginResponse{ID: "token-1", TTL: 3600})
	})

	s.mux.HandleFunc("POST /jobs", func(w http.ResponseWriter, r *http.Request) {
		s.submits.Add(1)
		s.lastAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&s.lastSubmit))
		_ = json.NewEncoder(w).Encode(Job{
			ID:          "job-1",
			Status:      StatusQueued,
			SubmittedAt: time.Now(),
		})
	})

	s.mux.HandleFunc("GET /jobs/job-1", func(w http.ResponseWriter, r *http.Request) {
		n := s.fetches.Add(1)
		job := Job{ID: "job-1", Status: StatusRunning}
		if n > atomic.LoadInt32(&s.pollsUntilDone) {
			job.Status = StatusCompleted
			job.Counts = s.counts
		}
		_ = json.NewEncoder(w).Encode(job)
	})

	return s
}

func (s *serviceStub) start() *httptest.Server {
	srv := httptest.NewServer(s.mux)
	s.t.Cleanup(srv.Close)
	return srv
}

func validCreds() Credentials {
	return Credentials{User: "alice@example.com", Password: "secret"}
}

func TestClientLogin(t *testing.T) {
	stub := newServiceStub(t)
	srv := stub.start()

	t.Run("success", func(t *testing.T) {
		client := NewClient(validCreds(), WithBaseURL(srv.URL))
		require.NoError(t, client.Login(context.Background()))
		assert.Equal(t, "token-1", client.token)
	})

	t.Run("bad credentials", func(t *testing.T) {
		client := NewClient(Credentials{User: "alice@example.com", Password: "wrong"}, WithBaseURL(srv.URL))
		err := client.Login(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrAuthFailed)
	})
}

func TestClientRun(t *testing.T) {
	stub := newServiceStub(t)
	stub.pollsUntilDone = 2
	stub.counts = map[string]int{"00": 700, "11": 324}
	srv := stub.start()

	client := NewClient(validCreds(), WithBaseURL(srv.URL), WithPollPolicy(fastPoll()))

	job, err := client.Run(context.Background(), "ibmqx4", "OPENQASM 2.0;\n", 1024)
	require.NoError(t, err)

	assert.Equal(t, "job-1", job.ID)
	assert.Equal(t, StatusCompleted, job.Status)
	assert.Equal(t, "ibmqx4", job.Backend)
	assert.Equal(t, 1024, job.Shots)
	assert.Equal(t, 700, job.Counts["00"])

	// Login happened implicitly once, and the submitted payload carries
	// the program and backend selector.
	assert.Equal(t, int32(1), stub.logins.Load())
	assert.Equal(t, "OPENQASM 2.0;\n", stub.lastSubmit.QASM)
	assert.Equal(t, "ibmqx4", stub.lastSubmit.Backend.Name)
	assert.Equal(t, 1024, stub.lastSubmit.Shots)
	assert.NotEmpty(t, stub.lastSubmit.Ref)
	assert.Equal(t, "token-1", stub.lastAuth)
}

func TestClientAwaitFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(loginResponse{ID: "token-1"})
	})
	mux.HandleFunc("GET /jobs/job-err", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Job{ID: "job-err", Status: StatusError, Error: "calibration in progress"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(validCreds(), WithBaseURL(srv.URL), WithPollPolicy(fastPoll()))

	_, err := client.Await(context.Background(), "job-err")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrJobFailed)
	assert.Contains(t, err.Error(), "calibration in progress")
}

func TestClientErrorEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(loginResponse{ID: "token-1"})
	})
	mux.HandleFunc("POST /jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		env := apiError{}
		env.Error.Message = "malformed program"
		_ = json.NewEncoder(w).Encode(env)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := NewClient(validCreds(), WithBaseURL(srv.URL))

	_, err := client.Submit(context.Background(), "ibmqx4", "bogus", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed program")
}

func TestPollPolicyAwait(t *testing.T) {
	t.Run("done immediately", func(t *testing.T) {
		p := fastPoll()
		calls := 0
		err := p.Await(context.Background(), func() (bool, error) {
			calls++
			return true, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		p := fastPoll()
		err := p.Await(context.Background(), func() (bool, error) {
			return false, nil
		})
		assert.ErrorIs(t, err, ErrPollTimeout)
	})

	t.Run("fetch error aborts", func(t *testing.T) {
		p := fastPoll()
		boom := errors.New("boom")
		err := p.Await(context.Background(), func() (bool, error) {
			return false, boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("context cancellation", func(t *testing.T) {
		p := PollPolicy{MaxAttempts: 100, InitialWait: time.Hour, MaxWait: time.Hour}
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		err := p.Await(ctx, func() (bool, error) {
			return false, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestJobProbabilities(t *testing.T) {
	t.Run("normalizes", func(t *testing.T) {
		job := &Job{Counts: map[string]int{"00": 3, "11": 1}}
		probs := job.Probabilities()
		require.Len(t, probs, 2)
		assert.InDelta(t, 0.75, probs["00"], 1e-12)
		assert.InDelta(t, 0.25, probs["11"], 1e-12)
	})

	t.Run("no counts", func(t *testing.T) {
		job := &Job{}
		assert.Nil(t, job.Probabilities())
	})
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, StatusQueued.Terminal())
	assert.False(t, StatusRunning.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusError.Terminal())
}
