// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MohiCodeHub/NeuralPilot/internal/chatapi"
	"github.com/MohiCodeHub/NeuralPilot/internal/model"
	"github.com/MohiCodeHub/NeuralPilot/internal/session"
)

// =============================================================================
// HELPERS
// =============================================================================

type fakeSender struct {
	mu    sync.Mutex
	calls []chatapi.ChatRequest
	fn    func(ctx context.Context, req chatapi.ChatRequest) (*chatapi.ChatResponse, error)
}

func (f *fakeSender) Chat(ctx context.Context, req chatapi.ChatRequest) (*chatapi.ChatResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return &chatapi.ChatResponse{Response: "ok"}, nil
	}
	return fn(ctx, req)
}

func (f *fakeSender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func replyWith(text string) func(context.Context, chatapi.ChatRequest) (*chatapi.ChatResponse, error) {
	return func(context.Context, chatapi.ChatRequest) (*chatapi.ChatResponse, error) {
		return &chatapi.ChatResponse{Response: text}, nil
	}
}

// blockUntilDone waits for ctx and reports the call on started.
func blockUntilDone(started chan<- struct{}) func(context.Context, chatapi.ChatRequest) (*chatapi.ChatResponse, error) {
	return func(ctx context.Context, _ chatapi.ChatRequest) (*chatapi.ChatResponse, error) {
		close(started)
		<-ctx.Done()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &chatapi.ClientError{Type: chatapi.ErrTypeTimeout, Message: "request timed out", Cause: ctx.Err()}
		}
		return nil, &chatapi.ClientError{Type: chatapi.ErrTypeCanceled, Message: "request canceled", Cause: ctx.Err()}
	}
}

func newTestController(t *testing.T, sender Sender, opts ...Option) *Controller {
	t.Helper()
	c, err := New("sess-1", sender, opts...)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

// shape is the comparable part of an entry.
type shape struct {
	Role    model.Role
	State   model.EntryState
	Content string
}

func shapes(entries []model.Entry) []shape {
	out := make([]shape, len(entries))
	for i, e := range entries {
		out[i] = shape{e.Role, e.State, e.Content}
	}
	return out
}

func chatServer(t *testing.T, h http.HandlerFunc) (*httptest.Server, *chatapi.Client) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, chatapi.NewClientWithConfig(&chatapi.ClientConfig{
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	})
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func TestNew_RequiresSession(t *testing.T) {
	for _, id := range []string{"", "   ", "\t\n"} {
		var logBuf bytes.Buffer
		sender := &fakeSender{}

		c, err := New(id, sender, WithLogger(zerolog.New(&logBuf)))
		assert.True(t, errors.Is(err, ErrNoSession), "id %q: err = %v", id, err)
		assert.Nil(t, c)
		assert.Contains(t, logBuf.String(), "session id is required")
		assert.Equal(t, 0, sender.callCount())
	}
}

func TestNew_RequiresSender(t *testing.T) {
	_, err := New("sess", nil)
	assert.True(t, errors.Is(err, ErrNoSender))
}

func TestNew_SeedsWelcomeWithoutRequest(t *testing.T) {
	sender := &fakeSender{}
	c := newTestController(t, sender)

	want := []shape{{model.RoleBot, model.StateFinal, model.WelcomeMessage}}
	if diff := cmp.Diff(want, shapes(c.Snapshot())); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 0, sender.callCount())
	assert.Equal(t, "sess-1", c.SessionID())
	assert.Equal(t, DefaultTimeout, c.Timeout())

	custom := newTestController(t, sender, WithWelcome("hello"))
	assert.Equal(t, "hello", custom.Snapshot()[0].Content)

	none := newTestController(t, sender, WithWelcome(""))
	assert.Empty(t, none.Snapshot())
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_EmptyInputIsNoop(t *testing.T) {
	sender := &fakeSender{}
	c := newTestController(t, sender)
	before := c.Snapshot()

	for _, text := range []string{"", " ", "\n\t  \n"} {
		_, err := c.Submit(text)
		assert.True(t, errors.Is(err, ErrEmptyInput))

		entry, err := c.Send(context.Background(), text)
		assert.True(t, errors.Is(err, ErrEmptyInput))
		assert.Empty(t, entry.ID)
	}

	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, 0, sender.callCount())
}

func TestSubmit_AppendsUserThenPending(t *testing.T) {
	c := newTestController(t, &fakeSender{})

	req, err := c.Submit("  What is dropout?  \n")
	require.NoError(t, err)
	assert.Equal(t, "What is dropout?", req.Message)
	assert.Equal(t, "sess-1", req.SessionID)

	snap := c.Snapshot()
	want := []shape{
		{model.RoleBot, model.StateFinal, model.WelcomeMessage},
		{model.RoleUser, model.StateFinal, "What is dropout?"},
		{model.RoleBot, model.StatePending, ""},
	}
	if diff := cmp.Diff(want, shapes(snap)); diff != "" {
		t.Errorf("log mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, req.EntryID, snap[2].ID)
	assert.True(t, c.Busy())
}

func TestSubmit_BusyWhilePending(t *testing.T) {
	sender := &fakeSender{}
	c := newTestController(t, sender)

	req, err := c.Submit("first")
	require.NoError(t, err)
	before := c.Snapshot()

	_, err = c.Submit("second")
	assert.True(t, errors.Is(err, ErrBusy))
	assert.Equal(t, before, c.Snapshot())

	_, err = c.Resolve(c.Dispatch(context.Background(), req))
	require.NoError(t, err)
	assert.False(t, c.Busy())

	_, err = c.Submit("second")
	assert.NoError(t, err)
}

// =============================================================================
// DISPATCH / RESOLVE
// =============================================================================

func TestResolve_Success(t *testing.T) {
	var got chatapi.ChatRequest
	_, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"response":"R"}`))
	})
	c := newTestController(t, client)

	req, err := c.Submit("question")
	require.NoError(t, err)
	res := c.Dispatch(context.Background(), req)
	require.True(t, res.OK(), "dispatch error: %v", res.Err)

	entry, err := c.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, "R", entry.Content)
	assert.Equal(t, model.StateFinal, entry.State)
	assert.False(t, entry.Failed)
	assert.Equal(t, chatapi.ChatRequest{Message: "question", SessionID: "sess-1"}, got)

	stored, ok := c.Entry(req.EntryID)
	require.True(t, ok)
	assert.Equal(t, "R", stored.Content)

	reply, ok := c.LastReply()
	require.True(t, ok)
	assert.Equal(t, "R", reply)
}

func TestResolve_FailureUsesFallback(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		wantKind string
	}{
		{
			name: "status 500 with valid body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"response":"should not show"}`))
			},
			wantKind: "status",
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>oops</html>`))
			},
			wantKind: "invalid_response",
		},
		{
			name: "missing response field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":"model overloaded"}`))
			},
			wantKind: "invalid_response",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logBuf bytes.Buffer
			_, client := chatServer(t, tc.handler)
			c := newTestController(t, client, WithLogger(zerolog.New(&logBuf)))

			entry, err := c.Send(context.Background(), "q")
			require.NoError(t, err)
			assert.Equal(t, FallbackMessage, entry.Content)
			assert.Equal(t, model.StateFinal, entry.State)
			assert.True(t, entry.Failed)

			assert.Contains(t, logBuf.String(), `"kind":"`+tc.wantKind+`"`)
			assert.Contains(t, logBuf.String(), `"entry_id":"`+entry.ID+`"`)
			assert.Contains(t, logBuf.String(), `"session_id":"sess-1"`)
		})
	}
}

func TestResolve_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := chatapi.NewClientWithConfig(&chatapi.ClientConfig{
		BaseURL:    url,
		HTTPClient: &http.Client{Transport: &http.Transport{DisableKeepAlives: true}},
	})
	c := newTestController(t, client)

	entry, err := c.Send(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, entry.Content)

	// The widget keeps working after a failure.
	_, err = c.Submit("again")
	assert.NoError(t, err)
}

func TestResolve_ExactlyOnce(t *testing.T) {
	sender := &fakeSender{fn: replyWith("first")}
	c := newTestController(t, sender)

	req, err := c.Submit("q")
	require.NoError(t, err)
	res := c.Dispatch(context.Background(), req)

	entry, err := c.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, "first", entry.Content)

	// A second resolution, even a failing one, changes nothing.
	_, err = c.Resolve(Result{EntryID: req.EntryID, Err: errors.New("late")})
	assert.True(t, errors.Is(err, ErrAlreadyResolved))

	// A second dispatch is refused without a request.
	again := c.Dispatch(context.Background(), req)
	assert.True(t, errors.Is(again.Err, ErrAlreadyDispatched))
	_, err = c.Resolve(again)
	assert.True(t, errors.Is(err, ErrAlreadyDispatched))

	stored, _ := c.Entry(req.EntryID)
	assert.Equal(t, "first", stored.Content)
	assert.False(t, stored.Failed)
	assert.Equal(t, 1, sender.callCount())
	assert.Len(t, c.Snapshot(), 3)
}

func TestDispatch_UnknownEntry(t *testing.T) {
	sender := &fakeSender{}
	c := newTestController(t, sender)

	res := c.Dispatch(context.Background(), Request{EntryID: "missing", Message: "x"})
	assert.True(t, errors.Is(res.Err, ErrUnknownEntry))
	_, err := c.Resolve(res)
	assert.True(t, errors.Is(err, ErrUnknownEntry))
	assert.Equal(t, 0, sender.callCount())
}

func TestDispatch_Timeout(t *testing.T) {
	started := make(chan struct{})
	sender := &fakeSender{fn: blockUntilDone(started)}
	c := newTestController(t, sender, WithTimeout(50*time.Millisecond))

	entry, err := c.Send(context.Background(), "slow question")
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, entry.Content)
	assert.True(t, entry.Failed)
}

func TestDispatch_CallerContextCancels(t *testing.T) {
	started := make(chan struct{})
	sender := &fakeSender{fn: blockUntilDone(started)}
	c := newTestController(t, sender)

	req, err := c.Submit("q")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	res := c.Dispatch(ctx, req)
	assert.Equal(t, chatapi.ErrTypeCanceled, chatapi.TypeOf(res.Err))
	entry, err := c.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, entry.Content)
}

func TestCancelPending(t *testing.T) {
	started := make(chan struct{})
	sender := &fakeSender{fn: blockUntilDone(started)}
	c := newTestController(t, sender)

	assert.False(t, c.CancelPending())

	req, err := c.Submit("q")
	require.NoError(t, err)

	done := make(chan Result, 1)
	go func() { done <- c.Dispatch(context.Background(), req) }()
	<-started

	assert.True(t, c.CancelPending())
	res := <-done
	entry, err := c.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, entry.Content)
	assert.False(t, c.Busy())
}

func TestCancelPending_BeforeDispatch(t *testing.T) {
	sender := &fakeSender{fn: replyWith("late reply")}
	c := newTestController(t, sender)

	req, err := c.Submit("hello")
	require.NoError(t, err)
	assert.True(t, c.CancelPending())

	res := c.Dispatch(context.Background(), req)
	assert.True(t, errors.Is(res.Err, chatapi.ErrCanceled))

	entry, err := c.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, entry.Content)
	assert.True(t, entry.Failed)
	assert.False(t, c.Busy())

	assert.Zero(t, sender.callCount(), "canceled request must not reach the server")

	// the next submit is unaffected
	entry, err = c.Send(context.Background(), "again")
	require.NoError(t, err)
	assert.Equal(t, "late reply", entry.Content)
	assert.Equal(t, 1, sender.callCount())
}

func TestCancelPending_BeforeDispatchRefusesSecondDispatch(t *testing.T) {
	c := newTestController(t, &fakeSender{})

	req, err := c.Submit("hello")
	require.NoError(t, err)
	require.True(t, c.CancelPending())

	first := c.Dispatch(context.Background(), req)
	assert.True(t, errors.Is(first.Err, chatapi.ErrCanceled))

	second := c.Dispatch(context.Background(), req)
	assert.True(t, errors.Is(second.Err, ErrAlreadyDispatched))
}

// =============================================================================
// CLOSE
// =============================================================================

func TestClose_ResolvesInFlightToFallback(t *testing.T) {
	started := make(chan struct{})
	sender := &fakeSender{fn: blockUntilDone(started)}
	c, err := New("sess-1", sender)
	require.NoError(t, err)

	req, err := c.Submit("q")
	require.NoError(t, err)

	done := make(chan Result, 1)
	go func() { done <- c.Dispatch(context.Background(), req) }()
	<-started

	c.Close()
	c.Close() // idempotent
	assert.True(t, c.Closed())

	select {
	case res := <-done:
		entry, err := c.Resolve(res)
		require.NoError(t, err)
		assert.Equal(t, FallbackMessage, entry.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch did not return after Close")
	}

	_, err = c.Submit("after close")
	assert.True(t, errors.Is(err, ErrClosed))
}

func TestClose_DispatchAfterCloseFallsBack(t *testing.T) {
	sender := &fakeSender{}
	c, err := New("sess-1", sender)
	require.NoError(t, err)

	req, err := c.Submit("q")
	require.NoError(t, err)
	c.Close()

	res := c.Dispatch(context.Background(), req)
	assert.True(t, errors.Is(res.Err, ErrClosed))
	entry, err := c.Resolve(res)
	require.NoError(t, err)
	assert.Equal(t, FallbackMessage, entry.Content)
	assert.Equal(t, 0, sender.callCount())
}

// =============================================================================
// OBSERVERS
// =============================================================================

func TestSubscribe_EventOrder(t *testing.T) {
	c := newTestController(t, &fakeSender{fn: replyWith("A")})

	var events []Event
	unsubscribe := c.Subscribe(func(ev Event) { events = append(events, ev) })

	_, err := c.Send(context.Background(), "Q")
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, EntryAppended, events[0].Kind)
	assert.Equal(t, model.RoleUser, events[0].Entry.Role)
	assert.Equal(t, EntryAppended, events[1].Kind)
	assert.Equal(t, model.StatePending, events[1].Entry.State)
	assert.Equal(t, EntryResolved, events[2].Kind)
	assert.Equal(t, events[1].Entry.ID, events[2].Entry.ID)
	assert.Equal(t, "A", events[2].Entry.Content)
	assert.Equal(t, "resolved", events[2].Kind.String())

	unsubscribe()
	_, err = c.Send(context.Background(), "Q2")
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

// =============================================================================
// END TO END
// =============================================================================

const pageTemplate = `<!DOCTYPE html><html><head>
<meta name="session-id" content="e2e-session">
</head><body><div id="chat-messages"></div></body></html>`

func TestEndToEnd_Backprop(t *testing.T) {
	var seen chatapi.ChatRequest
	srv, client := chatServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(pageTemplate))
		case http.MethodPost:
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&seen))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"response":"Backprop is..."}`))
		}
	})

	id, err := session.Discover(context.Background(), client.HTTPClient(), srv.URL+"/chat")
	require.NoError(t, err)

	c, err := New(id, client)
	require.NoError(t, err)
	defer c.Close()
	assert.Equal(t, "e2e-session", c.SessionID())

	req, err := c.Submit("What is backprop?")
	require.NoError(t, err)

	want := []shape{
		{model.RoleBot, model.StateFinal, model.WelcomeMessage},
		{model.RoleUser, model.StateFinal, "What is backprop?"},
		{model.RoleBot, model.StatePending, ""},
	}
	if diff := cmp.Diff(want, shapes(c.Snapshot())); diff != "" {
		t.Fatalf("log after submit (-want +got):\n%s", diff)
	}

	_, err = c.Resolve(c.Dispatch(context.Background(), req))
	require.NoError(t, err)

	want[2] = shape{model.RoleBot, model.StateFinal, "Backprop is..."}
	if diff := cmp.Diff(want, shapes(c.Snapshot())); diff != "" {
		t.Errorf("log after reply (-want +got):\n%s", diff)
	}
	assert.Equal(t, chatapi.ChatRequest{Message: "What is backprop?", SessionID: "e2e-session"}, seen)
}
