// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MohiCodeHub/NeuralPilot/internal/chatapi"
	"github.com/MohiCodeHub/NeuralPilot/internal/model"
)

// DefaultTimeout bounds a request when no timeout option is given.
const DefaultTimeout = 60 * time.Second

// Sender performs one chat request. *chatapi.Client satisfies it.
type Sender interface {
	Chat(ctx context.Context, req chatapi.ChatRequest) (*chatapi.ChatResponse, error)
}

// Request is an accepted submit awaiting dispatch.
type Request struct {
	EntryID   string
	SessionID string
	Message   string
}

// Result is the outcome of one Dispatch.
type Result struct {
	EntryID string
	Reply   string
	Err     error
	Elapsed time.Duration

	// rejected marks results that must not touch the log.
	rejected bool
}

// OK reports whether the request produced a reply.
func (r Result) OK() bool {
	return r.Err == nil
}

// =============================================================================
// OPTIONS
// =============================================================================

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

// WithTimeout sets the per-request deadline. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithWelcome sets the greeting seeded into the log. Empty skips it.
func WithWelcome(text string) Option {
	return func(c *Controller) { c.welcome = text }
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller is the chat widget controller for one session.
// All methods are safe for concurrent use.
type Controller struct {
	sessionID string
	sender    Sender
	log       zerolog.Logger
	timeout   time.Duration
	welcome   string

	root   context.Context
	cancel context.CancelFunc
	calls  *cancelRegistry

	mu        sync.Mutex
	conv      *model.Conversation
	closed    bool
	observers []observerSlot
	nextObsID int
}

type observerSlot struct {
	id int
	fn Observer
}

// New creates a controller bound to sessionID and seeds the welcome entry.
// A blank sessionID is a fatal initialization error.
func New(sessionID string, sender Sender, opts ...Option) (*Controller, error) {
	c := &Controller{
		sessionID: strings.TrimSpace(sessionID),
		sender:    sender,
		log:       zerolog.Nop(),
		timeout:   DefaultTimeout,
		welcome:   model.WelcomeMessage,
		calls:     newCancelRegistry(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.sessionID == "" {
		c.log.Error().Err(ErrNoSession).Msg("chat widget not initialized")
		return nil, ErrNoSession
	}
	if sender == nil {
		c.log.Error().Err(ErrNoSender).Msg("chat widget not initialized")
		return nil, ErrNoSender
	}

	c.log = c.log.With().Str("session_id", c.sessionID).Logger()
	c.root, c.cancel = context.WithCancel(context.Background())
	c.conv = model.NewConversation(c.sessionID)
	if c.welcome != "" {
		c.conv.AppendFinal(model.RoleBot, c.welcome)
	}

	c.log.Info().Msg("chat widget ready")
	return c, nil
}

// SessionID returns the immutable session identifier.
func (c *Controller) SessionID() string {
	return c.sessionID
}

// Timeout returns the per-request deadline.
func (c *Controller) Timeout() time.Duration {
	return c.timeout
}

// =============================================================================
// SUBMIT / DISPATCH / RESOLVE
// =============================================================================

// Submit accepts user text. On success the log gains a final user entry and
// a pending bot entry, and the returned Request must be dispatched once.
func (c *Controller) Submit(text string) (Request, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Request{}, ErrEmptyInput
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Request{}, ErrClosed
	}
	if _, busy := c.conv.Pending(); busy {
		c.mu.Unlock()
		return Request{}, ErrBusy
	}

	user := c.conv.AppendFinal(model.RoleUser, trimmed)
	pending := c.conv.AppendPending(model.RoleBot)
	obs := c.observerList()
	c.mu.Unlock()

	c.log.Debug().Str("entry_id", pending.ID).Int("chars", len(trimmed)).Msg("submit accepted")

	notify(obs, Event{Kind: EntryAppended, Entry: user})
	notify(obs, Event{Kind: EntryAppended, Entry: pending})

	return Request{EntryID: pending.ID, SessionID: c.sessionID, Message: trimmed}, nil
}

// Dispatch performs the single outbound request for req. The deadline is
// derived from the controller's root context, so Close aborts it; ctx may
// cancel it earlier. Errors travel inside the Result.
func (c *Controller) Dispatch(ctx context.Context, req Request) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	c.mu.Lock()
	entry, ok := c.conv.Get(req.EntryID)
	switch {
	case !ok:
		c.mu.Unlock()
		return Result{EntryID: req.EntryID, Err: ErrUnknownEntry, rejected: true}
	case !entry.IsPending():
		c.mu.Unlock()
		return Result{EntryID: req.EntryID, Err: ErrAlreadyDispatched, rejected: true}
	case c.closed:
		c.mu.Unlock()
		return Result{EntryID: req.EntryID, Err: ErrClosed}
	}

	if c.calls.take(req.EntryID) {
		c.calls.add(req.EntryID, nil)
		c.mu.Unlock()
		c.log.Debug().Str("entry_id", req.EntryID).Msg("canceled before dispatch")
		return Result{EntryID: req.EntryID, Err: chatapi.ErrCanceled}
	}

	var (
		reqCtx context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(c.root, c.timeout)
	} else {
		reqCtx, cancel = context.WithCancel(c.root)
	}
	if !c.calls.add(req.EntryID, cancel) {
		c.mu.Unlock()
		cancel()
		return Result{EntryID: req.EntryID, Err: ErrAlreadyDispatched, rejected: true}
	}
	c.mu.Unlock()

	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	start := time.Now()
	resp, err := c.sender.Chat(reqCtx, chatapi.ChatRequest{
		Message:   req.Message,
		SessionID: c.sessionID,
	})
	res := Result{EntryID: req.EntryID, Err: err, Elapsed: time.Since(start)}
	if err == nil {
		if resp == nil {
			res.Err = chatapi.ErrInvalidResponse
		} else {
			res.Reply = resp.Response
		}
	}
	return res
}

// Resolve applies a Result: the pending entry becomes final with the reply,
// or with FallbackMessage on any failure. Failures are logged, not returned.
func (c *Controller) Resolve(res Result) (model.Entry, error) {
	if res.rejected {
		c.mu.Lock()
		entry, _ := c.conv.Get(res.EntryID)
		c.mu.Unlock()
		return entry, res.Err
	}

	content, failed := res.Reply, false
	if res.Err != nil {
		content, failed = FallbackMessage, true
	}

	c.mu.Lock()
	entry, err := c.conv.Resolve(res.EntryID, content, failed)
	obs := c.observerList()
	c.mu.Unlock()

	c.calls.release(res.EntryID)

	if err != nil {
		c.log.Warn().Err(err).Str("entry_id", res.EntryID).Msg("resolve rejected")
		return entry, err
	}

	if failed {
		c.log.Error().
			Err(res.Err).
			Str("entry_id", res.EntryID).
			Str("kind", chatapi.TypeOf(res.Err).String()).
			Dur("elapsed", res.Elapsed).
			Msg("chat request failed")
	} else {
		c.log.Debug().
			Str("entry_id", res.EntryID).
			Dur("elapsed", res.Elapsed).
			Int("chars", len(res.Reply)).
			Msg("reply received")
	}

	notify(obs, Event{Kind: EntryResolved, Entry: entry})
	return entry, nil
}

// Send runs Submit, Dispatch and Resolve in order. The only errors it
// returns come from Submit; a failed request yields the fallback entry.
func (c *Controller) Send(ctx context.Context, text string) (model.Entry, error) {
	req, err := c.Submit(text)
	if err != nil {
		return model.Entry{}, err
	}
	return c.Resolve(c.Dispatch(ctx, req))
}

// CancelPending aborts the pending request, if any, whether or not its
// Dispatch has started. Dispatch returns a cancellation error, which
// resolves to the fallback.
func (c *Controller) CancelPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	pending, ok := c.conv.Pending()
	if !ok {
		return false
	}
	c.calls.cancel(pending.ID)
	return true
}

// Close cancels in-flight requests and refuses further submits. Idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.calls.cancelAll()
	c.log.Info().Msg("chat widget closed")
}

// =============================================================================
// QUERIES
// =============================================================================

// Snapshot returns a copy of the log in display order.
func (c *Controller) Snapshot() []model.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Snapshot()
}

// Busy reports whether a reply is pending.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.conv.Pending()
	return ok
}

// Entry returns a copy of one entry.
func (c *Controller) Entry(id string) (model.Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conv.Get(id)
}

// LastReply returns the newest final bot content.
func (c *Controller) LastReply() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.conv.LastByRole(model.RoleBot)
	return e.Content, ok
}

// Closed reports whether Close has run.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// =============================================================================
// OBSERVERS
// =============================================================================

// Subscribe registers fn for log events and returns a func that removes it.
func (c *Controller) Subscribe(fn Observer) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextObsID++
	id := c.nextObsID
	c.observers = append(c.observers, observerSlot{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.observers {
			if s.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

// observerList copies the observers; caller holds c.mu.
func (c *Controller) observerList() []Observer {
	if len(c.observers) == 0 {
		return nil
	}
	out := make([]Observer, len(c.observers))
	for i, s := range c.observers {
		out[i] = s.fn
	}
	return out
}

func notify(obs []Observer, ev Event) {
	for _, fn := range obs {
		fn(ev)
	}
}
