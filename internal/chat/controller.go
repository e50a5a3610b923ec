// Package chat implements the conversation state behind the chat UI.
//
// A Controller owns the message list, the draft input and the typing flag.
// Views never mutate state directly: they call Controller methods and
// re-render from the snapshot delivered to subscribers.
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/diogo/llmchat/internal/errors"
	"github.com/diogo/llmchat/internal/models"
)

// Sample exchange loaded by Seed
const (
	seedPrompt = "Summarize our weekly goals and turn them into a checklist."
	seedReply  = "Sure. I will generate a concise summary and a checklist for review."
)

// Notices appended as failed assistant messages
const (
	noticeNetwork = "I couldn't reach the assistant service. Check your connection and send the message again."
	noticeTimeout = "The assistant took too long to answer. Your message is back in the input box, press Enter to send it again."
	noticeGeneric = "Sorry, something went wrong while generating a response."
)

// State is a snapshot of the conversation
type State struct {
	Messages []models.Message
	Draft    string
	Typing   bool
}

// Reply is an assistant reply started by Submit and finished by Resolve
type Reply struct {
	ID     string
	Prompt string

	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc
	provider Provider
}

// Await blocks until the provider answers, the reply times out, or the
// conversation is cleared.
func (r *Reply) Await() (string, error) {
	return r.provider.Complete(r.ctx, r.Prompt)
}

// Cancel abandons the reply. Await returns context.Canceled and Resolve
// drops the result.
func (r *Reply) Cancel() {
	r.cancel()
}

// Option is a function that configures a Controller
type Option func(*Controller)

// WithClock overrides the clock used to stamp messages
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// WithTimeLayout sets the Go time layout used for message times
func WithTimeLayout(layout string) Option {
	return func(c *Controller) {
		if layout != "" {
			c.timeLayout = layout
		}
	}
}

// WithReplyTimeout bounds how long a reply may stay pending. Zero disables it.
func WithReplyTimeout(timeout time.Duration) Option {
	return func(c *Controller) {
		c.replyTimeout = timeout
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

type subscriber struct {
	id int
	fn func(State)
}

// Controller owns the conversation state
type Controller struct {
	provider     Provider
	now          func() time.Time
	timeLayout   string
	replyTimeout time.Duration
	logger       *zap.Logger

	mu          sync.Mutex
	state       State
	gen         uint64 // bumped by Clear; replies from older generations are dropped
	pending     *Reply
	subscribers []subscriber
	nextSubID   int
	anchor      func()
}

// NewController creates a controller with an empty conversation
func NewController(provider Provider, opts ...Option) *Controller {
	c := &Controller{
		provider:   provider,
		now:        time.Now,
		timeLayout: "03:04 PM",
		logger:     zap.NewNop(),
		state:      State{Messages: []models.Message{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the conversation
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Pending returns the reply currently awaited, or nil
func (c *Controller) Pending() *Reply {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Subscribe registers fn to receive a snapshot after every change.
// The returned function removes the subscription.
func (c *Controller) Subscribe(fn func(State)) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextSubID++
	id := c.nextSubID
	c.subscribers = append(c.subscribers, subscriber{id: id, fn: fn})

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subscribers {
			if s.id == id {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				return
			}
		}
	}
}

// SetScrollAnchor registers the callback that brings the newest message into
// view. It is called after every append; the view decides when to scroll.
func (c *Controller) SetScrollAnchor(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.anchor = fn
}

// FormatTime formats t as a time of day in local time
func (c *Controller) FormatTime(t time.Time) string {
	return t.Local().Format(c.timeLayout)
}

// SetDraft replaces the draft input
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	if c.state.Draft == text {
		c.mu.Unlock()
		return
	}
	c.state.Draft = text
	publish := c.changedLocked(false)
	c.mu.Unlock()

	publish()
}

// SelectSuggestion fills the draft with a suggestion without sending it
func (c *Controller) SelectSuggestion(text string) {
	c.SetDraft(text)
}

// Submit appends a user message and starts the assistant reply.
// Blank text is ignored, and so is any submit while a reply is pending;
// in both cases state is left untouched and ok is false.
func (c *Controller) Submit(text string) (reply *Reply, ok bool) {
	prompt := strings.TrimSpace(text)
	if prompt == "" {
		return nil, false
	}

	c.mu.Lock()
	if c.pending != nil {
		c.mu.Unlock()
		c.logger.Debug("submit rejected while a reply is pending")
		return nil, false
	}

	c.state.Messages = append(c.state.Messages, c.newMessageLocked(models.RoleUser, prompt, false))
	c.state.Draft = ""
	c.state.Typing = true

	ctx, cancel := c.replyContext()
	reply = &Reply{
		ID:       uuid.NewString(),
		Prompt:   prompt,
		gen:      c.gen,
		ctx:      ctx,
		cancel:   cancel,
		provider: c.provider,
	}
	c.pending = reply
	publish := c.changedLocked(true)
	c.mu.Unlock()

	c.logger.Debug("submit accepted",
		zap.String("reply_id", reply.ID),
		zap.Int("prompt_length", len(prompt)))
	publish()
	return reply, true
}

// Resolve finishes a reply with the provider's result. It returns true
// when an assistant message was appended. Replies that are no longer
// pending, or that belong to a cleared conversation, append nothing.
func (c *Controller) Resolve(r *Reply, content string, err error) bool {
	c.mu.Lock()
	if r == nil || c.pending != r {
		c.mu.Unlock()
		return false
	}

	r.cancel()
	c.pending = nil
	c.state.Typing = false

	if err == nil && strings.TrimSpace(content) == "" {
		err = apierrors.ErrNoContent
	}

	kind := apierrors.Classify(err)
	appended := false
	if r.gen == c.gen {
		switch {
		case err == nil:
			c.appendLocked(models.RoleAssistant, content, false)
			appended = true
		case kind == apierrors.KindCanceled:
		case kind == apierrors.KindTimeout:
			c.appendLocked(models.RoleAssistant, noticeTimeout, true)
			if c.state.Draft == "" {
				c.state.Draft = r.Prompt
			}
			appended = true
		case kind == apierrors.KindNetwork:
			c.appendLocked(models.RoleAssistant, noticeNetwork, true)
			appended = true
		default:
			c.appendLocked(models.RoleAssistant, noticeGeneric, true)
			appended = true
		}
	}
	stale := r.gen != c.gen
	publish := c.changedLocked(appended)
	c.mu.Unlock()

	if err != nil && kind != apierrors.KindCanceled {
		c.logger.Warn("reply failed",
			zap.String("reply_id", r.ID),
			zap.Stringer("kind", kind),
			zap.Error(err))
	}
	c.logger.Debug("reply resolved",
		zap.String("reply_id", r.ID),
		zap.Bool("appended", appended),
		zap.Bool("stale", stale))
	publish()
	return appended
}

// Clear empties the conversation. A pending reply is cancelled and its
// result will be dropped; the typing flag ends when it resolves.
// The draft input is kept.
func (c *Controller) Clear() {
	c.mu.Lock()
	dropped := len(c.state.Messages)
	c.state.Messages = []models.Message{}
	c.gen++
	cancelled := c.pending != nil
	if cancelled {
		c.pending.cancel()
	}
	publish := c.changedLocked(false)
	c.mu.Unlock()

	c.logger.Debug("conversation cleared",
		zap.Int("dropped_messages", dropped),
		zap.Bool("cancelled_reply", cancelled))
	publish()
}

// Seed replaces the conversation with a sample exchange. Like Clear, it
// cancels a pending reply and keeps the draft.
func (c *Controller) Seed() {
	c.mu.Lock()
	c.gen++
	cancelled := c.pending != nil
	if cancelled {
		c.pending.cancel()
	}
	c.state.Messages = []models.Message{
		c.newMessageLocked(models.RoleUser, seedPrompt, false),
		c.newMessageLocked(models.RoleAssistant, seedReply, false),
	}
	publish := c.changedLocked(true)
	c.mu.Unlock()

	c.logger.Debug("conversation seeded", zap.Bool("cancelled_reply", cancelled))
	publish()
}

// LastReply returns the newest successful assistant message, or "" if none
func (c *Controller) LastReply() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.state.Messages) - 1; i >= 0; i-- {
		msg := c.state.Messages[i]
		if msg.Role == models.RoleAssistant && !msg.Failed {
			return msg.Content
		}
	}
	return ""
}

func (c *Controller) replyContext() (context.Context, context.CancelFunc) {
	if c.replyTimeout > 0 {
		return context.WithTimeout(context.Background(), c.replyTimeout)
	}
	return context.WithCancel(context.Background())
}

func (c *Controller) newMessageLocked(role models.Role, content string, failed bool) models.Message {
	return models.Message{
		ID:      uuid.NewString(),
		Role:    role,
		Content: content,
		Time:    c.FormatTime(c.now()),
		Failed:  failed,
	}
}

func (c *Controller) appendLocked(role models.Role, content string, failed bool) {
	c.state.Messages = append(c.state.Messages, c.newMessageLocked(role, content, failed))
}

func (c *Controller) snapshotLocked() State {
	messages := make([]models.Message, len(c.state.Messages))
	copy(messages, c.state.Messages)
	return State{
		Messages: messages,
		Draft:    c.state.Draft,
		Typing:   c.state.Typing,
	}
}

// changedLocked captures what must be published for the current state.
// The returned func runs subscribers and the scroll anchor and must be
// called after c.mu is released.
func (c *Controller) changedLocked(scroll bool) func() {
	snapshot := c.snapshotLocked()
	subs := make([]func(State), len(c.subscribers))
	for i, s := range c.subscribers {
		subs[i] = s.fn
	}
	anchor := c.anchor

	return func() {
		for _, fn := range subs {
			fn(snapshot)
		}
		if scroll && anchor != nil {
			anchor()
		}
	}
}
