package chat

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// PromptPlaceholder is replaced by the user's text in canned responses
const PromptPlaceholder = "{{prompt}}"

// Provider produces the assistant reply for a prompt.
// Implementations must return promptly once ctx is done.
type Provider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// defaultResponses are the built-in canned replies
var defaultResponses = []string{
	"I'm a demo chat interface. In a real implementation, I would connect to an LLM API like OpenAI, Anthropic Claude, or a local model using Ollama.",
	`You asked: "` + PromptPlaceholder + `". This is where the AI response would appear. The interface is built with Bubble Tea for reactive updates.`,
	"This chat UI features a dark minimal aesthetic styled with Lip Gloss. It includes an animated typing indicator and a message list that follows the newest reply.",
	"To integrate a real LLM, you would replace this provider with an API call to your chosen service. The UI will display the response as soon as it arrives.",
}

// DefaultResponses returns a copy of the built-in canned replies
func DefaultResponses() []string {
	out := make([]string, len(defaultResponses))
	copy(out, defaultResponses)
	return out
}

// ProviderOption is a function that configures a CannedProvider
type ProviderOption func(*CannedProvider)

// WithDelay sets the bounds of the simulated typing delay
func WithDelay(minDelay, maxDelay time.Duration) ProviderOption {
	return func(p *CannedProvider) {
		p.minDelay = minDelay
		p.maxDelay = maxDelay
	}
}

// WithResponses replaces the canned reply templates
func WithResponses(responses []string) ProviderOption {
	return func(p *CannedProvider) {
		if len(responses) > 0 {
			p.responses = append([]string(nil), responses...)
		}
	}
}

// WithRand sets the random source, mainly for deterministic tests
func WithRand(r *rand.Rand) ProviderOption {
	return func(p *CannedProvider) {
		p.rng = r
	}
}

// CannedProvider fakes an assistant: it waits a random delay and then
// answers with one of a fixed set of responses.
type CannedProvider struct {
	responses []string
	minDelay  time.Duration
	maxDelay  time.Duration

	mu  sync.Mutex // guards rng and responses
	rng *rand.Rand
}

// Ensure CannedProvider implements Provider
var _ Provider = (*CannedProvider)(nil)

// NewCannedProvider creates a provider with a [1s, 2s) delay and the built-in responses
func NewCannedProvider(opts ...ProviderOption) *CannedProvider {
	p := &CannedProvider{
		responses: DefaultResponses(),
		minDelay:  time.Second,
		maxDelay:  2 * time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		now := uint64(time.Now().UnixNano())
		p.rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	return p
}

// Complete waits for the simulated delay, then picks a response
func (p *CannedProvider) Complete(ctx context.Context, prompt string) (string, error) {
	timer := time.NewTimer(p.Delay())
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-timer.C:
	}

	return p.Pick(prompt), nil
}

// Delay draws a delay uniformly from [minDelay, maxDelay)
func (p *CannedProvider) Delay() time.Duration {
	span := p.maxDelay - p.minDelay
	if span <= 0 {
		return p.minDelay
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.minDelay + time.Duration(p.rng.Int64N(int64(span)))
}

// Pick selects one response uniformly and interpolates the prompt verbatim
func (p *CannedProvider) Pick(prompt string) string {
	p.mu.Lock()
	template := p.responses[p.rng.IntN(len(p.responses))]
	p.mu.Unlock()

	return strings.ReplaceAll(template, PromptPlaceholder, prompt)
}

// SetResponses swaps the reply templates. An empty list is ignored.
func (p *CannedProvider) SetResponses(responses []string) {
	if len(responses) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.responses = append([]string(nil), responses...)
}

// Responses returns every reply the provider can produce for prompt
func (p *CannedProvider) Responses(prompt string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.responses))
	for i, r := range p.responses {
		out[i] = strings.ReplaceAll(r, PromptPlaceholder, prompt)
	}
	return out
}
