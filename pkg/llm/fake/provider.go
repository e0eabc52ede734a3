package fake

import (
	"context"
	"sync"

	"namdo-bot-be/pkg/llm"
)

// Provider replays canned responses in order, wrapping around at the end.
// It backs demos and tests that must not reach a hosted model.
type Provider struct {
	mu        sync.Mutex
	responses []string
	next      int
	Err       error
	Prompts   []string
	Options   []llm.Options
}

var _ llm.LLMProvider = &Provider{}

func NewProvider(responses ...string) *Provider {
	return &Provider{responses: responses}
}

func (p *Provider) Name() string { return "fake" }

func (p *Provider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Options = append(p.Options, *llm.Apply(opts...))
	for _, m := range history {
		p.Prompts = append(p.Prompts, m.Content)
	}
	if p.Err != nil {
		return "", p.Err
	}
	if len(p.responses) == 0 {
		return "", llm.ErrEmptyResponse
	}

	out := p.responses[p.next%len(p.responses)]
	p.next++
	return out, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}
