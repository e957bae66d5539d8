package generator

import (
	"context"
	"sync"
)

// scriptedProvider answers calls per model id and records every request.
type scriptedProvider struct {
	mu        sync.Mutex
	responses map[string]scriptedResponse
	fallback  scriptedResponse
	calls     []Request
}

type scriptedResponse struct {
	text string
	err  error
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{responses: map[string]scriptedResponse{}}
}

func (p *scriptedProvider) on(model, text string, err error) *scriptedProvider {
	p.responses[model] = scriptedResponse{text: text, err: err}
	return p
}

func (p *scriptedProvider) otherwise(text string, err error) *scriptedProvider {
	p.fallback = scriptedResponse{text: text, err: err}
	return p
}

func (p *scriptedProvider) Generate(_ context.Context, req Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, req)

	if r, ok := p.responses[req.Model]; ok {
		return r.text, r.err
	}
	return p.fallback.text, p.fallback.err
}

func (p *scriptedProvider) models() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.calls))
	for _, c := range p.calls {
		out = append(out, c.Model)
	}
	return out
}
