package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one scripted result for a Mock.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// JSONReply scripts a reply whose content is v encoded as JSON.
func JSONReply(v any) MockReply {
	data, err := json.Marshal(v)
	if err != nil {
		return MockReply{Err: err}
	}
	return MockReply{Content: data}
}

// Mock replays scripted replies in order and records every request. Once
// the script runs out it reports the provider as unavailable.
type Mock struct {
	mu       sync.Mutex
	script   []MockReply
	requests []Request
}

// NewMock returns a Mock that will play replies in order.
func NewMock(replies ...MockReply) *Mock {
	return &Mock{script: replies}
}

func (m *Mock) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, next.Content, next.Usage, "mock", StopEnd)
}

func (m *Mock) ModelID() string { return "mock" }

// Push appends replies to the script.
func (m *Mock) Push(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, replies...)
}

// Requests returns a copy of every request seen so far.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.requests...)
}
