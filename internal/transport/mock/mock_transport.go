// Package mock provides a scripted transport for exercising the gateway
// without a network.
package mock

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/yourorg/adyen-gateway/internal/transport"
)

// Response is one scripted reply. A zero Status means 200.
type Response struct {
	Status int
	Body   string
	Err    error
}

// Transport replays Responses in order and records every request.
type Transport struct {
	mu        sync.Mutex
	responses []Response
	calls     []transport.Request

	// PostFunc, when set, replaces the scripted replies.
	PostFunc func(ctx context.Context, req transport.Request) ([]byte, error)
}

// NewTransport creates a Transport that answers with responses in order.
func NewTransport(responses ...Response) *Transport {
	return &Transport{responses: responses}
}

// Respond appends further scripted replies.
func (t *Transport) Respond(responses ...Response) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.responses = append(t.responses, responses...)
}

// Post implements the gateway transport.
func (t *Transport) Post(ctx context.Context, req transport.Request) ([]byte, error) {
	t.mu.Lock()
	t.calls = append(t.calls, req)
	fn := t.PostFunc
	var next *Response
	if fn == nil && len(t.responses) > 0 {
		next = &t.responses[0]
		t.responses = t.responses[1:]
	}
	t.mu.Unlock()

	if fn != nil {
		return fn(ctx, req)
	}
	if next == nil {
		return nil, fmt.Errorf("mock transport: no response scripted for %s", req.URL)
	}
	if next.Err != nil {
		return nil, next.Err
	}
	status := next.Status
	if status == 0 {
		status = http.StatusOK
	}
	if status < 200 || status >= 300 {
		return nil, &transport.HTTPError{StatusCode: status, Body: []byte(next.Body)}
	}
	return []byte(next.Body), nil
}

// Calls returns the requests received so far.
func (t *Transport) Calls() []transport.Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]transport.Request, len(t.calls))
	copy(out, t.calls)
	return out
}
