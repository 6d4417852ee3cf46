// Package llmtest provides a scripted llm.Client for stage and pipeline tests.
package llmtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/resume-tailor/internal/llm"
)

// Call records one GenerateStructured invocation
type Call struct {
	Messages []llm.Message
	Schema   llm.Schema
	Tier     llm.ModelTier
}

// Reply is a scripted response: Text is returned unless Err is set
type Reply struct {
	Text string
	Err  error
}

// Fake replays responses keyed by schema name. It is safe for concurrent use.
type Fake struct {
	mu      sync.Mutex
	replies map[string][]Reply
	calls   []Call
}

// New returns an empty Fake
func New() *Fake {
	return &Fake{replies: make(map[string][]Reply)}
}

// On queues a text response for the schema name
func (f *Fake) On(schemaName, text string) *Fake {
	return f.OnReply(schemaName, Reply{Text: text})
}

// OnError queues an error for the schema name
func (f *Fake) OnError(schemaName string, err error) *Fake {
	return f.OnReply(schemaName, Reply{Err: err})
}

// OnReply queues a reply for the schema name. The last reply for a schema is
// repeated once the queue is drained.
func (f *Fake) OnReply(schemaName string, reply Reply) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[schemaName] = append(f.replies[schemaName], reply)
	return f
}

// GenerateStructured implements llm.Client
func (f *Fake) GenerateStructured(ctx context.Context, messages []llm.Message, schema llm.Schema, tier llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, Call{Messages: messages, Schema: schema, Tier: tier})

	if err := ctx.Err(); err != nil {
		return "", err
	}

	queue := f.replies[schema.Name]
	if len(queue) == 0 {
		return "", fmt.Errorf("llmtest: no reply scripted for schema %q", schema.Name)
	}
	reply := queue[0]
	if len(queue) > 1 {
		f.replies[schema.Name] = queue[1:]
	}
	return reply.Text, reply.Err
}

// GetModel implements llm.Client
func (f *Fake) GetModel(tier llm.ModelTier) string {
	return "fake-" + string(tier)
}

// Close implements llm.Client
func (f *Fake) Close() error {
	return nil
}

// Calls returns a copy of the recorded calls
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallsFor returns the recorded calls for one schema name
func (f *Fake) CallsFor(schemaName string) []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.Schema.Name == schemaName {
			out = append(out, c)
		}
	}
	return out
}
