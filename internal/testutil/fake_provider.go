package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/outings/internal/llm"
)

// ProviderReply is one scripted provider outcome.
type ProviderReply struct {
	Text string
	Err  error
}

// FakeProvider replays scripted replies in order, repeating the last one
// once the script runs out. It records every request.
type FakeProvider struct {
	mu       sync.Mutex
	replies  []ProviderReply
	Requests []llm.CompletionRequest
}

func NewFakeProvider(replies ...ProviderReply) *FakeProvider {
	return &FakeProvider{replies: replies}
}

func (f *FakeProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := len(f.Requests)
	f.Requests = append(f.Requests, req)
	if len(f.replies) == 0 {
		return &llm.CompletionResponse{}, nil
	}
	r := f.replies[min(n, len(f.replies)-1)]
	if r.Err != nil {
		return nil, r.Err
	}
	return &llm.CompletionResponse{Fragments: []llm.Fragment{{Type: "text", Text: r.Text}}}, nil
}

// Calls returns how many requests the fake has seen.
func (f *FakeProvider) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// LastPrompt returns the most recent prompt, or "" before any call.
func (f *FakeProvider) LastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return ""
	}
	return f.Requests[len(f.Requests)-1].Prompt
}

// FiveActivitiesJSON is a well-formed provider reply with five results,
// wrapped in prose and a json fence.
const FiveActivitiesJSON = "Here you go:\n```json\n[\n" +
	`  {"emoji": "🦁", "title": "Lion Feeding - Sat 10am", "description": "<cite index=\"1-2\">Keepers feed the zoo lions.</cite>", "location": "City Zoo", "distance": 3.2},` + "\n" +
	`  {"emoji": "🦕", "title": "Dinosaur Hall Tour", "description": "Guided museum tour of the fossil hall.", "location": "Natural History Museum", "distance": 5},` + "\n" +
	`  {"emoji": "🎪", "title": "Spring Carnival", "description": "Rides and games at the annual carnival.", "location": "Fairgrounds", "distance": 8.5},` + "\n" +
	`  {"emoji": "🎭", "title": "Puppet Theater Matinee", "description": "A puppet show for young kids.", "location": "Little Stage", "distance": 2.1},` + "\n" +
	`  {"emoji": "🌳", "title": "Nature Trail Walk", "description": "Ranger-led hike along the river trail.", "location": "Riverside Park", "distance": 4}` + "\n" +
	"]\n```\nEnjoy your weekend!"
