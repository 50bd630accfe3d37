package agent

import "context"

// EventType tags a progress event emitted during a streamed run.
type EventType string

const (
	EventTaskReceived EventType = "task_received"
	EventClassified   EventType = "classified"
	EventRouted       EventType = "routed"
	EventFetching     EventType = "fetching"
	EventCompleted    EventType = "completed"
	EventFailed       EventType = "failed"
)

// Event is one step of a streamed run. The terminal completed/failed
// event carries the final result.
type Event struct {
	Type    EventType       `json:"type"`
	Message string          `json:"message,omitempty"`
	Result  *ResearchResult `json:"result,omitempty"`
}

// RunStream runs the same pipeline as Run but reports progress on the
// returned channel. The channel is closed after the terminal event. If
// the caller stops reading, events are dropped once ctx is done.
func (a *Agent) RunStream(ctx context.Context, task string) <-chan Event {
	ch := make(chan Event, 8)

	go func() {
		defer close(ch)

		emit := func(ev Event) {
			select {
			case ch <- ev:
			case <-ctx.Done():
			}
		}

		result := a.run(ctx, task, emit)

		final := Event{Type: EventCompleted, Result: &result}
		if !result.Success {
			final.Type = EventFailed
		}
		emit(final)
	}()

	return ch
}
