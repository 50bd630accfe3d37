package agent

import (
	"fmt"
	"sync"
)

// Ledger is the append-only audit trail of a single run: the task, the
// recorded thoughts, the connector invocation count, the findings, and a
// tagged chronological history of all of the above.
type Ledger struct {
	mu        sync.Mutex
	task      string
	thoughts  []string
	toolCalls int
	findings  []string
	history   []string
}

// MemorySummary is the read-only projection of a ledger.
type MemorySummary struct {
	Task          string   `json:"task"`
	Thoughts      []string `json:"thoughts"`
	ToolCalls     int      `json:"tool_calls"`
	Findings      []string `json:"findings"`
	HistoryLength int      `json:"history_length"`
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// SetTask records the task under research.
func (l *Ledger) SetTask(task string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.task = task
	l.history = append(l.history, fmt.Sprintf("task: %s", task))
}

// AddThought appends a free-text trace entry.
func (l *Ledger) AddThought(thought string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.thoughts = append(l.thoughts, thought)
	l.history = append(l.history, fmt.Sprintf("thought: %s", thought))
}

// RecordToolCall counts a connector invocation.
func (l *Ledger) RecordToolCall(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.toolCalls++
	l.history = append(l.history, fmt.Sprintf("tool called: %s", name))
}

// AddFinding appends a research finding.
func (l *Ledger) AddFinding(finding string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.findings = append(l.findings, finding)
	l.history = append(l.history, fmt.Sprintf("finding: %s", finding))
}

// Summary returns a snapshot of the ledger.
func (l *Ledger) Summary() MemorySummary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return MemorySummary{
		Task:          l.task,
		Thoughts:      append([]string(nil), l.thoughts...),
		ToolCalls:     l.toolCalls,
		Findings:      append([]string(nil), l.findings...),
		HistoryLength: len(l.history),
	}
}

// Clear resets the ledger to its initial state in one step.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.task = ""
	l.thoughts = nil
	l.toolCalls = 0
	l.findings = nil
	l.history = nil
}
