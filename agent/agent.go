// Package agent implements the research orchestrator: it classifies a
// free-text task, routes it to a registered connector, invokes the
// connector, and formats the result. Run is total; every failure is
// returned as a failure-shaped ResearchResult, never as an error or a
// panic.
package agent

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/NoobProgrammer008/ai-agent-scraper/scrapers"
)

// ResearchResult is the outcome record of one Run invocation.
type ResearchResult struct {
	Task                string         `json:"task,omitempty"`
	Query               string         `json:"query,omitempty"`
	ScrapedData         map[string]any `json:"scraped_data,omitempty"`
	Analysis            string         `json:"analysis,omitempty"`
	Error               string         `json:"error,omitempty"`
	AvailableConnectors []string       `json:"available_connectors,omitempty"`
	Success             bool           `json:"success"`
}

// ResearchSummary aggregates the result log and the most recent run's
// memory.
type ResearchSummary struct {
	TotalResearch int           `json:"total_research"`
	Successful    int           `json:"successful"`
	Queries       []string      `json:"queries"`
	AgentMemory   MemorySummary `json:"agent_memory"`
}

// Agent owns the connector registry and the in-memory result log. One
// instance is constructed at startup and shared with the transport layer;
// Run may be called concurrently.
type Agent struct {
	registry *Registry
	logger   *log.Logger

	mu      sync.Mutex
	results []ResearchResult
	memory  *Ledger
}

// New creates an agent with an empty registry and a fresh ledger.
func New(logger *log.Logger) *Agent {
	if logger == nil {
		logger = log.Default()
	}
	return &Agent{
		registry: NewRegistry(),
		logger:   logger,
		memory:   NewLedger(),
	}
}

// RegisterConnector binds a connector under a category name. Registering
// the same name again replaces the previous connector. Registration is
// expected to be complete before serving begins.
func (a *Agent) RegisterConnector(name string, conn scrapers.Connector) {
	a.registry.Register(name, conn)
	a.logger.Info("registered connector", "name", name, "capability", conn.Capability())
}

// Connectors returns the registered category names.
func (a *Agent) Connectors() []string {
	return a.registry.Names()
}

// Run executes the full research pipeline for a task and returns the
// result. It never returns an error; failures are encoded in the result.
func (a *Agent) Run(ctx context.Context, task string) ResearchResult {
	return a.run(ctx, task, nil)
}

func (a *Agent) run(ctx context.Context, task string, emit func(Event)) ResearchResult {
	// Each run gets its own ledger so concurrent callers never interleave
	// traces. The agent keeps the latest one for the summary view.
	mem := NewLedger()
	mem.SetTask(task)
	a.setMemory(mem)

	a.logger.Info("starting research", "task", task)
	send(emit, Event{Type: EventTaskReceived, Message: task})

	parsed, err := Classify(task)
	if err != nil {
		a.logger.Error("failed to parse task", "task", task)
		return a.finish(ResearchResult{
			Task:  task,
			Error: "Could not parse the research task",
		})
	}
	send(emit, Event{Type: EventClassified, Message: string(parsed.Category)})

	mem.AddThought(fmt.Sprintf("Decided to use %q connector for this research", parsed.Category))

	conn, err := a.registry.Resolve(string(parsed.Category))
	if err != nil {
		nfe := err.(*NotFoundError)
		a.logger.Error("connector not registered", "category", parsed.Category)
		return a.finish(ResearchResult{
			Task:                task,
			Error:               fmt.Sprintf("Connector %q not registered", parsed.Category),
			AvailableConnectors: nfe.Available,
		})
	}
	send(emit, Event{Type: EventRouted, Message: conn.Name()})

	mem.RecordToolCall(conn.Name())
	send(emit, Event{Type: EventFetching, Message: parsed.Query})

	data := a.invoke(ctx, conn, parsed)
	if data == nil {
		a.logger.Error("failed to fetch data", "task", task, "connector", conn.Name())
		return a.finish(ResearchResult{
			Task:  task,
			Error: "Could not fetch data",
		})
	}

	analysis := Analyze(data, parsed)
	mem.AddFinding(analysis)

	a.logger.Info("research completed", "query", parsed.Query)

	return a.finish(ResearchResult{
		Query:       parsed.Query,
		ScrapedData: data,
		Analysis:    analysis,
		Success:     true,
	})
}

// invoke calls the single operation the connector's capability tag
// declares. Connector errors and panics are logged and normalized to nil;
// they never cross the Run boundary.
func (a *Agent) invoke(ctx context.Context, conn scrapers.Connector, task ParsedTask) (data map[string]any) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("connector panicked", "connector", conn.Name(), "panic", r)
			data = nil
		}
	}()

	var err error
	switch conn.Capability() {
	case scrapers.CapabilityPrices:
		fetcher, ok := conn.(scrapers.PriceFetcher)
		if !ok {
			a.logger.Error("connector does not implement its declared capability", "connector", conn.Name())
			return nil
		}
		data, err = fetcher.FetchPrices(ctx, []string{task.Query})
	case scrapers.CapabilityArticle:
		fetcher, ok := conn.(scrapers.ArticleFetcher)
		if !ok {
			a.logger.Error("connector does not implement its declared capability", "connector", conn.Name())
			return nil
		}
		data, err = fetcher.FetchArticle(ctx, task.Query)
	case scrapers.CapabilityGeneral:
		fetcher, ok := conn.(scrapers.GeneralFetcher)
		if !ok {
			a.logger.Error("connector does not implement its declared capability", "connector", conn.Name())
			return nil
		}
		data, err = fetcher.FetchGeneral(ctx, task.Query)
	default:
		a.logger.Error("connector has no recognized capability", "connector", conn.Name())
		return nil
	}

	if err != nil {
		a.logger.Error("connector failed", "connector", conn.Name(), "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// finish appends the result to the log and returns it.
func (a *Agent) finish(result ResearchResult) ResearchResult {
	a.mu.Lock()
	a.results = append(a.results, result)
	a.mu.Unlock()
	return result
}

func (a *Agent) setMemory(mem *Ledger) {
	a.mu.Lock()
	a.memory = mem
	a.mu.Unlock()
}

// History returns a copy of the result log in append order.
func (a *Agent) History() []ResearchResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]ResearchResult(nil), a.results...)
}

// Summary reports totals over the result log plus the latest run's memory.
func (a *Agent) Summary() ResearchSummary {
	a.mu.Lock()
	results := append([]ResearchResult(nil), a.results...)
	mem := a.memory
	a.mu.Unlock()

	summary := ResearchSummary{
		TotalResearch: len(results),
		Queries:       make([]string, 0, len(results)),
		AgentMemory:   mem.Summary(),
	}
	for _, r := range results {
		if r.Success {
			summary.Successful++
		}
		summary.Queries = append(summary.Queries, r.Query)
	}
	return summary
}

// ClearHistory drops the result log.
func (a *Agent) ClearHistory() {
	a.mu.Lock()
	a.results = nil
	a.mu.Unlock()
	a.logger.Info("research history cleared")
}

func send(emit func(Event), ev Event) {
	if emit != nil {
		emit(ev)
	}
}
