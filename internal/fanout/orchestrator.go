// Package fanout runs a batch of agent invocations concurrently and
// delivers their results, either streamed in completion order or
// aggregated into a single review.
package fanout

import (
	"context"
	"sync"

	"github.com/emptyteabot/mind-os/internal/domain"
)

// AgentInvoker runs one agent to completion, success or sentinel.
type AgentInvoker interface {
	Invoke(ctx context.Context, spec domain.AgentSpec, userInput string) domain.AgentResult
}

// Orchestrator fans a user input out over a set of agent specs using a
// bounded worker pool. The pool lives for the duration of one call.
type Orchestrator struct {
	invoker AgentInvoker
	workers int
}

// New creates an orchestrator with the given concurrency ceiling.
func New(invoker AgentInvoker, workers int) *Orchestrator {
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{invoker: invoker, workers: workers}
}

// Run submits every spec to the worker pool and returns a channel of
// results in completion order. Exactly one result is emitted per spec
// (sentinel verdicts included) before the channel closes. The caller
// drains the channel and owns the wire encoding.
func (o *Orchestrator) Run(ctx context.Context, specs []domain.AgentSpec, input string) <-chan domain.AgentResult {
	jobs := make(chan domain.AgentSpec)
	results := make(chan domain.AgentResult)

	workers := o.workers
	if workers > len(specs) {
		workers = len(specs)
	}

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for spec := range jobs {
				results <- o.invoker.Invoke(ctx, spec, input)
			}
		}()
	}

	go func() {
		for _, spec := range specs {
			jobs <- spec
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
