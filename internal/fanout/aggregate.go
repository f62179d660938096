package fanout

import (
	"context"
	"fmt"
	"math"

	"github.com/emptyteabot/mind-os/internal/domain"
)

// BLUF score bands.
const (
	cautiousThreshold = 4
	positiveThreshold = 7
)

// Aggregate runs the full fan-out to completion and folds the results
// into a single review: the average of reported scores rounded to one
// decimal (0 when no agent scored), the action list from the first spec
// in declaration order that produced one, and a BLUF line banded on the
// average. Every agent appears in the review, failed ones with their
// sentinel verdict.
func (o *Orchestrator) Aggregate(ctx context.Context, specs []domain.AgentSpec, input string) domain.Review {
	byAgent := make(map[string]domain.AgentResult, len(specs))
	for res := range o.Run(ctx, specs, input) {
		byAgent[res.Agent] = res
	}

	agents := make([]domain.AgentResult, 0, len(specs))
	var sum float64
	var scored int
	var actions []string
	var tag string

	for _, spec := range specs {
		res := byAgent[spec.Name]
		agents = append(agents, res)
		if res.Kind != domain.KindScored {
			continue
		}
		sum += res.Score
		scored++
		if actions == nil && len(res.Actions) > 0 {
			actions = res.Actions
		}
		if tag == "" && res.Tag != "" {
			tag = res.Tag
		}
	}

	var avg float64
	if scored > 0 {
		avg = math.Round(sum/float64(scored)*10) / 10
	}

	return domain.Review{
		BLUF:     blufFor(avg),
		AvgScore: avg,
		Agents:   agents,
		Actions:  actions,
		Tag:      tag,
	}
}

func blufFor(avg float64) string {
	switch {
	case avg >= positiveThreshold:
		return fmt.Sprintf("Strong idea: %.1f/10 overall. Worth pursuing.", avg)
	case avg >= cautiousThreshold:
		return fmt.Sprintf("Mixed signals: %.1f/10 overall. Proceed carefully.", avg)
	default:
		return fmt.Sprintf("Weak idea: %.1f/10 overall. Rethink before investing more.", avg)
	}
}
