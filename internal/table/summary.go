package table

import (
	"strconv"

	"github.com/wonny/eventlens/internal/contracts"
	"github.com/wonny/eventlens/internal/format"
)

// Counters are the header figures
type Counters struct {
	TotalModels string
	EventTypes  string
	BestARR     string // empty when no rows
	BestSR      string
}

// Summary computes the header counters. BestARR/BestSR stay empty without rows.
func Summary(stats *contracts.SummaryStats, rows []contracts.ModelResult) Counters {
	c := Counters{TotalModels: "0", EventTypes: "0"}
	if stats != nil {
		c.TotalModels = strconv.Itoa(stats.TotalModels)
		c.EventTypes = strconv.Itoa(stats.EventTypesWithData)
	}

	if len(rows) == 0 {
		return c
	}

	bestARR, bestSR := rows[0].Metrics.ARR, rows[0].Metrics.SR
	for _, r := range rows[1:] {
		if r.Metrics.ARR > bestARR {
			bestARR = r.Metrics.ARR
		}
		if r.Metrics.SR > bestSR {
			bestSR = r.Metrics.SR
		}
	}

	c.BestARR = format.PercentN(bestARR, 1)
	c.BestSR = format.Fixed(bestSR, 2)
	return c
}
