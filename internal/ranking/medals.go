package ranking

import (
	"sort"

	"github.com/wonny/eventlens/internal/contracts"
)

// Medals counts podium finishes of one model across event types
type Medals struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
}

// Score weights gold 3, silver 2, bronze 1
func (m Medals) Score() int {
	return m.Gold*3 + m.Silver*2 + m.Bronze
}

// Total is the number of medals won
func (m Medals) Total() int {
	return m.Gold + m.Silver + m.Bronze
}

// Champion is the winner of one event type
type Champion struct {
	EventType   contracts.EventType
	Model       string
	TotalReturn float64
}

// Tally is the medal table over every event type
type Tally struct {
	Medals    map[string]Medals
	Champions []Champion

	// PerCategory counts medals awarded inside each event type
	PerCategory map[contracts.EventType]int

	order []string // first appearance
}

// TallyMedals awards gold/silver/bronze to the top three by total return of every
// event type in the fixed enumeration. Event types absent from results award nothing.
func TallyMedals(results contracts.EventTypeResults) *Tally {
	t := &Tally{
		Medals:      make(map[string]Medals),
		PerCategory: make(map[contracts.EventType]int),
	}

	for _, et := range contracts.EventTypes() {
		t.PerCategory[et] = 0

		rows := results[et]
		if len(rows) == 0 {
			continue
		}

		sorted := EventRowsByTotalReturn(rows)
		if len(sorted) > MedalsPerCategory {
			sorted = sorted[:MedalsPerCategory]
		}

		for place, row := range sorted {
			m, seen := t.Medals[row.ModelName]
			if !seen {
				t.order = append(t.order, row.ModelName)
			}

			switch place {
			case 0:
				m.Gold++
				t.Champions = append(t.Champions, Champion{
					EventType:   et,
					Model:       row.ModelName,
					TotalReturn: row.Metrics.TotalReturn,
				})
			case 1:
				m.Silver++
			case 2:
				m.Bronze++
			}

			t.Medals[row.ModelName] = m
			t.PerCategory[et]++
		}
	}

	return t
}

// ByScore returns medal winners ordered by Score, descending.
// Ties keep the order in which models first won a medal.
func (t *Tally) ByScore() []string {
	models := make([]string, len(t.order))
	copy(models, t.order)
	sort.SliceStable(models, func(i, j int) bool {
		return t.Medals[models[i]].Score() > t.Medals[models[j]].Score()
	})
	return models
}
