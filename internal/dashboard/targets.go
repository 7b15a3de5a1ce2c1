package dashboard

import "github.com/wonny/eventlens/internal/contracts"

// View targets (DOM element ids of the page shell)
const (
	TargetTotalModels = "total-models"
	TargetEventTypes  = "event-types"
	TargetBestARR     = "best-arr"
	TargetBestSR      = "best-sr"
	TargetTicker      = "ticker-content"

	TargetNavChart     = "nav-chart"
	TargetHomeChart    = "home-chart"
	TargetRankingsBody = "home-rankings-body"
	TargetRadarChart   = "home-radar-chart"
	TargetHoldingChart = "holding-period-chart"

	TargetEventButtons  = "event-type-buttons"
	TargetEventContent  = "event-content"
	TargetEventNavTitle = "event-nav-title"
	TargetEventTitle    = "event-title"
	TargetEventTable    = "event-table-body"
	TargetEventNavChart = "event-nav-chart"

	TargetMedalsChart    = "ranking-medals-chart"
	TargetChampionsChart = "ranking-champions-chart"

	TargetWeightsPie   = "weights-pie-chart"
	TargetWeightsBar   = "weights-bar-chart"
	TargetWeightsTable = "weights-table-body"
)

// Deferred step names, used in logs and metrics
const (
	StepEventNav        = "event-nav"
	StepEventNavResize  = "event-nav-resize"
	StepRankingOverview = "ranking-overview"
)

// PageTarget is the container of a page
func PageTarget(p contracts.Page) string {
	return "page-" + string(p)
}

// MenuTarget is the navigation entry of a page
func MenuTarget(p contracts.Page) string {
	return "menu-" + string(p)
}

// HoldingButtonTarget is the button selecting a holding metric
func HoldingButtonTarget(m contracts.HoldingMetric) string {
	return "holding-" + string(m) + "-btn"
}

// Pages lists the pages in menu order
func Pages() []contracts.Page {
	return []contracts.Page{contracts.PageHome, contracts.PageEvents, contracts.PageWeights}
}

// AllTargets lists every target the dashboard writes to
func AllTargets() []string {
	targets := []string{
		TargetTotalModels, TargetEventTypes, TargetBestARR, TargetBestSR, TargetTicker,
		TargetNavChart, TargetHomeChart, TargetRankingsBody, TargetRadarChart, TargetHoldingChart,
		TargetEventButtons, TargetEventContent, TargetEventNavTitle, TargetEventTitle, TargetEventTable, TargetEventNavChart,
		TargetMedalsChart, TargetChampionsChart,
		TargetWeightsPie, TargetWeightsBar, TargetWeightsTable,
	}
	for _, p := range Pages() {
		targets = append(targets, PageTarget(p), MenuTarget(p))
	}
	for _, m := range contracts.HoldingMetrics() {
		targets = append(targets, HoldingButtonTarget(m))
	}
	return targets
}
