package contracts

// DatasetName identifies one of the precomputed JSON documents
type DatasetName string

const (
	DatasetSummaryStats  DatasetName = "summary_stats"
	DatasetUnified       DatasetName = "unified_backtest"
	DatasetEventType     DatasetName = "event_type_backtest"
	DatasetEventWeights  DatasetName = "event_weights"
	DatasetHoldingPeriod DatasetName = "holding_period_data"
	DatasetModelAccuracy DatasetName = "model_accuracy"
	DatasetNavTimeseries DatasetName = "nav_timeseries"
	DatasetEventTypeNav  DatasetName = "event_type_nav_timeseries"
)

var datasetNames = []DatasetName{
	DatasetSummaryStats,
	DatasetUnified,
	DatasetEventType,
	DatasetEventWeights,
	DatasetHoldingPeriod,
	DatasetModelAccuracy,
	DatasetNavTimeseries,
	DatasetEventTypeNav,
}

// DatasetNames returns all datasets in fetch order
func DatasetNames() []DatasetName {
	out := make([]DatasetName, len(datasetNames))
	copy(out, datasetNames)
	return out
}

// FileName is the relative resource name of the dataset
func (n DatasetName) FileName() string {
	return string(n) + ".json"
}

// Page is a top-level dashboard page
type Page string

const (
	PageHome    Page = "home"
	PageEvents  Page = "events"
	PageWeights Page = "weights"
)

// ParsePage validates a raw page name
func ParsePage(s string) (Page, bool) {
	switch p := Page(s); p {
	case PageHome, PageEvents, PageWeights:
		return p, true
	default:
		return "", false
	}
}
