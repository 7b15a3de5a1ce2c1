package contracts

import (
	"encoding/json"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventTypes_CanonicalOrder(t *testing.T) {
	types := EventTypes()
	require.Len(t, types, 10)
	assert.Equal(t, EventPersonalBehavior, types[0])
	assert.Equal(t, EventRiskWarning, types[9])

	// returned slice is a copy
	types[0] = "mutated"
	assert.Equal(t, EventPersonalBehavior, EventTypes()[0])
}

func TestParseEventType(t *testing.T) {
	et, ok := ParseEventType("融资")
	assert.True(t, ok)
	assert.Equal(t, EventFinancing, et)
	assert.Equal(t, "Financing", et.DisplayName())

	_, ok = ParseEventType("Financing")
	assert.False(t, ok, "display names are not codes")

	unknown := EventType("未知")
	assert.False(t, unknown.Valid())
	assert.Equal(t, "未知", unknown.DisplayName())
}

func TestParseHoldingMetric(t *testing.T) {
	for _, m := range HoldingMetrics() {
		got, ok := ParseHoldingMetric(string(m))
		assert.True(t, ok)
		assert.Equal(t, m, got)
	}

	_, ok := ParseHoldingMetric("tr")
	assert.False(t, ok)
	_, ok = ParseHoldingMetric("")
	assert.False(t, ok)
}

func TestParsePage(t *testing.T) {
	p, ok := ParsePage("weights")
	assert.True(t, ok)
	assert.Equal(t, PageWeights, p)

	_, ok = ParsePage("settings")
	assert.False(t, ok)
}

func TestDatasetName_FileName(t *testing.T) {
	assert.Equal(t, "holding_period_data.json", DatasetHoldingPeriod.FileName())
	assert.Len(t, DatasetNames(), 8)
}

func TestMetrics_OptionalAccuracy(t *testing.T) {
	var m Metrics
	require.NoError(t, json.Unmarshal([]byte(`{"arr":0.1,"sr":1.2,"mdd":0.05,"cr":2,"totalReturn":0.3,"days":250}`), &m))
	assert.Nil(t, m.DA)
	assert.Zero(t, m.DirectionalAccuracy())
	assert.Zero(t, m.EventTimingAccuracy())

	require.NoError(t, json.Unmarshal([]byte(`{"arr":0.1,"da":0.61,"eta":0.4}`), &m))
	assert.InDelta(t, 0.61, m.DirectionalAccuracy(), 1e-9)
	assert.InDelta(t, 0.4, m.EventTimingAccuracy(), 1e-9)
}

func TestHoldingPeriodData_Values(t *testing.T) {
	var nilData *HoldingPeriodData
	assert.Nil(t, nilData.Values("Janus-Q", HoldingTR))

	var h HoldingPeriodData
	doc := `{"models":["Janus-Q"],"holding_periods":[1,3,5],"data":{"Janus-Q":{"TR":[0.1,0.2,0.3],"SR":[1,2,3]}}}`
	require.NoError(t, json.Unmarshal([]byte(doc), &h))

	assert.Equal(t, []int{1, 3, 5}, h.HoldingPeriods)
	assert.Equal(t, []float64{1, 2, 3}, h.Values("Janus-Q", HoldingSR))
	assert.Nil(t, h.Values("Janus-Q", HoldingMDD))
	assert.Nil(t, h.Values("FinMA", HoldingTR))
}

func TestWeightSet_Balanced(t *testing.T) {
	tests := []struct {
		name string
		set  WeightSet
		want bool
	}{
		{"exact", WeightSet{{Percentage: 60}, {Percentage: 40}}, true},
		{"within tolerance", WeightSet{{Percentage: 33.4}, {Percentage: 33.4}, {Percentage: 33.4}}, true},
		{"drifted", WeightSet{{Percentage: 60}, {Percentage: 41}}, false},
		{"empty", WeightSet{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Balanced())
		})
	}
}

func TestNavSeries_KeepsDocumentOrder(t *testing.T) {
	doc := `{"dates":["2024-01-02","2024-01-03"],"series":{"Zeta":[1,1.1],"Janus-Q":[1,1.2],"CSI 300":[1,0.9]}}`

	var nav NavSeries
	require.NoError(t, json.Unmarshal([]byte(doc), &nav))

	assert.Equal(t, []string{"Zeta", "Janus-Q", "CSI 300"}, nav.Names())
	values, ok := nav.Get("Janus-Q")
	require.True(t, ok)
	assert.Equal(t, []float64{1, 1.2}, values)

	_, ok = nav.Get("missing")
	assert.False(t, ok)

	out, err := json.Marshal(nav)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))
	assert.Less(t, strings.Index(string(out), "Zeta"), strings.Index(string(out), "CSI 300"))
}

func TestNavSeries_RejectsNonObjectSeries(t *testing.T) {
	var nav NavSeries
	err := json.Unmarshal([]byte(`{"dates":[],"series":[1,2]}`), &nav)
	assert.Error(t, err)

	require.NoError(t, json.Unmarshal([]byte(`{"dates":[],"series":null}`), &nav))
	assert.Empty(t, nav.Series)
}

func TestNavSeries_DropMisaligned(t *testing.T) {
	nav := NavSeries{
		Dates: []string{"d1", "d2", "d3"},
		Series: []NamedSeries{
			{Name: "A", Values: []float64{1, 2, 3}},
			{Name: "B", Values: []float64{1, 2}},
			{Name: "C", Values: []float64{1, 2, 3}},
		},
	}

	dropped := nav.DropMisaligned()
	assert.Equal(t, []string{"B"}, dropped)
	assert.Equal(t, []string{"A", "C"}, nav.Names())
}

func TestEventNavSet_For(t *testing.T) {
	set := EventNavSet{
		"Dividend": {Dates: []string{"d1"}, Series: []NamedSeries{{Name: "A", Values: []float64{1}}}},
	}

	nav, ok := set.For(EventDividend)
	require.True(t, ok)
	assert.Equal(t, []string{"A"}, nav.Names())

	_, ok = set.For(EventFinancing)
	assert.False(t, ok)

	var empty EventNavSet
	_, ok = empty.For(EventDividend)
	assert.False(t, ok)
}

func TestWeightSet_NormalizeSumsToHundred(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		set := WeightSet{}
		for _, et := range EventTypes()[:1+rng.Intn(10)] {
			set = append(set, WeightEntry{EventType: et, Weight: 0.001 + rng.Float64()*10})
		}
		require.False(t, set.HasDerived())

		normalized := set.Normalize()
		assert.True(t, normalized.Balanced(), "round %d total %v", round, normalized.PercentageTotal())
		assert.InDelta(t, 100, normalized.PercentageTotal(), WeightTolerance)
		assert.True(t, normalized.HasDerived())
		assert.Zero(t, set[0].Percentage, "Normalize must not mutate the receiver")
	}
}

func TestWeightSet_NormalizeZeroTotal(t *testing.T) {
	set := WeightSet{{EventType: EventDividend}}
	assert.Zero(t, set.Normalize().PercentageTotal())
}
