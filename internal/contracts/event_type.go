package contracts

// EventType is the category code of a news or corporate-action event.
// Codes are the keys upstream uses in the per-event-type datasets.
// ⭐ SSOT: 이벤트 유형 코드와 표시명은 여기서만 정의
type EventType string

const (
	EventPersonalBehavior EventType = "个人言行"
	EventDividend         EventType = "分红转送"
	EventEquityChange     EventType = "股权变动"
	EventFinancing        EventType = "融资"
	EventIndustry         EventType = "行业"
	EventRatingAdjustment EventType = "评级调整"
	EventFinancialStatus  EventType = "财务状况"
	EventAssetChange      EventType = "资产变动"
	EventViolation        EventType = "违法违规"
	EventRiskWarning      EventType = "风险警示与消除"
)

// eventTypes is the canonical order
var eventTypes = []EventType{
	EventPersonalBehavior,
	EventDividend,
	EventEquityChange,
	EventFinancing,
	EventIndustry,
	EventRatingAdjustment,
	EventFinancialStatus,
	EventAssetChange,
	EventViolation,
	EventRiskWarning,
}

var eventTypeNames = map[EventType]string{
	EventPersonalBehavior: "Personal Behavior",
	EventDividend:         "Dividend",
	EventEquityChange:     "Equity Change",
	EventFinancing:        "Financing",
	EventIndustry:         "Industry",
	EventRatingAdjustment: "Rating Adjustment",
	EventFinancialStatus:  "Financial Status",
	EventAssetChange:      "Asset Change",
	EventViolation:        "Violation",
	EventRiskWarning:      "Risk Warning",
}

// EventTypes returns every known event type in canonical order.
// The returned slice is a copy.
func EventTypes() []EventType {
	out := make([]EventType, len(eventTypes))
	copy(out, eventTypes)
	return out
}

// ParseEventType validates a raw code against the enumeration
func ParseEventType(code string) (EventType, bool) {
	et := EventType(code)
	_, ok := eventTypeNames[et]
	return et, ok
}

// Valid reports whether t belongs to the enumeration
func (t EventType) Valid() bool {
	_, ok := eventTypeNames[t]
	return ok
}

// DisplayName returns the English label, or the raw code for unknown values
func (t EventType) DisplayName() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return string(t)
}
