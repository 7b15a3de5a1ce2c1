package session

// Client message types
const (
	MsgHello               = "hello"
	MsgNavigate            = "navigate"
	MsgSelectEventType     = "selectEventType"
	MsgSelectHoldingMetric = "selectHoldingMetric"
)

// UI event labels for messages outside the protocol
const (
	eventUnknown   = "unknown"
	eventMalformed = "malformed"
)

func knownMessage(msgType string) bool {
	switch msgType {
	case MsgHello, MsgNavigate, MsgSelectEventType, MsgSelectHoldingMetric:
		return true
	}
	return false
}

// ClientMessage is a UI event sent by the browser
type ClientMessage struct {
	Type    string   `json:"type"`
	Targets []string `json:"targets,omitempty"` // hello: view targets present on the page
	Page    string   `json:"page,omitempty"`    // hello, navigate
	Key     string   `json:"key,omitempty"`     // selectEventType
	Metric  string   `json:"metric,omitempty"`  // selectHoldingMetric
}

// Server command ops
const (
	OpInit      = "init"
	OpSetOption = "setOption"
	OpDispose   = "dispose"
	OpResize    = "resize"
	OpHTML      = "html"
	OpText      = "text"
	OpVisible   = "visible"
	OpActive    = "active"
	OpError     = "error"
)

// Command is a draw or DOM instruction applied by the browser in order
type Command struct {
	Op       string `json:"op"`
	Target   string `json:"target,omitempty"`
	Instance int    `json:"instance,omitempty"`

	Option  any  `json:"option,omitempty"`
	Replace bool `json:"replace,omitempty"`

	Content *string `json:"content,omitempty"` // html, text
	Flag    *bool   `json:"flag,omitempty"`    // visible, active

	Message string `json:"message,omitempty"` // error
}
