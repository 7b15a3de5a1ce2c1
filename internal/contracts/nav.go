package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NamedSeries is one NAV line
type NamedSeries struct {
	Name   string
	Values []float64
}

// NavSeries is a NAV time series set: every value slice is aligned with Dates.
// Series keeps the key order of the source document (legend order).
type NavSeries struct {
	Dates  []string
	Series []NamedSeries
}

// Names returns series names in document order
func (n NavSeries) Names() []string {
	names := make([]string, len(n.Series))
	for i, s := range n.Series {
		names[i] = s.Name
	}
	return names
}

// Get returns the values of a named series
func (n NavSeries) Get(name string) ([]float64, bool) {
	for _, s := range n.Series {
		if s.Name == name {
			return s.Values, true
		}
	}
	return nil, false
}

// DropMisaligned removes series whose length differs from Dates and
// returns the removed names.
func (n *NavSeries) DropMisaligned() []string {
	var dropped []string
	kept := n.Series[:0]
	for _, s := range n.Series {
		if len(s.Values) != len(n.Dates) {
			dropped = append(dropped, s.Name)
			continue
		}
		kept = append(kept, s)
	}
	n.Series = kept
	return dropped
}

type navSeriesJSON struct {
	Dates  []string      `json:"dates"`
	Series orderedSeries `json:"series"`
}

// UnmarshalJSON decodes {"dates": [...], "series": {"name": [...], ...}} keeping key order
func (n *NavSeries) UnmarshalJSON(data []byte) error {
	var raw navSeriesJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	n.Dates = raw.Dates
	n.Series = raw.Series
	return nil
}

// MarshalJSON writes the series object back in document order
func (n NavSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(navSeriesJSON{Dates: n.Dates, Series: n.Series})
}

type orderedSeries []NamedSeries

func (o *orderedSeries) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("series: expected object, got %v", tok)
	}

	out := orderedSeries{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("series: expected key, got %v", keyTok)
		}

		var values []float64
		if err := dec.Decode(&values); err != nil {
			return fmt.Errorf("series %q: %w", name, err)
		}
		out = append(out, NamedSeries{Name: name, Values: values})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = out
	return nil
}

func (o orderedSeries) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		values, err := json.Marshal(s.Values)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(values)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EventNavSet maps an event type's display name to its NAV series
type EventNavSet map[string]NavSeries

// For looks up the NAV series of an event type through its display name
func (s EventNavSet) For(t EventType) (NavSeries, bool) {
	if s == nil {
		return NavSeries{}, false
	}
	nav, ok := s[t.DisplayName()]
	return nav, ok
}
