package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// EventCounts tallies event tokens, remembering the order in which each
// token was first seen.
type EventCounts struct {
	keys   []string
	counts map[string]int
}

// NewEventCounts creates an empty tally
func NewEventCounts() *EventCounts {
	return &EventCounts{counts: make(map[string]int)}
}

// Add increments the count for token
func (e *EventCounts) Add(token string) {
	if _, ok := e.counts[token]; !ok {
		e.keys = append(e.keys, token)
	}
	e.counts[token]++
}

// Get returns the count for token
func (e *EventCounts) Get(token string) int {
	if e == nil {
		return 0
	}
	return e.counts[token]
}

// Keys returns tokens in first-seen order
func (e *EventCounts) Keys() []string {
	if e == nil {
		return nil
	}
	return append([]string(nil), e.keys...)
}

// Len returns the number of distinct tokens
func (e *EventCounts) Len() int {
	if e == nil {
		return 0
	}
	return len(e.keys)
}

// Sum returns the total of all counts
func (e *EventCounts) Sum() int {
	if e == nil {
		return 0
	}
	total := 0
	for _, n := range e.counts {
		total += n
	}
	return total
}

// Map returns a copy of the tally as a plain map
func (e *EventCounts) Map() map[string]int {
	m := make(map[string]int, e.Len())
	if e == nil {
		return m
	}
	for k, v := range e.counts {
		m[k] = v
	}
	return m
}

// MarshalJSON encodes the tally as an object in first-seen order
func (e *EventCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.counts[k]))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AnalysisResult is the coarse per-file tally produced by one scan.
//
// TotalLines is ErrorCount plus the sum of EventCounts, not a physical line
// count: a line containing ERROR is counted once as an error and once under
// its leading token.
type AnalysisResult struct {
	TotalLines  int
	ErrorCount  int
	EventCounts *EventCounts

	// Error is set instead of the counts when the scan failed.
	Error string
}

// Failed reports whether the analysis produced an error instead of counts
func (r AnalysisResult) Failed() bool {
	return r.Error != ""
}

// MarshalJSON encodes either the counts or the error object
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	counts := r.EventCounts
	if counts == nil {
		counts = NewEventCounts()
	}
	return json.Marshal(struct {
		TotalLines  int          `json:"total_lines"`
		ErrorCount  int          `json:"error_count"`
		EventCounts *EventCounts `json:"event_counts"`
	}{r.TotalLines, r.ErrorCount, counts})
}

// String renders the result as compact JSON for display
func (r AnalysisResult) String() string {
	data, err := r.MarshalJSON()
	if err != nil {
		return `{"error":"` + err.Error() + `"}`
	}
	return string(data)
}
