package model

import (
	"bytes"
	"encoding/json"
)

// Event describes an on-chain event in ABI JSON form.
//
// A decoded Event remembers its source document and encodes back to it
// unchanged, so keys the typed view does not declare (filter_op, filter_arg,
// filter_ref on inputs) survive. Events built in code encode from the fields.
type Event struct {
	Type      string       `json:"type"`
	Name      string       `json:"name"`
	Anonymous bool         `json:"anonymous"`
	Inputs    []EventInput `json:"inputs"`

	raw json.RawMessage
}

// EventInput is one event parameter. Column maps it to a table column.
type EventInput struct {
	Indexed      bool         `json:"indexed"`
	Name         string       `json:"name"`
	Type         string       `json:"type"`
	InternalType string       `json:"internalType,omitempty"`
	Column       string       `json:"column,omitempty"`
	Components   []EventInput `json:"components,omitempty"`
}

// Raw returns the decoded source document, or nil for events built in code.
func (e Event) Raw() json.RawMessage {
	return e.raw
}

func (e Event) MarshalJSON() ([]byte, error) {
	if len(e.raw) > 0 {
		return e.raw, nil
	}
	type plain Event
	return json.Marshal(plain(e))
}

func (e *Event) UnmarshalJSON(data []byte) error {
	type plain Event
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*e = Event(p)
	e.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// Clone returns a deep copy of the event.
func (e Event) Clone() Event {
	e.Inputs = cloneInputs(e.Inputs)
	if e.raw != nil {
		e.raw = append(json.RawMessage(nil), e.raw...)
	}
	return e
}

func cloneInputs(in []EventInput) []EventInput {
	if in == nil {
		return nil
	}
	out := make([]EventInput, len(in))
	for i, input := range in {
		input.Components = cloneInputs(input.Components)
		out[i] = input
	}
	return out
}
