package model

import (
	"bytes"
	"encoding/json"
)

// Column is a destination column. Type is an opaque SQL type string.
type Column struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Table is the destination table as authored.
type Table struct {
	Name          string               `json:"name"`
	Schema        Optional[string]     `json:"schema,omitzero"`
	Columns       []Column             `json:"columns"`
	Index         Optional[[][]string] `json:"index,omitzero"`
	Unique        Optional[[][]string] `json:"unique,omitzero"`
	DisableUnique bool                 `json:"disable_unique,omitempty"`
}

// ResolvedTable always carries an index list; Schema and Unique stay absent
// unless authored.
type ResolvedTable struct {
	Name          string               `json:"name"`
	Schema        Optional[string]     `json:"schema,omitzero"`
	Columns       []Column             `json:"columns"`
	Index         [][]string           `json:"index"`
	Unique        Optional[[][]string] `json:"unique,omitzero"`
	DisableUnique bool                 `json:"disable_unique,omitempty"`
}

// QualifiedName returns schema.name, or name when no schema was given.
func (t ResolvedTable) QualifiedName() string {
	if s, ok := t.Schema.Get(); ok && s != "" {
		return s + "." + t.Name
	}
	return t.Name
}

// Notification lists the columns sent with each notification. Like Event,
// a decoded Notification encodes back to its source document.
type Notification struct {
	Columns []string `json:"columns"`

	raw json.RawMessage
}

func (n Notification) MarshalJSON() ([]byte, error) {
	if len(n.raw) > 0 {
		return n.raw, nil
	}
	type plain Notification
	if n.Columns == nil {
		n.Columns = []string{}
	}
	return json.Marshal(plain(n))
}

func (n *Notification) UnmarshalJSON(data []byte) error {
	type plain Notification
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*n = Notification(p)
	n.raw = append(json.RawMessage(nil), bytes.TrimSpace(data)...)
	return nil
}

// Clone returns a deep copy of the notification.
func (n Notification) Clone() Notification {
	if n.Columns != nil {
		n.Columns = append([]string{}, n.Columns...)
	}
	if n.raw != nil {
		n.raw = append(json.RawMessage(nil), n.raw...)
	}
	return n
}
