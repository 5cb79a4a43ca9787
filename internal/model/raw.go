package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Object is a JSON object kept as raw bytes. Its keys are not interpreted.
type Object json.RawMessage

// EmptyObject returns {}.
func EmptyObject() Object {
	return Object("{}")
}

func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	return append(Object(nil), o...)
}

// MarshalJSON writes the raw object, or {} when empty.
func (o Object) MarshalJSON() ([]byte, error) {
	if len(o) == 0 {
		return []byte("{}"), nil
	}
	return o, nil
}

func (o *Object) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected JSON object, got %.32s", trimmed)
	}
	*o = append((*o)[:0], trimmed...)
	return nil
}

// BlockFilter is one runtime-defined block filter entry, passed through as-is.
type BlockFilter json.RawMessage

func (b BlockFilter) Clone() BlockFilter {
	if b == nil {
		return nil
	}
	return append(BlockFilter(nil), b...)
}

func (b BlockFilter) MarshalJSON() ([]byte, error) {
	if len(b) == 0 {
		return []byte("null"), nil
	}
	return b, nil
}

func (b *BlockFilter) UnmarshalJSON(data []byte) error {
	*b = append((*b)[:0], bytes.TrimSpace(data)...)
	return nil
}
