package model

import (
	"bytes"
	"fmt"
	"math/big"
)

// Height is a non-negative block height of arbitrary size.
// The zero value is height 0.
type Height struct {
	v *big.Int
}

// NewHeight copies x into a Height. It panics on negative input.
func NewHeight(x *big.Int) Height {
	if x == nil {
		return Height{}
	}
	if x.Sign() < 0 {
		panic("model: negative height")
	}
	return Height{v: new(big.Int).Set(x)}
}

// HeightFromUint64 returns the height n.
func HeightFromUint64(n uint64) Height {
	return Height{v: new(big.Int).SetUint64(n)}
}

// ParseHeight parses a base-10 height.
func ParseHeight(s string) (Height, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Height{}, fmt.Errorf("invalid height %q", s)
	}
	if v.Sign() < 0 {
		return Height{}, fmt.Errorf("negative height %q", s)
	}
	return Height{v: v}, nil
}

// Big returns a copy of the height as a big.Int.
func (h Height) Big() *big.Int {
	if h.v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(h.v)
}

// Clone returns a Height that shares no memory with h.
func (h Height) Clone() Height {
	if h.v == nil {
		return Height{}
	}
	return Height{v: new(big.Int).Set(h.v)}
}

// Cmp compares h and o like big.Int.Cmp.
func (h Height) Cmp(o Height) int {
	return h.Big().Cmp(o.Big())
}

func (h Height) IsUint64() bool {
	return h.v == nil || h.v.IsUint64()
}

// Uint64 returns the low 64 bits; check IsUint64 first.
func (h Height) Uint64() uint64 {
	if h.v == nil {
		return 0
	}
	return h.v.Uint64()
}

func (h Height) String() string {
	if h.v == nil {
		return "0"
	}
	return h.v.String()
}

// MarshalJSON writes the height as a bare integer literal.
func (h Height) MarshalJSON() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalJSON accepts a bare integer literal or a quoted decimal string.
func (h *Height) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("height must not be null")
	}
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	parsed, err := ParseHeight(string(data))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
