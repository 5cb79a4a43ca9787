package model

import (
	"encoding/json"
	"math/big"
	"testing"
)

func TestHeightJSONExact(t *testing.T) {
	const big64 = "18446744073709551617" // 2^64 + 1
	var h Height
	if err := json.Unmarshal([]byte(big64), &h); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if h.IsUint64() {
		t.Fatalf("height should not fit in uint64")
	}

	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != big64 {
		t.Fatalf("round-trip mismatch: %s != %s", data, big64)
	}
}

func TestHeightJSONQuoted(t *testing.T) {
	var ref SourceRef
	if err := json.Unmarshal([]byte(`{"name":"mainnet","start":"9007199254740993"}`), &ref); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if ref.Start.String() != "9007199254740993" {
		t.Fatalf("start mismatch: %s", ref.Start)
	}
	if !ref.Start.IsUint64() || ref.Start.Uint64() != 9007199254740993 {
		t.Fatalf("uint64 mismatch: %d", ref.Start.Uint64())
	}
}

func TestHeightJSONInvalid(t *testing.T) {
	for _, input := range []string{`-1`, `1.5`, `1e3`, `"abc"`, `null`, `true`} {
		var h Height
		if err := json.Unmarshal([]byte(input), &h); err == nil {
			t.Fatalf("expected error for %s", input)
		}
	}
}

func TestHeightZeroValue(t *testing.T) {
	var h Height
	if h.String() != "0" {
		t.Fatalf("zero value should be 0, got %s", h)
	}
	if h.Cmp(HeightFromUint64(0)) != 0 {
		t.Fatalf("zero value should equal height 0")
	}
	if h.Big().Sign() != 0 {
		t.Fatalf("zero value big should be 0")
	}
}

func TestHeightCloneIndependent(t *testing.T) {
	src := big.NewInt(100)
	h := NewHeight(src)
	src.SetInt64(5)
	if h.String() != "100" {
		t.Fatalf("NewHeight should copy input, got %s", h)
	}

	b := h.Big()
	b.SetInt64(7)
	if h.String() != "100" {
		t.Fatalf("Big should return a copy, got %s", h)
	}

	c := h.Clone()
	if c.Cmp(h) != 0 {
		t.Fatalf("clone mismatch: %s != %s", c, h)
	}
}
