// Package eventabi interprets an integration's event descriptor with the
// go-ethereum ABI parser. The resolver never uses it; it backs the CLI
// commands that report what an integration will match on chain.
package eventabi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"indexConfig/internal/model"
)

// Parse converts the descriptor into a go-ethereum abi.Event.
func Parse(ev model.Event) (abi.Event, error) {
	if ev.Type != "event" {
		return abi.Event{}, fmt.Errorf("descriptor %q has type %q, want event", ev.Name, ev.Type)
	}
	if ev.Name == "" {
		return abi.Event{}, fmt.Errorf("event name is required")
	}

	data, err := json.Marshal([]model.Event{ev})
	if err != nil {
		return abi.Event{}, fmt.Errorf("marshal event %s: %w", ev.Name, err)
	}
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return abi.Event{}, fmt.Errorf("parse event %s: %w", ev.Name, err)
	}
	out, ok := parsed.Events[ev.Name]
	if !ok {
		return abi.Event{}, fmt.Errorf("event %s missing after parse", ev.Name)
	}
	return out, nil
}

// Signature returns the canonical signature, e.g. Transfer(address,address,uint256).
func Signature(ev model.Event) (string, error) {
	parsed, err := Parse(ev)
	if err != nil {
		return "", err
	}
	return parsed.Sig, nil
}

// Topic0 returns the keccak256 hash of the signature. Anonymous events
// carry no topic0 on chain, so callers should check ev.Anonymous.
func Topic0(ev model.Event) (common.Hash, error) {
	parsed, err := Parse(ev)
	if err != nil {
		return common.Hash{}, err
	}
	return parsed.ID, nil
}

// IndexedInputs returns the names of inputs stored in topics.
func IndexedInputs(ev model.Event) []string {
	var names []string
	for _, input := range ev.Inputs {
		if input.Indexed {
			names = append(names, input.Name)
		}
	}
	return names
}
