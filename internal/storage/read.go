package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"indexConfig/internal/model"
)

// ReadConfig loads an authored configuration from a JSON file.
func ReadConfig(path string) (model.Config, error) {
	if path == "" {
		return model.Config{}, fmt.Errorf("config path is required")
	}
	file, err := os.Open(path)
	if err != nil {
		return model.Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	cfg, err := DecodeConfig(file)
	if err != nil {
		return model.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// DecodeConfig decodes a single JSON document. Block heights decode
// straight into big integers and never pass through float64.
func DecodeConfig(r io.Reader) (model.Config, error) {
	dec := json.NewDecoder(r)
	var cfg model.Config
	if err := dec.Decode(&cfg); err != nil {
		return model.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if dec.More() {
		return model.Config{}, fmt.Errorf("decode config: trailing data after document")
	}
	return cfg, nil
}
