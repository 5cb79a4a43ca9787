package storage

import "indexConfig/internal/model"

// Storage defines a sink for resolved configurations.
type Storage interface {
	PutResolved(cfg model.ResolvedConfig) error
}
