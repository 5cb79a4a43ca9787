package model

// Integration is one indexing job as authored.
type Integration struct {
	Name         string                  `json:"name"`
	Enabled      bool                    `json:"enabled"`
	Sources      []SourceRef             `json:"sources"`
	Table        Table                   `json:"table"`
	Block        Optional[[]BlockFilter] `json:"block,omitzero"`
	Notification Optional[Notification]  `json:"notification,omitzero"`
	Event        Event                   `json:"event"`
}

// Config is the partial configuration written by an operator.
type Config struct {
	PGURL        string           `json:"pg_url"`
	Dashboard    Optional[Object] `json:"dashboard,omitzero"`
	Sources      []Source         `json:"sources"`
	Integrations []Integration    `json:"integrations"`
}

// ResolvedIntegration is an Integration with every source ref verified
// and every defaulted field filled in.
type ResolvedIntegration struct {
	Name         string                 `json:"name"`
	Enabled      bool                   `json:"enabled"`
	Sources      []SourceRef            `json:"sources"`
	Table        ResolvedTable          `json:"table"`
	Block        []BlockFilter          `json:"block"`
	Notification Optional[Notification] `json:"notification,omitzero"`
	Event        Event                  `json:"event"`
}

// ResolvedConfig is the canonical configuration handed to the indexer.
type ResolvedConfig struct {
	PGURL        string                `json:"pg_url"`
	Dashboard    Object                `json:"dashboard"`
	Sources      []Source              `json:"sources"`
	Integrations []ResolvedIntegration `json:"integrations"`
}

// Source returns the registry entry with the given name.
func (c ResolvedConfig) Source(name string) (Source, bool) {
	for _, src := range c.Sources {
		if src.Name == name {
			return src, true
		}
	}
	return Source{}, false
}
