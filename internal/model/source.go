package model

// Source is a named chain endpoint.
type Source struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	ChainID uint64 `json:"chain_id"`
}

// SourceRef binds an integration to a Source by name, starting at Start.
type SourceRef struct {
	Name  string `json:"name"`
	Start Height `json:"start"`
}
