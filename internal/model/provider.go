package model

// Provider describes an LLM vendor the explanation endpoint can call.
type Provider struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	BaseURL      string   `json:"-"`
	DefaultModel string   `json:"default_model"`
	Models       []string `json:"models"`
	// Wire selects the request shape and auth header family, see service.wireFormats.
	Wire string `json:"-"`
}
