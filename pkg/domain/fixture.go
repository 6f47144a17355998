package domain

import "time"

// Fixture is the outcome of one blueprint run.
// Running the same blueprint with the same Seed and Workers reproduces Values.
type Fixture struct {
	ID        string    `json:"id"`
	Blueprint string    `json:"blueprint"`
	Seed      string    `json:"seed"`
	Workers   int       `json:"workers,omitempty"`
	Values    []any     `json:"values"`
	CreatedAt time.Time `json:"created_at"`
}

// TemplateInfo describes a blueprint held by a template library.
type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
