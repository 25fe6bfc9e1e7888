package models

import "time"

// ExportBundle is the read-only snapshot handed to export renderers
// (spreadsheet, PDF). Renderers never see the live board.
type ExportBundle struct {
	Slots       []Slot    `json:"slots"`
	People      []Person  `json:"people"`
	Notes       []Note    `json:"notes"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// Exporter renders an ExportBundle into a downloadable document. Concrete
// renderers live outside this module; the API serves the bundle itself.
type Exporter interface {
	ContentType() string
	Render(bundle ExportBundle) ([]byte, error)
}
