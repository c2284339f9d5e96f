package models

import "time"

// Dimension is the dimensionality of a saved chart.
type Dimension string

const (
	Dimension1D   Dimension = "1D"
	Dimension2D   Dimension = "2D"
	Dimension3D   Dimension = "3D"
	Dimension2D3D Dimension = "2D3D"
)

// Dimensions lists every accepted Dimension value.
var Dimensions = []Dimension{Dimension1D, Dimension2D, Dimension3D, Dimension2D3D}

// ChartHistoryEntry is one append-only record of a chart configuration.
// FileName is resolved from the files table at read time and is empty when
// the file has been deleted since.
type ChartHistoryEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user"`
	FileID    string    `json:"fileId"`
	FileName  string    `json:"fileName"`
	ChartType string    `json:"chartType"`
	Dimension Dimension `json:"dimension"`
	XAxis     string    `json:"xAxis"`
	YAxis     string    `json:"yAxis,omitempty"`
	ZAxis     string    `json:"zAxis,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UploadHistoryEntry is one append-only record of a successful upload.
type UploadHistoryEntry struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user"`
	FileID     string    `json:"fileId"`
	FileName   string    `json:"fileName"`
	UploadedAt time.Time `json:"uploadedAt"`
}
