package pipeline

import (
	"errors"

	"github.com/chazu/stencil/pkg/plate"
)

// PlateConfig holds the plate builder and extruder parameters.
type PlateConfig struct {
	MarginMm    float64 `json:"marginMm"`
	ClearanceMm float64 `json:"clearanceMm"`
	ThicknessMm float64 `json:"thicknessMm"`
}

// SprueConfig holds the island router parameters plus an enable toggle.
type SprueConfig struct {
	Enabled     bool    `json:"enabled"`
	WidthMm     float64 `json:"widthMm"`
	MaxLengthMm float64 `json:"maxLengthMm"`
	MaxCount    int     `json:"maxCount"`
}

// MarkConfig holds the alignment mark parameters plus an enable toggle.
type MarkConfig struct {
	Enabled      bool           `json:"enabled"`
	Type         plate.MarkType `json:"type"`
	SizeMm       float64        `json:"sizeMm"`
	EdgeOffsetMm float64        `json:"edgeOffsetMm"`
}

// PreviewConfig controls the optional SDF display mesh.
type PreviewConfig struct {
	Enabled bool `json:"enabled"`
	Cells   int  `json:"cells"`
}

// Config is the full pipeline configuration.
type Config struct {
	Plate   PlateConfig   `json:"plate"`
	Sprues  SprueConfig   `json:"sprues"`
	Marks   MarkConfig    `json:"marks"`
	Preview PreviewConfig `json:"preview"`
}

// Default returns a configuration suitable for a typical flexible
// stencil: 10mm margin, 2mm plate, 0.5mm clearance, sprues on.
func Default() Config {
	return Config{
		Plate:   PlateConfig{MarginMm: 10, ClearanceMm: 0.5, ThicknessMm: 2},
		Sprues:  SprueConfig{Enabled: true, WidthMm: 2, MaxLengthMm: 50, MaxCount: 10},
		Marks:   MarkConfig{Enabled: false, Type: plate.MarkCircularHole, SizeMm: 5, EdgeOffsetMm: 10},
		Preview: PreviewConfig{Enabled: false, Cells: 200},
	}
}

// Validate checks every enabled stage's parameters and returns all
// findings joined into one error, or nil.
func (c Config) Validate() error {
	var errs []error
	errs = append(errs, c.buildConfig().Validate())
	if c.Plate.ThicknessMm <= 0 {
		errs = append(errs, errThickness(c.Plate.ThicknessMm))
	}
	if c.Sprues.Enabled {
		errs = append(errs, c.sprueConfig().Validate())
	}
	if c.Marks.Enabled {
		errs = append(errs, c.markConfig().Validate())
	}
	return errors.Join(errs...)
}

func (c Config) buildConfig() plate.BuildConfig {
	return plate.BuildConfig{MarginMm: c.Plate.MarginMm, ClearanceMm: c.Plate.ClearanceMm}
}

func (c Config) sprueConfig() plate.SprueConfig {
	return plate.SprueConfig{WidthMm: c.Sprues.WidthMm, MaxLengthMm: c.Sprues.MaxLengthMm, MaxCount: c.Sprues.MaxCount}
}

func (c Config) markConfig() plate.MarkConfig {
	return plate.MarkConfig{Type: c.Marks.Type, SizeMm: c.Marks.SizeMm, EdgeOffsetMm: c.Marks.EdgeOffsetMm}
}
