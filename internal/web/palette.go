package web

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed assets/palette.yaml
var paletteYAML []byte

// Swatch is one named preset color.
type Swatch struct {
	Name string `yaml:"name" json:"name"`
	Hex  string `yaml:"hex" json:"hex"`
}

// Palette groups the swatch presets the editor UI offers per color field.
// The presets are suggestions; any hex color is accepted by the
// configuration.
type Palette struct {
	Skin []Swatch `yaml:"skin" json:"skin"`
	Hair []Swatch `yaml:"hair" json:"hair"`
	Eyes []Swatch `yaml:"eyes" json:"eyes"`
}

// LoadPalette parses the embedded swatch presets.
func LoadPalette() (Palette, error) {
	var palette Palette
	if err := yaml.Unmarshal(paletteYAML, &palette); err != nil {
		return Palette{}, fmt.Errorf("parse palette presets: %w", err)
	}
	return palette, nil
}
