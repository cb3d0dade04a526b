package domain

import (
	"fmt"
	"strings"
)

// Fixed accent colors. These are part of the avatar's look and never come
// from the configuration.
const (
	// MouthColor is the near-black used for every mouth shape.
	MouthColor = "#3a2a2a"
	// TongueColor is the accent inside an open mouth.
	TongueColor = "#e58a8a"
	// BlushColor tints the cheek discs.
	BlushColor = "#ff9999"
	// PonytailTieColor is the accent torus on the ponytail style.
	PonytailTieColor = "#e6b34d"
	// ScleraColor backs wide and sparkle eyes.
	ScleraColor = "#ffffff"
)

// parseHexColor reads a #rgb or #rrggbb string into channels. Colors are
// user-supplied free text, so failure is expected and handled by callers.
func parseHexColor(value string) (r, g, b int, ok bool) {
	value = strings.TrimSpace(strings.ToLower(value))
	if !strings.HasPrefix(value, "#") {
		return 0, 0, 0, false
	}
	hex := value[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	channel := func(s string) (int, bool) {
		var v int
		if _, err := fmt.Sscanf(s, "%02x", &v); err != nil {
			return 0, false
		}
		return v, true
	}
	var okR, okG, okB bool
	r, okR = channel(hex[0:2])
	g, okG = channel(hex[2:4])
	b, okB = channel(hex[4:6])
	if !okR || !okG || !okB {
		return 0, 0, 0, false
	}
	return r, g, b, true
}

// DarkenHexColor scales every channel of a hex color by factor, clamped to
// the channel range. Invalid input is returned unchanged so a bad color
// degrades visually instead of failing generation.
func DarkenHexColor(value string, factor float64) string {
	r, g, b, ok := parseHexColor(value)
	if !ok {
		return value
	}
	scale := func(channel int) int {
		scaled := int(float64(channel) * factor)
		if scaled < 0 {
			return 0
		}
		if scaled > 255 {
			return 255
		}
		return scaled
	}
	return fmt.Sprintf("#%02x%02x%02x", scale(r), scale(g), scale(b))
}
