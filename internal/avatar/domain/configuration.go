package domain

// Configuration fully describes one avatar's appearance. Style fields hold
// taxonomy values; color fields hold free-form hex strings that are never
// validated against a palette.
type Configuration struct {
	HeadShape    HeadShape
	HeadColor    string
	HairStyle    HairStyle
	HairColor    string
	EyeStyle     EyeStyle
	EyeColor     string
	EyebrowStyle EyebrowStyle
	NoseStyle    NoseStyle
	MouthStyle   MouthStyle
	HasBlush     bool
}

// DefaultConfiguration returns the configuration every session starts with.
func DefaultConfiguration() Configuration {
	return Configuration{
		HeadShape:    DefaultHeadShape,
		HeadColor:    DefaultHeadColor,
		HairStyle:    DefaultHairStyle,
		HairColor:    DefaultHairColor,
		EyeStyle:     DefaultEyeStyle,
		EyeColor:     DefaultEyeColor,
		EyebrowStyle: DefaultEyebrowStyle,
		NoseStyle:    DefaultNoseStyle,
		MouthStyle:   DefaultMouthStyle,
		HasBlush:     DefaultHasBlush,
	}
}

// Normalize resolves every style field through its taxonomy parser and
// default-fills empty colors, yielding a configuration that is always safe
// to hand to the generators.
func (c Configuration) Normalize() Configuration {
	c.HeadShape = ParseHeadShape(string(c.HeadShape))
	c.HairStyle = ParseHairStyle(string(c.HairStyle))
	c.EyeStyle = ParseEyeStyle(string(c.EyeStyle))
	c.EyebrowStyle = ParseEyebrowStyle(string(c.EyebrowStyle))
	c.NoseStyle = ParseNoseStyle(string(c.NoseStyle))
	c.MouthStyle = ParseMouthStyle(string(c.MouthStyle))
	if c.HeadColor == "" {
		c.HeadColor = DefaultHeadColor
	}
	if c.HairColor == "" {
		c.HairColor = DefaultHairColor
	}
	if c.EyeColor == "" {
		c.EyeColor = DefaultEyeColor
	}
	return c
}

// PatchInput describes an optional per-field update to a configuration.
// Nil fields keep their current value.
type PatchInput struct {
	HeadShape    *string
	HeadColor    *string
	HairStyle    *string
	HairColor    *string
	EyeStyle     *string
	EyeColor     *string
	EyebrowStyle *string
	NoseStyle    *string
	MouthStyle   *string
	HasBlush     *bool
}

// ApplyPatch applies a partial update to an existing configuration,
// returning a new complete configuration. Style values outside the
// taxonomy resolve to their defaults; empty colors likewise.
func ApplyPatch(existing Configuration, patch PatchInput) Configuration {
	result := existing

	if patch.HeadShape != nil {
		result.HeadShape = HeadShape(*patch.HeadShape)
	}
	if patch.HeadColor != nil {
		result.HeadColor = *patch.HeadColor
	}
	if patch.HairStyle != nil {
		result.HairStyle = HairStyle(*patch.HairStyle)
	}
	if patch.HairColor != nil {
		result.HairColor = *patch.HairColor
	}
	if patch.EyeStyle != nil {
		result.EyeStyle = EyeStyle(*patch.EyeStyle)
	}
	if patch.EyeColor != nil {
		result.EyeColor = *patch.EyeColor
	}
	if patch.EyebrowStyle != nil {
		result.EyebrowStyle = EyebrowStyle(*patch.EyebrowStyle)
	}
	if patch.NoseStyle != nil {
		result.NoseStyle = NoseStyle(*patch.NoseStyle)
	}
	if patch.MouthStyle != nil {
		result.MouthStyle = MouthStyle(*patch.MouthStyle)
	}
	if patch.HasBlush != nil {
		result.HasBlush = *patch.HasBlush
	}

	return result.Normalize()
}
