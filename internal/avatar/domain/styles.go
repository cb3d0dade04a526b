// Package domain defines the avatar configuration record and its closed
// style taxonomy. Every style field has a default, and parsing an unknown
// or missing value resolves to that default rather than failing, so the
// generation pipeline can never be handed a value it has no branch for.
package domain

// HeadShape selects the head base solid.
type HeadShape string

const (
	HeadRound  HeadShape = "round"
	HeadOval   HeadShape = "oval"
	HeadSquare HeadShape = "square"
)

// HairStyle selects the hair composition, or none.
type HairStyle string

const (
	HairNone     HairStyle = "none"
	HairShort    HairStyle = "short"
	HairSpiky    HairStyle = "spiky"
	HairBob      HairStyle = "bob"
	HairPonytail HairStyle = "ponytail"
)

// EyeStyle selects the eye composition.
type EyeStyle string

const (
	EyesDots    EyeStyle = "dots"
	EyesWide    EyeStyle = "wide"
	EyesSleepy  EyeStyle = "sleepy"
	EyesSparkle EyeStyle = "sparkle"
)

// EyebrowStyle selects the eyebrow composition, or none.
type EyebrowStyle string

const (
	BrowsNone    EyebrowStyle = "none"
	BrowsNormal  EyebrowStyle = "normal"
	BrowsAngry   EyebrowStyle = "angry"
	BrowsWorried EyebrowStyle = "worried"
	BrowsThick   EyebrowStyle = "thick"
)

// NoseStyle selects the nose composition, or none.
type NoseStyle string

const (
	NoseNone    NoseStyle = "none"
	NoseSmall   NoseStyle = "small"
	NoseRound   NoseStyle = "round"
	NosePointed NoseStyle = "pointed"
)

// MouthStyle selects the mouth composition.
type MouthStyle string

const (
	MouthSmile     MouthStyle = "smile"
	MouthNeutral   MouthStyle = "neutral"
	MouthOpen      MouthStyle = "open"
	MouthCat       MouthStyle = "cat"
	MouthSurprised MouthStyle = "surprised"
)

// Taxonomy defaults. Any unrecognized value falls back to these.
const (
	DefaultHeadShape    = HeadRound
	DefaultHeadColor    = "#ffccaa"
	DefaultHairStyle    = HairShort
	DefaultHairColor    = "#4a3728"
	DefaultEyeStyle     = EyesDots
	DefaultEyeColor     = "#333333"
	DefaultEyebrowStyle = BrowsNormal
	DefaultNoseStyle    = NoseSmall
	DefaultMouthStyle   = MouthSmile
	DefaultHasBlush     = true
)

// ParseHeadShape resolves a stored value to a head shape, defaulting on
// anything outside the taxonomy.
func ParseHeadShape(value string) HeadShape {
	switch HeadShape(value) {
	case HeadRound, HeadOval, HeadSquare:
		return HeadShape(value)
	default:
		return DefaultHeadShape
	}
}

// ParseHairStyle resolves a stored value to a hair style, defaulting on
// anything outside the taxonomy.
func ParseHairStyle(value string) HairStyle {
	switch HairStyle(value) {
	case HairNone, HairShort, HairSpiky, HairBob, HairPonytail:
		return HairStyle(value)
	default:
		return DefaultHairStyle
	}
}

// ParseEyeStyle resolves a stored value to an eye style, defaulting on
// anything outside the taxonomy.
func ParseEyeStyle(value string) EyeStyle {
	switch EyeStyle(value) {
	case EyesDots, EyesWide, EyesSleepy, EyesSparkle:
		return EyeStyle(value)
	default:
		return DefaultEyeStyle
	}
}

// ParseEyebrowStyle resolves a stored value to an eyebrow style, defaulting
// on anything outside the taxonomy.
func ParseEyebrowStyle(value string) EyebrowStyle {
	switch EyebrowStyle(value) {
	case BrowsNone, BrowsNormal, BrowsAngry, BrowsWorried, BrowsThick:
		return EyebrowStyle(value)
	default:
		return DefaultEyebrowStyle
	}
}

// ParseNoseStyle resolves a stored value to a nose style, defaulting on
// anything outside the taxonomy.
func ParseNoseStyle(value string) NoseStyle {
	switch NoseStyle(value) {
	case NoseNone, NoseSmall, NoseRound, NosePointed:
		return NoseStyle(value)
	default:
		return DefaultNoseStyle
	}
}

// ParseMouthStyle resolves a stored value to a mouth style, defaulting on
// anything outside the taxonomy.
func ParseMouthStyle(value string) MouthStyle {
	switch MouthStyle(value) {
	case MouthSmile, MouthNeutral, MouthOpen, MouthCat, MouthSurprised:
		return MouthStyle(value)
	default:
		return DefaultMouthStyle
	}
}
