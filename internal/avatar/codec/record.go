// Package codec translates avatar configurations to and from the persisted
// record shape used at the record store boundary.
//
// Decoding treats the record as untrusted: fields may be missing, hold
// values outside the taxonomy, or sit alongside foreign fields from newer
// schema versions. Every field is default-filled independently, so old and
// future records always load.
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/faceforge/internal/avatar/domain"
)

// SchemaID tags every persisted avatar record.
const SchemaID = "space.faceforge.avatar"

// Record is the wire shape stored in the record store: the ten
// configuration fields verbatim plus a creation timestamp.
type Record struct {
	Type         string `json:"$type"`
	HeadShape    string `json:"headShape"`
	HeadColor    string `json:"headColor"`
	HairStyle    string `json:"hairStyle"`
	HairColor    string `json:"hairColor"`
	EyeStyle     string `json:"eyeStyle"`
	EyeColor     string `json:"eyeColor"`
	EyebrowStyle string `json:"eyebrowStyle"`
	NoseStyle    string `json:"noseStyle"`
	MouthStyle   string `json:"mouthStyle"`
	HasBlush     *bool  `json:"hasBlush"`
	CreatedAt    string `json:"createdAt"`
}

// ToRecord encodes a configuration as a persisted record with a creation
// timestamp. Only the configuration fields are copied; transient state
// never leaks into the record.
func ToRecord(cfg domain.Configuration, now func() time.Time) Record {
	if now == nil {
		now = time.Now
	}
	hasBlush := cfg.HasBlush
	return Record{
		Type:         SchemaID,
		HeadShape:    string(cfg.HeadShape),
		HeadColor:    cfg.HeadColor,
		HairStyle:    string(cfg.HairStyle),
		HairColor:    cfg.HairColor,
		EyeStyle:     string(cfg.EyeStyle),
		EyeColor:     cfg.EyeColor,
		EyebrowStyle: string(cfg.EyebrowStyle),
		NoseStyle:    string(cfg.NoseStyle),
		MouthStyle:   string(cfg.MouthStyle),
		HasBlush:     &hasBlush,
		CreatedAt:    now().UTC().Format(time.RFC3339),
	}
}

// FromRecord decodes a record into a configuration, default-filling every
// missing or unrecognized field. It never fails: the worst possible record
// yields the default configuration.
func FromRecord(rec Record) domain.Configuration {
	cfg := domain.Configuration{
		HeadShape:    domain.ParseHeadShape(rec.HeadShape),
		HeadColor:    rec.HeadColor,
		HairStyle:    domain.ParseHairStyle(rec.HairStyle),
		HairColor:    rec.HairColor,
		EyeStyle:     domain.ParseEyeStyle(rec.EyeStyle),
		EyeColor:     rec.EyeColor,
		EyebrowStyle: domain.ParseEyebrowStyle(rec.EyebrowStyle),
		NoseStyle:    domain.ParseNoseStyle(rec.NoseStyle),
		MouthStyle:   domain.ParseMouthStyle(rec.MouthStyle),
		HasBlush:     domain.DefaultHasBlush,
	}
	if rec.HasBlush != nil {
		cfg.HasBlush = *rec.HasBlush
	}
	return cfg.Normalize()
}

// EncodeRecord marshals a record for transport.
func EncodeRecord(rec Record) ([]byte, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode avatar record: %w", err)
	}
	return payload, nil
}

// DecodeRecord unmarshals transport bytes into a configuration. Foreign
// fields are ignored; only broken JSON framing is an error.
func DecodeRecord(payload []byte) (domain.Configuration, error) {
	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return domain.Configuration{}, fmt.Errorf("decode avatar record: %w", err)
	}
	return FromRecord(rec), nil
}
