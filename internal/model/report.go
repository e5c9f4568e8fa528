package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportSchemaVersion is the current tagged-union version written into
// report content blobs. Blobs without the tag are treated as legacy text.
const ReportSchemaVersion = 1

// ReportCommon contains fields common to both report families. The id is
// generated client-side before insertion and doubles as the primary key, so
// no reconciliation happens after the remote insert.
type ReportCommon struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Company string `gorm:"type:text" json:"company"`
	Role    string `gorm:"type:text" json:"role"`

	// Content is opaque to the store and the tracker: structured JSON in the
	// current schema, legacy free text in older rows. Consumers decode it
	// with DecodeReportContent and must tolerate both shapes.
	Content string `gorm:"type:text" json:"content"`

	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
}

// ResearchReport is a stored company-research result
type ResearchReport struct {
	ReportCommon
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// PrepReport is a stored interview-prep kit
type PrepReport struct {
	ReportCommon
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

// ReportContent is the tagged-union envelope of current-schema content.
type ReportContent struct {
	SchemaVersion int             `json:"schema_version"`
	Data          json.RawMessage `json:"data"`
}

// DecodedReport is the result of defensively decoding a content blob.
// Exactly one of Data and LegacyText is meaningful, selected by Legacy.
type DecodedReport struct {
	Legacy     bool            `json:"legacy"`
	Data       json.RawMessage `json:"data,omitempty"`
	LegacyText string          `json:"legacy_text,omitempty"`
}

// EncodeReportContent wraps structured data in the current-schema envelope.
func EncodeReportContent(data any) (string, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	envelope, err := json.Marshal(ReportContent{
		SchemaVersion: ReportSchemaVersion,
		Data:          raw,
	})
	if err != nil {
		return "", err
	}
	return string(envelope), nil
}

// DecodeReportContent parses a stored blob. Anything that is not a valid
// current-schema envelope is surfaced as legacy plain text, never dropped.
func DecodeReportContent(raw string) DecodedReport {
	var envelope ReportContent
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil || envelope.SchemaVersion == 0 {
		return DecodedReport{Legacy: true, LegacyText: raw}
	}
	return DecodedReport{Data: envelope.Data}
}
