// Package model contain gorm model for recording data to database
package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Job status constants. Transitions between statuses are deliberately
// unconstrained: any value may follow any other.
var (
	// JobStatusApplied indicates the application has been submitted
	JobStatusApplied = "Applied"
	// JobStatusInterview indicates the application reached the interview stage
	JobStatusInterview = "Interview"
	// JobStatusOffer indicates an offer has been extended
	JobStatusOffer = "Offer"
	// JobStatusRejected indicates the application has been rejected
	JobStatusRejected = "Rejected"
	// JobStatusAccepted indicates the user accepted the offer
	JobStatusAccepted = "Accepted"
)

// Origin tags distinguish records the user logged as applications from
// records logged directly as offers.
var (
	// JobOriginApplication marks a record created from a submitted application
	JobOriginApplication = "application"
	// JobOriginOffer marks a record created directly from a received offer
	JobOriginOffer = "offer"
)

// EditableJobInfo is the part of a job record that a partial patch can touch.
// Details is an opaque structured blob: the tracker never validates it, and a
// patch that carries it replaces the blob wholesale.
type EditableJobInfo struct {
	Company     string         `gorm:"type:text;index" json:"company"`
	Role        string         `gorm:"type:text" json:"role"`
	Status      string         `gorm:"type:text" json:"status"`
	Origin      string         `gorm:"type:text" json:"origin"`
	Salary      string         `gorm:"type:text" json:"salary"`
	Location    string         `gorm:"type:text" json:"location"`
	Description string         `gorm:"type:text" json:"description"`
	Details     datatypes.JSON `json:"details"`
}

// Job is gorm model for one tracked job application or offer. The scalar
// columns are indexed for listing; everything optional (attachments, prep
// notes, interview date/checklist/logs, contacts, generated guide text)
// lives inside the Details blob.
type Job struct {
	ID     int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	EditableJobInfo
	// Version guards against lost updates: the store only applies a full-record
	// write when the caller's version matches the stored one.
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP;->" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// JobDetails is the conventional shape of the Details blob. Consumers that
// need typed access unmarshal into it; absent fields stay zero.
type JobDetails struct {
	Attachments         []Attachment    `json:"attachments,omitempty"`
	PrepNotes           string          `json:"prep_notes,omitempty"`
	PrepQuestions       []string        `json:"prep_questions,omitempty"`
	InterviewDate       *time.Time      `json:"interview_date,omitempty"`
	Checklist           []ChecklistItem `json:"checklist,omitempty"`
	InterviewLogs       []InterviewLog  `json:"interview_logs,omitempty"`
	Contacts            []Contact       `json:"contacts,omitempty"`
	InterviewGuide      string          `json:"interview_guide,omitempty"`
	NegotiationStrategy string          `json:"negotiation_strategy,omitempty"`
}

// EncodeJobDetails marshals a typed details value into the opaque blob.
func EncodeJobDetails(details JobDetails) (datatypes.JSON, error) {
	b, err := json.Marshal(details)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// DecodeJobDetails unmarshals the blob into its conventional shape. An empty
// blob decodes to the zero value.
func DecodeJobDetails(raw datatypes.JSON) (JobDetails, error) {
	var details JobDetails
	if len(raw) == 0 {
		return details, nil
	}
	if err := json.Unmarshal(raw, &details); err != nil {
		return JobDetails{}, err
	}
	return details, nil
}

// Attachment references a document attached to a job record
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}

// ChecklistItem is one entry of an interview preparation checklist
type ChecklistItem struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// InterviewLog records notes from one interview round
type InterviewLog struct {
	ID    string    `json:"id"`
	Date  time.Time `json:"date"`
	Notes string    `json:"notes"`
}

// Contact is a recruiter or employee contact attached to a job record
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Email string `json:"email"`
	Tel   string `json:"tel"`
}
