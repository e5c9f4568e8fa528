package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Profile is gorm model for the single résumé/profile row each user owns.
// The experience/project/education lists and the chat transcript are stored
// as JSON columns and replaced wholesale on every save, never diffed.
type Profile struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User   User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`

	FullName string         `gorm:"type:text" json:"full_name"`
	Email    string         `gorm:"type:text" json:"email"`
	Tel      string         `gorm:"type:text" json:"tel"`
	Location string         `gorm:"type:text" json:"location"`
	Links    string         `gorm:"type:text" json:"links"`
	Summary  string         `gorm:"type:text" json:"summary"`
	Skills   pq.StringArray `gorm:"type:text[]" json:"skills"`

	Experience datatypes.JSON `json:"experience"`
	Projects   datatypes.JSON `json:"projects"`
	Education  datatypes.JSON `json:"education"`

	// ChatHistory carries the full transcript; persisted after every append.
	ChatHistory datatypes.JSON `json:"chat_history"`

	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}

// ExperienceEntry is one item of the ordered experience list
type ExperienceEntry struct {
	ID          string `json:"id"`
	Company     string `json:"company"`
	Role        string `json:"role"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description"`
}

// ProjectEntry is one item of the ordered project list
type ProjectEntry struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Link        string   `json:"link"`
	Tech        []string `json:"tech"`
}

// EducationEntry is one item of the ordered education list
type EducationEntry struct {
	ID     string `json:"id"`
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
	Start  string `json:"start"`
	End    string `json:"end"`
}

// DefaultProfile builds the all-empty profile created on first login.
func DefaultProfile(userID uuid.UUID) Profile {
	empty := datatypes.JSON([]byte(`[]`))
	return Profile{
		UserID:      userID,
		Skills:      pq.StringArray{},
		Experience:  empty,
		Projects:    empty,
		Education:   empty,
		ChatHistory: empty,
	}
}

// Transcript decodes the chat-history column. A missing or malformed column
// yields an empty transcript rather than an error.
func (p *Profile) Transcript() []ChatMessage {
	if len(p.ChatHistory) == 0 {
		return nil
	}
	var msgs []ChatMessage
	if err := json.Unmarshal(p.ChatHistory, &msgs); err != nil {
		return nil
	}
	return msgs
}

// SetTranscript encodes msgs into the chat-history column.
func (p *Profile) SetTranscript(msgs []ChatMessage) error {
	if msgs == nil {
		msgs = []ChatMessage{}
	}
	b, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	p.ChatHistory = datatypes.JSON(b)
	return nil
}
