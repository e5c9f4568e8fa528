package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestJobDetailsCodec_RoundTrip(t *testing.T) {
	interviewAt := time.Date(2026, 9, 14, 10, 30, 0, 0, time.UTC)
	details := JobDetails{
		PrepNotes:     "Review the take-home feedback before the call",
		PrepQuestions: []string{"Walk me through a recent production incident"},
		InterviewDate: &interviewAt,
		Checklist: []ChecklistItem{
			{ID: "c1", Text: "Research the interviewers", Done: true},
		},
		Contacts: []Contact{
			{ID: "p1", Name: "Dana Wei", Role: "Recruiter", Email: "dana@technova.example"},
		},
	}

	raw, err := EncodeJobDetails(details)
	require.NoError(t, err)

	decoded, err := DecodeJobDetails(raw)
	require.NoError(t, err)
	assert.Equal(t, details.PrepNotes, decoded.PrepNotes)
	assert.Equal(t, details.PrepQuestions, decoded.PrepQuestions)
	require.NotNil(t, decoded.InterviewDate)
	assert.True(t, interviewAt.Equal(*decoded.InterviewDate))
	assert.Equal(t, details.Checklist, decoded.Checklist)
	assert.Equal(t, details.Contacts, decoded.Contacts)
}

func TestDecodeJobDetails_EmptyBlob(t *testing.T) {
	decoded, err := DecodeJobDetails(nil)
	require.NoError(t, err)
	assert.Equal(t, JobDetails{}, decoded)
}

// Fields the current schema does not know about survive encode/decode as
// zero values without failing; the blob itself is never validated on write.
func TestDecodeJobDetails_UnknownFieldsIgnored(t *testing.T) {
	raw := datatypes.JSON([]byte(`{"prep_notes":"ok","added_by_newer_client":42}`))
	decoded, err := DecodeJobDetails(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", decoded.PrepNotes)
}

func TestDecodeJobDetails_Malformed(t *testing.T) {
	raw := datatypes.JSON([]byte(`{not json`))
	_, err := DecodeJobDetails(raw)
	assert.Error(t, err)
}

func TestProfileTranscript_RoundTrip(t *testing.T) {
	p := DefaultProfile(uuid.New())
	msgs := []ChatMessage{
		{Role: ChatRoleUser, Text: "How should I follow up with TechNova?", Timestamp: time.Now().UTC().Truncate(time.Second)},
		{Role: ChatRoleModel, Text: "Send a short thank-you note within 24 hours.", Timestamp: time.Now().UTC().Truncate(time.Second)},
	}

	require.NoError(t, p.SetTranscript(msgs))
	got := p.Transcript()
	require.Len(t, got, 2)
	assert.Equal(t, msgs[0].Text, got[0].Text)
	assert.Equal(t, ChatRoleModel, got[1].Role)
}

func TestProfileTranscript_MalformedColumnYieldsEmpty(t *testing.T) {
	p := DefaultProfile(uuid.New())
	p.ChatHistory = datatypes.JSON([]byte(`{"oops"`))
	assert.Nil(t, p.Transcript())
}
