package ai

import (
	"context"
	"fmt"

	"JobJumper-backend/internal/model"
)

// ParsedResume is the structured result of extracting a raw resume text.
// Field names line up with the profile record so the handler can write it
// straight through the profile replace path.
type ParsedResume struct {
	FullName   string                  `json:"full_name"`
	Email      string                  `json:"email"`
	Tel        string                  `json:"tel"`
	Location   string                  `json:"location"`
	Links      string                  `json:"links"`
	Summary    string                  `json:"summary"`
	Skills     []string                `json:"skills"`
	Experience []model.ExperienceEntry `json:"experience"`
	Projects   []model.ProjectEntry    `json:"projects"`
	Education  []model.EducationEntry  `json:"education"`
}

// ResumeEnhancement carries the rewritten sections of an enhance or tailor
// pass plus the reasoning behind the edits.
type ResumeEnhancement struct {
	Summary     string                  `json:"summary"`
	Skills      []string                `json:"skills"`
	Experience  []model.ExperienceEntry `json:"experience"`
	Suggestions []string                `json:"suggestions"`
}

// ResumeScore grades a resume against a job description.
type ResumeScore struct {
	Score         int      `json:"score"` // 0-100
	Strengths     []string `json:"strengths"`
	Gaps          []string `json:"gaps"`
	Improvements  []string `json:"improvements"`
	MissingSkills []string `json:"missing_skills"`
}

// ParseResume extracts structured profile data from raw resume text.
func (c *Client) ParseResume(ctx context.Context, resumeText string) (ParsedResume, error) {
	prompt := fmt.Sprintf(`Extract structured data from the resume below.

Resume text:
%s

Respond with a JSON object in exactly this shape (empty string or empty
array for anything the resume does not contain, ids as short unique slugs):
{
  "full_name": "", "email": "", "tel": "", "location": "", "links": "",
  "summary": "", "skills": [],
  "experience": [{"id": "", "company": "", "role": "", "start": "", "end": "", "description": ""}],
  "projects": [{"id": "", "name": "", "description": "", "link": "", "tech": []}],
  "education": [{"id": "", "school": "", "degree": "", "field": "", "start": "", "end": ""}]
}`, resumeText)

	var parsed ParsedResume
	err := c.completeJSON(ctx, "You are a resume parsing engine.", prompt, &parsed)
	return parsed, err
}

// EnhanceResume rewrites the profile's summary, skills and experience
// descriptions for impact without inventing facts.
func (c *Client) EnhanceResume(ctx context.Context, profile model.Profile) (ResumeEnhancement, error) {
	prompt := fmt.Sprintf(`Improve this resume content. Strengthen the summary,
rewrite experience descriptions with concrete action verbs, and tighten the
skills list. Never invent employers, dates or accomplishments.

Current profile:
%s
Respond with a JSON object:
{
  "summary": "", "skills": [],
  "experience": [{"id": "", "company": "", "role": "", "start": "", "end": "", "description": ""}],
  "suggestions": ["one-line notes on what was changed and why"]
}
Keep every experience entry's id, company, role and dates unchanged.`, profileContext(profile))

	var enhanced ResumeEnhancement
	err := c.completeJSON(ctx, "You are a professional resume writer.", prompt, &enhanced)
	return enhanced, err
}

// TailorResume rewrites the profile content to target one specific job.
func (c *Client) TailorResume(ctx context.Context, profile model.Profile, job model.Job) (ResumeEnhancement, error) {
	prompt := fmt.Sprintf(`Tailor this resume content toward the position below.
Reorder and reword to emphasize the most relevant experience and skills.
Never invent employers, dates or accomplishments.

Current profile:
%s
Target position:
%s
Respond with a JSON object:
{
  "summary": "", "skills": [],
  "experience": [{"id": "", "company": "", "role": "", "start": "", "end": "", "description": ""}],
  "suggestions": ["one-line notes on what was tailored and why"]
}
Keep every experience entry's id, company, role and dates unchanged.`, profileContext(profile), jobContext(job))

	var tailored ResumeEnhancement
	err := c.completeJSON(ctx, "You are a professional resume writer who tailors resumes to specific roles.", prompt, &tailored)
	return tailored, err
}

// ScoreResume grades the profile against a job description.
func (c *Client) ScoreResume(ctx context.Context, profile model.Profile, jobDescription string) (ResumeScore, error) {
	prompt := fmt.Sprintf(`Score this resume against the job description below.

Resume:
%s
Job description:
%s
Respond with a JSON object:
{
  "score": 0,
  "strengths": [], "gaps": [], "improvements": [], "missing_skills": []
}
where score is an integer from 0 to 100.`, profileContext(profile), jobDescription)

	var score ResumeScore
	err := c.completeJSON(ctx, "You are an applicant tracking system and recruiter rolled into one. Be honest, not flattering.", prompt, &score)
	return score, err
}
