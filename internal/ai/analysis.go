package ai

import (
	"context"
	"fmt"

	"JobJumper-backend/internal/model"
)

// JobMatchAnalysis compares the candidate's profile against one job.
type JobMatchAnalysis struct {
	MatchScore    int      `json:"match_score"` // 0-100
	Verdict       string   `json:"verdict"`     // Strong match, Possible match, Weak match
	MatchedSkills []string `json:"matched_skills"`
	MissingSkills []string `json:"missing_skills"`
	Reasoning     string   `json:"reasoning"`
}

// PrepKit is the structured interview-prep bundle for one application.
type PrepKit struct {
	CompanySummary    string   `json:"company_summary"`
	LikelyQuestions   []string `json:"likely_questions"`
	TechnicalTopics   []string `json:"technical_topics"`
	QuestionsToAsk    []string `json:"questions_to_ask"`
	TalkingPoints     []string `json:"talking_points"`
	ThingsToAvoid     []string `json:"things_to_avoid"`
	PreparationSteps  []string `json:"preparation_steps"`
}

// CompanyResearch is the structured company-research report content.
type CompanyResearch struct {
	Overview      string   `json:"overview"`
	Products      []string `json:"products"`
	Culture       string   `json:"culture"`
	RecentNews    []string `json:"recent_news"`
	Competitors   []string `json:"competitors"`
	InterviewTips []string `json:"interview_tips"`
	Questions     []string `json:"questions"`
}

// JobMatch analyzes how well the profile fits the job.
func (c *Client) JobMatch(ctx context.Context, profile model.Profile, job model.Job) (JobMatchAnalysis, error) {
	prompt := fmt.Sprintf(`Analyze how well this candidate matches this position.

Candidate:
%s
Position:
%s
Respond with a JSON object:
{
  "match_score": 0,
  "verdict": "Strong match" or "Possible match" or "Weak match",
  "matched_skills": [], "missing_skills": [],
  "reasoning": "two or three sentences"
}
where match_score is an integer from 0 to 100.`, profileContext(profile), jobContext(job))

	var analysis JobMatchAnalysis
	err := c.completeJSON(ctx, "You are a technical recruiter assessing candidate fit. Be honest, not flattering.", prompt, &analysis)
	return analysis, err
}

// PrepKit builds a structured interview-prep kit for the job.
func (c *Client) PrepKit(ctx context.Context, profile model.Profile, job model.Job) (PrepKit, error) {
	prompt := fmt.Sprintf(`Build an interview preparation kit for this candidate and position.

Candidate:
%s
Position:
%s
Respond with a JSON object:
{
  "company_summary": "",
  "likely_questions": [], "technical_topics": [], "questions_to_ask": [],
  "talking_points": [], "things_to_avoid": [], "preparation_steps": []
}
Tailor the talking points to the candidate's actual experience.`, profileContext(profile), jobContext(job))

	var kit PrepKit
	err := c.completeJSON(ctx, "You are an experienced interview coach.", prompt, &kit)
	return kit, err
}

// ResearchCompany produces a structured research report on a company for a
// given target role.
func (c *Client) ResearchCompany(ctx context.Context, company, role string) (CompanyResearch, error) {
	prompt := fmt.Sprintf(`Research the company "%s" for a candidate targeting the role "%s".

Respond with a JSON object:
{
  "overview": "", "products": [], "culture": "",
  "recent_news": [], "competitors": [],
  "interview_tips": [], "questions": []
}
If you are unsure about specifics, say so in the overview rather than
inventing facts.`, company, role)

	var research CompanyResearch
	err := c.completeJSON(ctx, "You are a company research analyst helping a job seeker prepare.", prompt, &research)
	return research, err
}
