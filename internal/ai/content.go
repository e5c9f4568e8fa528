package ai

import (
	"context"
	"fmt"

	"JobJumper-backend/internal/model"
)

// CoverLetter drafts a plain-text cover letter for the job from the
// candidate's profile.
func (c *Client) CoverLetter(ctx context.Context, profile model.Profile, job model.Job) (string, error) {
	prompt := fmt.Sprintf(`Write a cover letter for the following application.

Candidate:
%s
Position:
%s
Requirements:
- Three to four short paragraphs, under 350 words.
- Reference the candidate's most relevant experience and skills.
- Professional but not stiff; no placeholder brackets.
- Plain text only, no markdown.`, profileContext(profile), jobContext(job))

	return c.completeText(ctx, "You are an expert career coach who writes compelling, specific cover letters.", prompt)
}

// InterviewGuide produces a markdown preparation guide for the job.
func (c *Client) InterviewGuide(ctx context.Context, profile model.Profile, job model.Job) (string, error) {
	prompt := fmt.Sprintf(`Create an interview preparation guide for this candidate and position.

Candidate:
%s
Position:
%s
Cover: likely interview format, 8-10 probable questions with suggested
answer angles tailored to the candidate, questions the candidate should
ask, and a short day-of checklist. Respond in markdown.`, profileContext(profile), jobContext(job))

	return c.completeText(ctx, "You are an experienced technical interviewer and hiring manager.", prompt)
}

// NegotiationStrategy produces a markdown salary negotiation strategy for a
// job that has reached the offer stage.
func (c *Client) NegotiationStrategy(ctx context.Context, profile model.Profile, job model.Job) (string, error) {
	prompt := fmt.Sprintf(`Build a salary negotiation strategy for this offer.

Candidate:
%s
Offer:
%s
Cover: a realistic target range given the role and location, the
candidate's strongest leverage points, a suggested counter-offer script,
and which non-salary levers (equity, PTO, start date, signing bonus) are
worth pushing on. Respond in markdown.`, profileContext(profile), jobContext(job))

	return c.completeText(ctx, "You are a compensation negotiation expert who gives direct, actionable advice.", prompt)
}

// Document generates an arbitrary application document (thank-you note,
// follow-up email, resignation letter and the like) in markdown.
func (c *Client) Document(ctx context.Context, profile model.Profile, job model.Job, kind, instructions string) (string, error) {
	prompt := fmt.Sprintf(`Write a "%s" document for this candidate and position.

Candidate:
%s
Position:
%s
Additional instructions: %s

Respond in markdown, ready to send with no placeholder brackets.`, kind, profileContext(profile), jobContext(job), orNotProvided(instructions))

	return c.completeText(ctx, "You are a professional writer who drafts polished job-search correspondence.", prompt)
}
