package ai

import (
	"context"
	"fmt"
	"strings"

	"JobJumper-backend/internal/model"
)

// maxTranscriptTail bounds how much history is replayed into the prompt.
const maxTranscriptTail = 20

// Chat answers a freeform assistant message with the user's jobs, profile
// and recent transcript assembled as context.
func (c *Client) Chat(ctx context.Context, profile model.Profile, jobs []model.Job, transcript []model.ChatMessage, userMsg string) (string, error) {
	system := fmt.Sprintf(`You are a job search assistant inside a personal application tracker.
You can see the user's profile and tracked applications below. Give concrete,
specific advice grounded in that data; keep answers under 250 words unless
asked for more.

User profile:
%s
Tracked applications:
%s`, profileContext(profile), jobsContext(jobs))

	messages := []Message{{Role: "system", Content: system}}
	tail := transcript
	if len(tail) > maxTranscriptTail {
		tail = tail[len(tail)-maxTranscriptTail:]
	}
	for _, msg := range tail {
		role := "user"
		if msg.Role == model.ChatRoleModel {
			role = "assistant"
		}
		messages = append(messages, Message{Role: role, Content: msg.Text})
	}
	messages = append(messages, Message{Role: "user", Content: userMsg})

	return c.complete(ctx, messages)
}

func jobsContext(jobs []model.Job) string {
	if len(jobs) == 0 {
		return "No applications tracked yet.\n"
	}
	var b strings.Builder
	for _, j := range jobs {
		fmt.Fprintf(&b, "- %s at %s (status: %s", j.Role, j.Company, j.Status)
		if j.Location != "" {
			fmt.Fprintf(&b, ", %s", j.Location)
		}
		b.WriteString(")\n")
	}
	return b.String()
}
