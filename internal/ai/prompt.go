package ai

import (
	"fmt"
	"strings"

	"JobJumper-backend/internal/model"
)

// profileContext flattens the profile into a prompt-friendly block. The
// experience/project/education lists are already JSON and are passed through
// verbatim so the model sees their structure.
func profileContext(profile model.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", orNotProvided(profile.FullName))
	fmt.Fprintf(&b, "Location: %s\n", orNotProvided(profile.Location))
	fmt.Fprintf(&b, "Summary: %s\n", orNotProvided(profile.Summary))
	fmt.Fprintf(&b, "Skills: %s\n", orNotProvided(strings.Join(profile.Skills, ", ")))
	if len(profile.Experience) > 0 {
		fmt.Fprintf(&b, "Experience (JSON): %s\n", string(profile.Experience))
	}
	if len(profile.Projects) > 0 {
		fmt.Fprintf(&b, "Projects (JSON): %s\n", string(profile.Projects))
	}
	if len(profile.Education) > 0 {
		fmt.Fprintf(&b, "Education (JSON): %s\n", string(profile.Education))
	}
	return b.String()
}

func jobContext(job model.Job) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", orNotProvided(job.Company))
	fmt.Fprintf(&b, "Role: %s\n", orNotProvided(job.Role))
	fmt.Fprintf(&b, "Status: %s\n", orNotProvided(job.Status))
	fmt.Fprintf(&b, "Location: %s\n", orNotProvided(job.Location))
	fmt.Fprintf(&b, "Salary: %s\n", orNotProvided(job.Salary))
	fmt.Fprintf(&b, "Description: %s\n", orNotProvided(job.Description))
	return b.String()
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Not provided"
	}
	return s
}
