package application

import (
	"fmt"
	"strings"

	"launchpad/contexts/community-experience/chat-relay-service/ports"
)

// buildSystemPrompt assembles the onboarding assistant persona from the
// project's live progression facts.
func buildSystemPrompt(facts ports.ProjectFacts) string {
	var b strings.Builder
	b.WriteString("You are the onboarding guide for a community-building project on Launchpad.\n")
	fmt.Fprintf(&b, "Project: %s (level %d).\n", orUnknown(facts.ProjectName), facts.Level)
	fmt.Fprintf(&b, "Community: %d members, %d research papers shared so far.\n",
		facts.MemberCount, facts.PapersShared)
	if facts.NextRequirement != "" {
		fmt.Fprintf(&b, "To reach the next level the project must: %s.\n", facts.NextRequirement)
	}
	b.WriteString("Answer briefly and concretely. When asked how to progress, ")
	b.WriteString("explain the next requirement and suggest community actions that satisfy it. ")
	b.WriteString("Never invent metrics you were not given.")
	return b.String()
}

func orUnknown(name string) string {
	if strings.TrimSpace(name) == "" {
		return "unnamed project"
	}
	return name
}
