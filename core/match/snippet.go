package match

import (
	"fmt"
	"strings"

	"github.com/folioscope/folio/schema"
)

// noOverlapSnippet is shown when the project shows none of the posting's skills.
const noOverlapSnippet = "No strong overlap between this project's skills and the skills the posting asks for. " +
	"Consider adding projects that exercise them."

// ResumeSnippet renders the matched and missing skills as a resume block.
func ResumeSnippet(m schema.JobMatch) string {
	if len(m.Matched) == 0 {
		return noOverlapSnippet
	}

	var b strings.Builder
	b.WriteString("Relevant skills for this role:\n")
	for _, s := range m.Matched {
		category := s.Category
		if category == "" {
			category = "technical"
		}
		fmt.Fprintf(&b, "- %s (%s, confidence %.2f)\n", s.Skill, category, s.Confidence)
	}
	if len(m.Missing) > 0 {
		b.WriteString("\nSkills the posting mentions that this project does not clearly show:\n")
		for _, name := range m.Missing {
			fmt.Fprintf(&b, "- %s\n", name)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
