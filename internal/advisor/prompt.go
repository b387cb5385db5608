package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/finai-labs/finai-go/internal/calc"
	"github.com/finai-labs/finai-go/internal/intent"
	"github.com/finai-labs/finai-go/internal/session"
)

// BuildPrompt assembles the outbound prompt in fixed block order: persona,
// optional user context, optional calculation result, full conversation
// history. History is resent in full every turn; the outbound prompt is
// never truncated here.
func BuildPrompt(p Persona, sess *session.Session, result *calc.Result, history []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, an AI financial advisor with the following characteristics:\n", p.Name)
	fmt.Fprintf(&b, "- Personality: %s\n", strings.Join(p.Traits, ", "))
	fmt.Fprintf(&b, "- Expertise: %s\n", strings.Join(p.Expertise, ", "))
	fmt.Fprintf(&b, "- Communication: %s\n", p.CommunicationStyle)

	b.WriteString(`
IMPORTANT GUIDELINES:
1. Always format responses using Markdown for clarity
2. Use headings, bullet points, and bold text for better readability
3. Provide educational explanations, not just answers
4. Always remind users to consult certified professionals for major decisions
5. Be conservative and risk-aware in your advice
6. Ask clarifying questions when needed
7. Use available tools for calculations when relevant

AVAILABLE TOOLS:
`)
	for _, tool := range intent.Tools() {
		fmt.Fprintf(&b, "- %s: %s\n", tool.Name, tool.Description)
	}
	b.WriteString("\nWhen users ask for calculations, use the appropriate tool and explain the results.\n")

	if sess != nil {
		b.WriteString("\nUSER CONTEXT:\n")
		fmt.Fprintf(&b, "- Session ID: %s\n", sess.ID)
		fmt.Fprintf(&b, "- Previous interactions: %d\n", len(sess.History))
		fmt.Fprintf(&b, "- User preferences: %s\n", renderMap(sess.Preferences))
		fmt.Fprintf(&b, "- Financial profile: %s\n", renderMap(sess.FinancialProfile))
	}

	if result != nil {
		b.WriteString("\nCALCULATION RESULT:\n")
		for _, f := range result.Fields {
			fmt.Fprintf(&b, "%s: %g\n", f.Name, f.Value)
		}
		if result.Explanation != "" {
			fmt.Fprintf(&b, "%s\n", result.Explanation)
		}
		b.WriteString("\nPlease explain these results to the user in a clear, educational manner.\n")
	}

	b.WriteString("\nCONVERSATION HISTORY:\n")
	b.WriteString(strings.Join(history, "\n"))

	return b.String()
}

// renderMap formats a preference/profile map with sorted keys so prompts are
// deterministic.
func renderMap(m map[string]any) string {
	if len(m) == 0 {
		return "{}"
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, m[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
