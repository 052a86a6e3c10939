package advisor

import "strings"

// DefaultResponse is returned when no keyword matches.
const DefaultResponse = "🤖 Ask me about internships, skills, career paths, Google prep, or resume tips!"

type (
	// Rule binds a lowercase keyword to a canned response.
	Rule struct {
		Keyword  string
		Response string
	}

	// KeywordDispatcher answers from an ordered rule list. The first rule whose
	// keyword is a substring of the lowercased input wins.
	KeywordDispatcher struct {
		rules    []Rule
		fallback string
	}
)

// DefaultRules is the career-advice rule set. Order is significant: "internship" is
// checked before "google", "resume" before "job", and so on.
func DefaultRules() []Rule {
	return []Rule{
		{Keyword: "internship", Response: "💼 Focus on building projects, updating your resume, and networking online."},
		{Keyword: "google", Response: "🚀 Strengthen DSA, system design, and build real-world projects."},
		{Keyword: "skill", Response: "🛠️ Prioritize skills like Python, C++, AI, IoT, and cloud computing."},
		{Keyword: "career", Response: "🎯 Explore options based on your interests, strengths, and market trends."},
		{Keyword: "resume", Response: "📄 Keep it concise, highlight achievements, projects, internships, and skills."},
		{Keyword: "job", Response: "💼 Look for openings on LinkedIn, Internshala, and apply with a strong resume."},
		{Keyword: "projects", Response: "🛠️ Build real-world projects to showcase your skills on GitHub."},
	}
}

func NewKeywordDispatcher(rules []Rule, fallback string) *KeywordDispatcher {
	normalized := make([]Rule, len(rules))
	for i, r := range rules {
		normalized[i] = Rule{Keyword: strings.ToLower(r.Keyword), Response: r.Response}
	}
	return &KeywordDispatcher{rules: normalized, fallback: fallback}
}

// Match returns the response of the first matching rule and whether any rule matched.
func (d *KeywordDispatcher) Match(input string) (string, bool) {
	lowered := strings.ToLower(input)
	for _, r := range d.rules {
		if strings.Contains(lowered, r.Keyword) {
			return r.Response, true
		}
	}
	return d.fallback, false
}

