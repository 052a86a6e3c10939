package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordDispatcher(t *testing.T) {
	d := NewKeywordDispatcher(DefaultRules(), DefaultResponse)
	rules := DefaultRules()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "internship", input: "Any internship advice?", want: rules[0].Response},
		{name: "uppercase is matched", input: "INTERNSHIP", want: rules[0].Response},
		{name: "internship wins over google", input: "internship at google", want: rules[0].Response},
		{name: "internship wins even when google comes first", input: "google internship", want: rules[0].Response},
		{name: "internship wins over resume", input: "I need internship and resume tips", want: rules[0].Response},
		{name: "google", input: "How do I crack Google?", want: rules[1].Response},
		{name: "skill substring", input: "which skills matter", want: rules[2].Response},
		{name: "career", input: "career switch", want: rules[3].Response},
		{name: "resume before job", input: "resume for a job", want: rules[4].Response},
		{name: "job", input: "find a job", want: rules[5].Response},
		{name: "projects", input: "side projects", want: rules[6].Response},
		{name: "singular project does not match", input: "one project", want: DefaultResponse},
		{name: "no keyword", input: "xyz", want: DefaultResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answer, matched := d.Match(tt.input)
			assert.Equal(t, tt.want, answer)
			assert.Equal(t, tt.want != DefaultResponse, matched)
		})
	}
}

func TestKeywordDispatcherMatchReportsDefault(t *testing.T) {
	d := NewKeywordDispatcher(DefaultRules(), DefaultResponse)

	answer, matched := d.Match("xyz")
	assert.False(t, matched)
	assert.Equal(t, DefaultResponse, answer)

	_, matched = d.Match("career")
	assert.True(t, matched)
}

func TestKeywordDispatcherOrderIsRuleOrder(t *testing.T) {
	d := NewKeywordDispatcher([]Rule{
		{Keyword: "Job", Response: "first"},
		{Keyword: "internship", Response: "second"},
	}, "none")

	answer, _ := d.Match("internship job")
	assert.Equal(t, "first", answer)
	answer, matched := d.Match("")
	assert.Equal(t, "none", answer)
	assert.False(t, matched)
}

func TestDefaultRulesOrder(t *testing.T) {
	var keywords []string
	for _, r := range DefaultRules() {
		keywords = append(keywords, r.Keyword)
	}
	assert.Equal(t, []string{"internship", "google", "skill", "career", "resume", "job", "projects"}, keywords)
}
