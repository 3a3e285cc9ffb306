package tags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nyrix-co/projecthub/internal/team"
)

func newTestParser() *Parser {
	return NewParser(team.DefaultDirectory())
}

func TestParseMentions(t *testing.T) {
	parser := newTestParser()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "two mentions in order",
			content: "@huzaifa please review, @sarim too",
			want:    []string{"huzaifa@nyrix.co", "sarim@nyrix.co"},
		},
		{
			name:    "resolves by name case-insensitively",
			content: "ping @Hashir about this",
			want:    []string{"muhammadhashirsiddiqui2@gmail.com"},
		},
		{
			name:    "unknown handles are dropped",
			content: "@nobody @huzaifa @stranger",
			want:    []string{"huzaifa@nyrix.co"},
		},
		{
			name:    "duplicates are kept",
			content: "@sarim and again @sarim",
			want:    []string{"sarim@nyrix.co", "sarim@nyrix.co"},
		},
		{
			name:    "adjacent mentions tokenize independently",
			content: "@huzaifa@sarim",
			want:    []string{"huzaifa@nyrix.co", "sarim@nyrix.co"},
		},
		{
			name:    "embedded email matches its domain token only",
			content: "reach me at talha@example.com",
			want:    nil,
		},
		{
			name:    "no mentions",
			content: "nothing to see here",
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.ParseMentions(tt.content)
			if tt.want == nil {
				assert.Empty(t, got)
			} else {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseMentionsOnlyDirectoryEmails(t *testing.T) {
	parser := newTestParser()
	dir := team.DefaultDirectory()

	inputs := []string{
		"@huzaifa @bogus @sarim",
		"mixed text @Talha trailing",
		"user@example.com and @hashir",
	}
	for _, content := range inputs {
		for _, email := range parser.ParseMentions(content) {
			_, ok := dir.FindByEmail(email)
			assert.True(t, ok, "parsed email %q not in directory", email)
		}
	}
}

func TestHighlight(t *testing.T) {
	parser := newTestParser()

	t.Run("identity without at sign", func(t *testing.T) {
		content := "plain text, no mentions at all"
		assert.Equal(t, content, parser.Highlight(content))
	})

	t.Run("wraps resolved mentions", func(t *testing.T) {
		got := parser.Highlight("@huzaifa please review")
		assert.Equal(t, `<span class="mention">&#64;Huzaifa</span> please review`, got)
	})

	t.Run("leaves unresolved tokens verbatim", func(t *testing.T) {
		got := parser.Highlight("@stranger please review")
		assert.Equal(t, "@stranger please review", got)
	})

	t.Run("idempotent on its own output", func(t *testing.T) {
		once := parser.Highlight("@huzaifa and @sarim, not @nobody")
		twice := parser.Highlight(once)
		assert.Equal(t, once, twice)
	})
}

func TestSuggest(t *testing.T) {
	parser := newTestParser()

	assert.Empty(t, parser.Suggest("huzaifa"), "input without @ yields nothing")
	assert.Equal(t, []string{"huzaifa"}, parser.Suggest("@huz"))
	assert.ElementsMatch(t, []string{"huzaifa", "sarim", "talha", "hashir"}, parser.Suggest("@"))
}

func TestDisplayTags(t *testing.T) {
	parser := newTestParser()

	got := parser.DisplayTags([]string{"sarim@nyrix.co", "gone@nyrix.co"})
	assert.Equal(t, []string{"@Sarim", "gone@nyrix.co"}, got)
}
