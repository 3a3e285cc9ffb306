// Package tags extracts @-mentions from free text and resolves them
// against the team directory.
package tags

import (
	"regexp"
	"strings"

	"github.com/nyrix-co/projecthub/internal/team"
)

// mentionPattern matches "@" followed by word characters. Handles with
// non-word characters are not matched, and an email address embedded in
// prose ("user@example.com") yields a "@example" token; both are accepted
// limitations of the matching rule, kept as-is.
var mentionPattern = regexp.MustCompile(`@(\w+)`)

type Parser struct {
	directory *team.Directory
}

func NewParser(directory *team.Directory) *Parser {
	return &Parser{directory: directory}
}

// resolve maps a mention token (without the "@") to a directory member,
// trying the member id first, then the display name, both case-insensitive.
func (p *Parser) resolve(token string) (team.Member, bool) {
	if member, ok := p.directory.FindByID(token); ok {
		return member, true
	}
	return p.directory.FindByName(token)
}

// ParseMentions returns the emails of the members mentioned in content, in
// first-occurrence order. Duplicates are kept and unresolved tokens are
// silently dropped.
func (p *Parser) ParseMentions(content string) []string {
	matches := mentionPattern.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return nil
	}

	emails := make([]string, 0, len(matches))
	for _, match := range matches {
		if member, ok := p.resolve(match[1]); ok {
			emails = append(emails, member.Email)
		}
	}
	return emails
}

// Highlight replaces every resolved mention with an inline markup fragment
// and leaves unresolved tokens verbatim. The "@" inside the fragment is
// emitted as an HTML entity, so applying Highlight to its own output does
// not wrap a mention twice.
func (p *Parser) Highlight(content string) string {
	return mentionPattern.ReplaceAllStringFunc(content, func(match string) string {
		member, ok := p.resolve(strings.TrimPrefix(match, "@"))
		if !ok {
			return match
		}
		return `<span class="mention">&#64;` + member.Name + `</span>`
	})
}

// HasMentions reports whether content mentions at least one known member.
func (p *Parser) HasMentions(content string) bool {
	return len(p.ParseMentions(content)) > 0
}

// Suggest returns member ids matching an "@"-prefixed partial input, for
// mention autocompletion. Input without a leading "@" yields nothing.
func (p *Parser) Suggest(input string) []string {
	if !strings.HasPrefix(input, "@") {
		return nil
	}

	query := strings.ToLower(strings.TrimPrefix(input, "@"))
	var ids []string
	for _, member := range p.directory.Members() {
		if strings.Contains(strings.ToLower(member.ID), query) ||
			strings.Contains(strings.ToLower(member.Name), query) {
			ids = append(ids, member.ID)
		}
	}
	return ids
}

// DisplayTags maps stored tag emails back to "@Name" handles. Emails that
// no longer resolve are returned unchanged.
func (p *Parser) DisplayTags(tagEmails []string) []string {
	display := make([]string, len(tagEmails))
	for i, email := range tagEmails {
		if member, ok := p.directory.FindByEmail(email); ok {
			display[i] = "@" + member.Name
		} else {
			display[i] = email
		}
	}
	return display
}
