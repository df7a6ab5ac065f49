package credits

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/desertthunder/creditx/internal/models"
)

// connectivePattern matches one boundary between two entities.
//
// Alternatives are tried leftmost-first, so a close marker swallows a list separator right after it.
// A close marker or list separator also absorbs a conjunction that follows it.
var connectivePattern = regexp.MustCompile(
	`\s*\)\s*(?:[,&、，・]\s*)?` + trailingConjunction +
		`|\s*\(CV[.:：]?\s*` +
		`|\s*[,&、，・]\s*` + trailingConjunction +
		`|\s+` + conjunction,
)

const (
	conjunction         = `(?i:featuring|feat|ft|vs)(?:\.\s*|\s+)`
	trailingConjunction = `(?:` + conjunction + `)?`
)

// Parse splits text into credits.
//
// Empty or whitespace-only text yields an empty sequence. The first credit's DisplayName is set to its Entity.
func Parse(text string) models.CreditSequence {
	seq := models.CreditSequence{}
	if strings.TrimSpace(text) == "" {
		return seq
	}

	cursor := 0
	for _, m := range connectivePattern.FindAllStringIndex(text, -1) {
		if c, ok := segment(text, cursor, m[0], m); ok {
			seq = append(seq, c)
		}
		cursor = m[1]
	}
	if c, ok := segment(text, cursor, len(text), nil); ok {
		seq = append(seq, c)
	}

	if len(seq) > 0 {
		seq[0].DisplayName = seq[0].Entity
	}
	return seq
}

// segment builds the credit for text[start:end] followed by the boundary match, if any.
//
// The connective is kept only when the match begins exactly where the trimmed name ends.
func segment(text string, start, end int, match []int) (models.Credit, bool) {
	raw := text[start:end]
	name := strings.TrimSpace(raw)
	if name == "" {
		return models.Credit{}, false
	}

	credit := models.Credit{Entity: name}
	if match == nil {
		return credit, true
	}

	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	if nameEnd := start + lead + len(name); match[0] == nameEnd {
		credit.Connective = text[match[0]:match[1]]
	}
	return credit, true
}

// Format renders a sequence back into a single string.
//
// Each credit contributes its display name (or entity) and then its connective.
func Format(seq models.CreditSequence) string {
	var b strings.Builder
	for _, c := range seq {
		if c.DisplayName != "" {
			b.WriteString(c.DisplayName)
		} else {
			b.WriteString(c.Entity)
		}
		b.WriteString(c.Connective)
	}
	return b.String()
}
