package query

import (
	"strconv"
	"strings"
)

// Term is a single query term, optionally scoped to a field and decorated
// with Solr term modifiers. Terms are immutable; each modifier returns a
// new value, so partially built terms can be reused safely.
type Term struct {
	text     string
	field    string
	prefix   string
	boost    float64
	hasBoost bool
	fuzz     uint
	hasFuzz  bool
}

// NewTerm creates a term from raw text. Text containing whitespace is
// double-quoted so it survives Solr query parsing as a single phrase.
func NewTerm(text string) Term {
	if strings.Contains(text, " ") == true {
		text = `"` + text + `"`
	}
	return Term{text: text}
}

// InField scopes the term to a field.
func (t Term) InField(field string) Term {
	t.field = field
	return t
}

// Boost applies a relevance boost (rendered as ^boost).
func (t Term) Boost(value float64) Term {
	t.boost = value
	t.hasBoost = true
	return t
}

// Fuzzy applies a fuzziness/proximity distance (rendered as ~n).
func (t Term) Fuzzy(distance uint) Term {
	t.fuzz = distance
	t.hasFuzz = true
	return t
}

// Required marks the term as mandatory (leading +).
func (t Term) Required() Term {
	t.prefix = "+"
	return t
}

// Prohibited marks the term as excluded (leading -).
func (t Term) Prohibited() Term {
	t.prefix = "-"
	return t
}

// Render produces the Solr syntax for the term. Modifiers always render in
// the same positions regardless of the order they were applied:
// [prefix][field: ]text[^boost][~fuzz].
func (t Term) Render() string {
	var b strings.Builder

	b.WriteString(t.prefix)

	if t.field != "" {
		b.WriteString(t.field)
		b.WriteString(": ")
	}

	b.WriteString(t.text)

	if t.hasBoost == true {
		b.WriteString("^")
		b.WriteString(strconv.FormatFloat(t.boost, 'f', -1, 32))
	}

	if t.hasFuzz == true {
		b.WriteString("~")
		b.WriteString(strconv.FormatUint(uint64(t.fuzz), 10))
	}

	return b.String()
}

func (t Term) String() string {
	return t.Render()
}
