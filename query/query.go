// Package query builds syntactically valid Solr query strings from typed
// fragments. Callers compose terms, date math expressions and ranges into an
// expression and render it once, instead of concatenating raw strings and
// risking server-side syntax errors.
package query

import "strings"

// Node is any fragment that can render itself as Solr query syntax.
type Node interface {
	Render() string
}

// connectors are boolean operators between expression parts.
type connector string

func (c connector) Render() string {
	return string(c)
}

// Expr is a sequence of query fragments joined by boolean connectors.
// Parts render separated by single spaces; a nested expression renders in
// parentheses.
type Expr struct {
	parts []Node
}

// Compose starts an expression with an initial fragment.
func Compose(first Node) *Expr {
	return &Expr{parts: []Node{first}}
}

// And appends the AND connector.
func (e *Expr) And() *Expr {
	e.parts = append(e.parts, connector("AND"))
	return e
}

// Or appends the OR connector.
func (e *Expr) Or() *Expr {
	e.parts = append(e.parts, connector("OR"))
	return e
}

// Add appends any fragment to the expression.
func (e *Expr) Add(n Node) *Expr {
	e.parts = append(e.parts, n)
	return e
}

// Term appends a term built from raw text, quoting it when needed.
func (e *Expr) Term(text string) *Expr {
	return e.Add(NewTerm(text))
}

// Sub appends a nested expression, rendered in parentheses.
func (e *Expr) Sub(inner *Expr) *Expr {
	e.parts = append(e.parts, subExpr{inner})
	return e
}

type subExpr struct {
	inner *Expr
}

func (s subExpr) Render() string {
	return "(" + s.inner.Render() + ")"
}

// Render joins all parts with single spaces.
func (e *Expr) Render() string {
	rendered := make([]string, 0, len(e.parts))

	for _, part := range e.parts {
		rendered = append(rendered, part.Render())
	}

	return strings.Join(rendered, " ")
}

func (e *Expr) String() string {
	return e.Render()
}
