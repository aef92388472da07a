package query

// Range is a Solr range clause over two endpoint strings. Endpoints are
// rendered verbatim, so dates, numbers and wildcards (*) all work.
type Range struct {
	from      string
	to        string
	inclusive bool
}

// Inclusive creates a range including both endpoints: [from TO to].
func Inclusive(from, to string) Range {
	return Range{from: from, to: to, inclusive: true}
}

// Exclusive creates a range excluding both endpoints: {from TO to}.
func Exclusive(from, to string) Range {
	return Range{from: from, to: to}
}

// Render produces the Solr syntax for the range.
func (r Range) Render() string {
	if r.inclusive == true {
		return "[" + r.from + " TO " + r.to + "]"
	}

	return "{" + r.from + " TO " + r.to + "}"
}

func (r Range) String() string {
	return r.Render()
}
