package query

import "strconv"

// NOW is the Solr date math anchor for the current time.
const NOW = "NOW"

// Date is an opaque Solr date math expression, e.g. "NOW-2YEARS". The
// builder only concatenates well-formed tokens; it never validates the
// expression against the server's date math grammar.
type Date struct {
	expr string
}

// NewDate creates a date expression from a base string, typically NOW or an
// ISO timestamp.
func NewDate(base string) Date {
	return Date{expr: base}
}

// Years renders a duration token like "2YEARS".
func Years(count uint) string { return strconv.FormatUint(uint64(count), 10) + "YEARS" }

// Months renders a duration token like "2MONTHS".
func Months(count uint) string { return strconv.FormatUint(uint64(count), 10) + "MONTHS" }

// Days renders a duration token like "2DAYS".
func Days(count uint) string { return strconv.FormatUint(uint64(count), 10) + "DAYS" }

// Hours renders a duration token like "2HOURS".
func Hours(count uint) string { return strconv.FormatUint(uint64(count), 10) + "HOURS" }

// Minutes renders a duration token like "2MINUTES".
func Minutes(count uint) string { return strconv.FormatUint(uint64(count), 10) + "MINUTES" }

// Seconds renders a duration token like "2SECONDS".
func Seconds(count uint) string { return strconv.FormatUint(uint64(count), 10) + "SECONDS" }

// Plus appends "+duration" to the expression.
func (d Date) Plus(duration string) Date {
	d.expr = d.expr + "+" + duration
	return d
}

// Minus appends "-duration" to the expression.
func (d Date) Minus(duration string) Date {
	d.expr = d.expr + "-" + duration
	return d
}

// Render returns the date math expression.
func (d Date) Render() string {
	return d.expr
}

func (d Date) String() string {
	return d.Render()
}
