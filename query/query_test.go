package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDateRendersBase(t *testing.T) {
	assert.Equal(t, "NOW", NewDate(NOW).Render())
}

func TestDatePlusConcatenatesDuration(t *testing.T) {
	date := NewDate(NOW).Plus(Months(2))
	assert.Equal(t, "NOW+2MONTHS", date.Render())
}

func TestDateMinusConcatenatesDuration(t *testing.T) {
	date := NewDate(NOW).Minus(Years(2))
	assert.Equal(t, "NOW-2YEARS", date.Render())
}

func TestDateDurationTokens(t *testing.T) {
	assert.Equal(t, "1YEARS", Years(1))
	assert.Equal(t, "2MONTHS", Months(2))
	assert.Equal(t, "3DAYS", Days(3))
	assert.Equal(t, "4HOURS", Hours(4))
	assert.Equal(t, "5MINUTES", Minutes(5))
	assert.Equal(t, "6SECONDS", Seconds(6))
}

func TestDateChainsMultipleDurations(t *testing.T) {
	date := NewDate(NOW).Minus(Years(1)).Plus(Days(7))
	assert.Equal(t, "NOW-1YEARS+7DAYS", date.Render())
}

func TestRangeInclusive(t *testing.T) {
	assert.Equal(t, "[a TO b]", Inclusive("a", "b").Render())
}

func TestRangeExclusive(t *testing.T) {
	assert.Equal(t, "{a TO b}", Exclusive("a", "b").Render())
}

func TestRangeWithDateEndpoints(t *testing.T) {
	from := NewDate(NOW).Minus(Months(6))
	r := Inclusive(from.Render(), NOW)
	assert.Equal(t, "[NOW-6MONTHS TO NOW]", r.Render())
}

func TestComposeJoinsPartsWithSpaces(t *testing.T) {
	expr := Compose(NewTerm("okapi").InField("title")).And().Term("egerke")
	assert.Equal(t, "title: okapi AND egerke", expr.Render())
}

func TestComposeOrConnector(t *testing.T) {
	expr := Compose(NewTerm("a")).Or().Term("b")
	assert.Equal(t, "a OR b", expr.Render())
}

func TestComposeSubExpressionRendersParenthesized(t *testing.T) {
	inner := Compose(NewTerm("b")).Or().Term("c")
	expr := Compose(NewTerm("a")).And().Sub(inner)
	assert.Equal(t, "a AND (b OR c)", expr.Render())
}

func TestComposeMixedFragments(t *testing.T) {
	expr := Compose(NewTerm("okapi").Required()).
		And().
		Add(Inclusive("1", "10")).
		Or().
		Add(NewDate(NOW).Minus(Days(1)))
	assert.Equal(t, "+okapi AND [1 TO 10] OR NOW-1DAYS", expr.Render())
}
