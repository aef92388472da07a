package solr

import (
	"net/url"
	"strconv"
	"strings"
)

// request handlers used by the client shorthands. Any other string works as
// a handler through RequestHandler.
const (
	HandlerSelect = "select"
	HandlerUpdate = "update"
	HandlerCreate = "update/json/docs"
)

type payloadState int

const (
	payloadNone payloadState = iota
	payloadEmpty
	payloadBody
)

type param struct {
	key   string
	value string
}

// RequestBuilder accumulates the target path, query parameters and payload
// of one Solr request. Parameters keep their append order and may repeat;
// Solr is sensitive to positioning for repeated keys, and tests assert the
// exact wire form.
//
// The builder mutates in place and returns itself, so calls chain. It is
// not safe for concurrent use.
type RequestBuilder struct {
	base       string
	collection string
	handler    string
	params     []param
	payload    payloadState
	body       []byte
}

// NewRequestBuilder parses and normalizes the server origin. The collection
// is fixed for the builder's lifetime.
func NewRequestBuilder(baseURL, collection string) (*RequestBuilder, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	if u.Scheme == "" || u.Host == "" {
		return nil, invalidStateError("base url must be absolute: " + baseURL)
	}

	base := u.Scheme + "://" + u.Host

	return &RequestBuilder{base: base, collection: collection}, nil
}

// Handler sets the request handler segment, rewriting the path to
// /solr/<collection>/<handler> and clearing any payload. Switching handler
// implies a fresh verb intent, so the next request defaults back to GET.
func (r *RequestBuilder) Handler(handler string) *RequestBuilder {
	r.handler = handler
	r.payload = payloadNone
	r.body = nil
	return r
}

// AddParam appends one query parameter. Duplicate keys are allowed.
func (r *RequestBuilder) AddParam(key, value string) *RequestBuilder {
	r.params = append(r.params, param{key: key, value: value})
	return r
}

// Query sets the q parameter.
func (r *RequestBuilder) Query(q string) *RequestBuilder {
	return r.AddParam("q", q)
}

// Start sets the start offset for basic pagination.
func (r *RequestBuilder) Start(start uint) *RequestBuilder {
	return r.AddParam("start", strconv.FormatUint(uint64(start), 10))
}

// Rows sets the page size for basic pagination.
func (r *RequestBuilder) Rows(rows uint) *RequestBuilder {
	return r.AddParam("rows", strconv.FormatUint(uint64(rows), 10))
}

// Sort sets the sort parameter.
func (r *RequestBuilder) Sort(sort string) *RequestBuilder {
	return r.AddParam("sort", sort)
}

// DefaultField sets the df parameter.
func (r *RequestBuilder) DefaultField(field string) *RequestBuilder {
	return r.AddParam("df", field)
}

// AutoCommit sets commit=true so write operations take effect immediately.
func (r *RequestBuilder) AutoCommit() *RequestBuilder {
	return r.AddParam("commit", "true")
}

// DisMax selects the dismax query parser.
func (r *RequestBuilder) DisMax() *RequestBuilder {
	return r.AddParam("defType", "dismax")
}

// EDisMax selects the edismax query parser.
func (r *RequestBuilder) EDisMax() *RequestBuilder {
	return r.AddParam("defType", "edismax")
}

// facetOn inserts the facet=on switch once, before the first facet param.
func (r *RequestBuilder) facetOn() {
	for _, p := range r.params {
		if p.key == "facet" && p.value == "on" {
			return
		}
	}

	r.AddParam("facet", "on")
}

// FacetField requests facet counts for a field, switching faceting on if
// this is the first facet parameter.
func (r *RequestBuilder) FacetField(field string) *RequestBuilder {
	r.facetOn()
	return r.AddParam("facet_field", field)
}

// FacetQuery requests facet counts for an arbitrary query, switching
// faceting on if this is the first facet parameter.
func (r *RequestBuilder) FacetQuery(q string) *RequestBuilder {
	r.facetOn()
	return r.AddParam("facet_query", q)
}

// Cursor appends cursorMark=* to request the first page of a cursor walk.
func (r *RequestBuilder) Cursor() *RequestBuilder {
	return r.AddParam("cursorMark", "*")
}

// UpdateCursorMark replaces the value of the existing cursorMark parameter.
// It fails when the request has no cursorMark.
func (r *RequestBuilder) UpdateCursorMark(mark string) error {
	for i, p := range r.params {
		if p.key == "cursorMark" {
			r.params[i].value = mark
			return nil
		}
	}

	return invalidStateError("no cursorMark parameter to update")
}

// SetPayload sets a JSON body; the request becomes a POST with content-type
// application/json.
func (r *RequestBuilder) SetPayload(body []byte) *RequestBuilder {
	r.payload = payloadBody
	r.body = body
	return r
}

// SetEmptyPayload marks the request as a body-less POST, as required by
// Solr delete and commit.
func (r *RequestBuilder) SetEmptyPayload() *RequestBuilder {
	r.payload = payloadEmpty
	r.body = nil
	return r
}

// ClearPayload drops the payload; the request becomes a GET again.
func (r *RequestBuilder) ClearPayload() *RequestBuilder {
	r.payload = payloadNone
	r.body = nil
	return r
}

// URLString renders the current request URL without side effects.
func (r *RequestBuilder) URLString() string {
	var b strings.Builder

	b.WriteString(r.base)
	b.WriteString("/solr/")
	b.WriteString(url.PathEscape(r.collection))

	if r.handler != "" {
		b.WriteString("/")
		// the handler encodes as a single path segment, so a handler like
		// update/json/docs keeps its slashes as %2F
		b.WriteString(url.PathEscape(r.handler))
	}

	if len(r.params) > 0 {
		b.WriteString("?")

		for i, p := range r.params {
			if i > 0 {
				b.WriteString("&")
			}
			b.WriteString(formEscape(p.key))
			b.WriteString("=")
			b.WriteString(formEscape(p.value))
		}
	}

	return b.String()
}

func (r *RequestBuilder) hasParam(key string) bool {
	for _, p := range r.params {
		if p.key == key {
			return true
		}
	}

	return false
}

func (r *RequestBuilder) clearParams() {
	r.params = nil
}

// clone returns an independent copy, used to detach cursor pagination from
// later client calls.
func (r *RequestBuilder) clone() *RequestBuilder {
	dup := *r
	dup.params = append([]param(nil), r.params...)
	dup.body = append([]byte(nil), r.body...)
	if r.body == nil {
		dup.body = nil
	}
	return &dup
}

// formEscape percent-encodes one application/x-www-form-urlencoded token.
// Unlike url.QueryEscape it leaves '*' bare, matching the encoding Solr
// clients conventionally emit (q=*%3A* rather than q=%2A%3A%2A).
func formEscape(s string) string {
	var b strings.Builder

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == ' ':
			b.WriteByte('+')
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '*' || c == '-' || c == '.' || c == '_':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
		}
	}

	return b.String()
}

const upperhex = "0123456789ABCDEF"
