// Package solr is a synchronous client for Apache Solr's HTTP-JSON API.
// It builds well-formed requests against any request handler, decodes the
// response envelope into caller-chosen document types, classifies failures
// into a small taxonomy, and drives cursor-based deep pagination.
//
// A Client is a fluent builder: the shorthand verbs (Select, Upload, Delete,
// Commit) and parameter helpers mutate the pending request, and Run sends
// it. On success the query parameters reset while the handler and payload
// persist, so one Client can issue a sequence of calls.
//
//	client, _ := solr.New("http://localhost:8983", "collection")
//	if _, err := client.Select("*:*").Run(); err != nil {
//		return err
//	}
//	res, err := solr.GetResponse[map[string]interface{}](client)
//
// Clients are not safe for concurrent use; create one per goroutine.
package solr

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
)

// Client accumulates one Solr request at a time and executes it against a
// pluggable Transport.
type Client struct {
	builder   *RequestBuilder
	transport Transport
	codec     Codec
	logger    zerolog.Logger
	last      map[string]json.RawMessage
	buildErr  error
}

// Option configures a Client at construction.
type Option func(*Client)

// WithTransport substitutes the HTTP transport, typically with a scripted
// implementation in tests.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithCodec substitutes the JSON codec.
func WithCodec(codec Codec) Option {
	return func(c *Client) { c.codec = codec }
}

// WithLogger enables request/response tracing at debug level. Logging never
// changes behavior; errors are always returned, not logged and swallowed.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTimeouts rebuilds the default transport with the given connect and
// read timeouts. It has no effect on a transport set via WithTransport.
func WithTimeouts(conn, read time.Duration) Option {
	return func(c *Client) {
		if _, ok := c.transport.(*httpTransport); ok == true {
			c.transport = newHTTPTransport(conn, read)
		}
	}
}

// New creates a client for one collection on one Solr origin. The origin
// and collection are fixed for the client's lifetime.
func New(baseURL, collection string, opts ...Option) (*Client, error) {
	builder, err := NewRequestBuilder(baseURL, collection)
	if err != nil {
		return nil, err
	}

	c := &Client{
		builder:   builder,
		transport: newHTTPTransport(defaultConnTimeout, defaultReadTimeout),
		codec:     jsonCodec{},
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Select prepares a query against the select handler.
func (c *Client) Select(q string) *Client {
	c.builder.Handler(HandlerSelect).Query(q)
	return c
}

// Upload prepares an insert of one document through update/json/docs.
func (c *Client) Upload(document interface{}) *Client {
	c.builder.Handler(HandlerCreate)
	return c.setDocument(document)
}

// UploadAll prepares an insert of multiple documents as one JSON array.
func (c *Client) UploadAll(documents interface{}) *Client {
	return c.Upload(documents)
}

// Delete prepares a delete-by-query through the update handler.
func (c *Client) Delete(q string) *Client {
	c.builder.Handler(HandlerUpdate)
	return c.setDocument(map[string]interface{}{
		"delete": map[string]interface{}{"query": q},
	})
}

// Commit prepares an immediate commit: an empty POST to update with
// commit=true.
func (c *Client) Commit() *Client {
	c.builder.Handler(HandlerUpdate).AutoCommit().SetEmptyPayload()
	return c
}

// RequestHandler targets an arbitrary request handler with no payload; add
// parameters with AddParam and a body with SetPayload if the handler needs
// one.
func (c *Client) RequestHandler(handler string) *Client {
	c.builder.Handler(handler)
	return c
}

// Ping prepares a health check against the collection's ping handler.
func (c *Client) Ping() *Client {
	return c.RequestHandler("admin/ping")
}

func (c *Client) setDocument(document interface{}) *Client {
	body, err := c.codec.Marshal(document)
	if err != nil {
		// surfaced by the next Run; builder state stays consistent
		c.buildErr = err
		c.builder.ClearPayload()
		return c
	}

	c.buildErr = nil
	c.builder.SetPayload(body)
	return c
}

// SetPayload sets a pre-serialized JSON body on the pending request.
func (c *Client) SetPayload(body []byte) *Client {
	c.buildErr = nil
	c.builder.SetPayload(body)
	return c
}

// SetEmptyPayload marks the pending request as a body-less POST.
func (c *Client) SetEmptyPayload() *Client {
	c.builder.SetEmptyPayload()
	return c
}

// ClearPayload reverts the pending request to a GET.
func (c *Client) ClearPayload() *Client {
	c.builder.ClearPayload()
	return c
}

// AddParam appends one query parameter to the pending request.
func (c *Client) AddParam(key, value string) *Client {
	c.builder.AddParam(key, value)
	return c
}

// Query sets the q parameter.
func (c *Client) Query(q string) *Client {
	c.builder.Query(q)
	return c
}

// Start sets the start offset for basic pagination.
func (c *Client) Start(start uint) *Client {
	c.builder.Start(start)
	return c
}

// Rows sets the page size for basic pagination.
func (c *Client) Rows(rows uint) *Client {
	c.builder.Rows(rows)
	return c
}

// Sort sets the sort parameter.
func (c *Client) Sort(sort string) *Client {
	c.builder.Sort(sort)
	return c
}

// DefaultField sets the df parameter.
func (c *Client) DefaultField(field string) *Client {
	c.builder.DefaultField(field)
	return c
}

// AutoCommit sets commit=true on the pending request.
func (c *Client) AutoCommit() *Client {
	c.builder.AutoCommit()
	return c
}

// DisMax selects the dismax query parser.
func (c *Client) DisMax() *Client {
	c.builder.DisMax()
	return c
}

// EDisMax selects the edismax query parser.
func (c *Client) EDisMax() *Client {
	c.builder.EDisMax()
	return c
}

// FacetField requests facet counts for a field.
func (c *Client) FacetField(field string) *Client {
	c.builder.FacetField(field)
	return c
}

// FacetQuery requests facet counts for a query.
func (c *Client) FacetQuery(q string) *Client {
	c.builder.FacetQuery(q)
	return c
}

// Cursor appends cursorMark=* so a successful Run starts a cursor walk.
// Solr requires a sort on a unique field for cursor pagination.
func (c *Client) Cursor() *Client {
	c.builder.Cursor()
	return c
}

// UpdateCursorMark replaces the pending request's cursor mark.
func (c *Client) UpdateCursorMark(mark string) error {
	return c.builder.UpdateCursorMark(mark)
}

// URLString renders the pending request URL without sending it.
func (c *Client) URLString() string {
	return c.builder.URLString()
}

// Run executes the pending request. On success the response is cached for
// GetResponse, the query parameters reset, and, when the request carried a
// cursorMark and the reply a nextCursorMark, the returned Cursor drives the
// remaining pages. A failed Run leaves parameters and payload untouched so
// the call can be inspected or retried.
func (c *Client) Run() (*Cursor, error) {
	hadCursor := c.builder.hasParam("cursorMark")

	var pageClient *Client
	if hadCursor == true {
		// snapshot before params are cleared so pagination replays the
		// same query on every page
		pageClient = c.clone()
	}

	raw, err := c.run()
	if err != nil {
		return nil, err
	}

	if hadCursor == true {
		if mark := cursorMarkOf(raw); mark != "" {
			pageClient.last = raw
			return newCursor(pageClient, mark), nil
		}
	}

	return nil, nil
}

// run sends the pending request and caches the parsed generic response.
func (c *Client) run() (map[string]json.RawMessage, error) {
	if c.buildErr != nil {
		return nil, serializationError(c.buildErr)
	}

	requestURL := c.builder.URLString()

	method := "GET"
	if c.builder.payload != payloadNone {
		method = "POST"
	}

	c.logger.Debug().Str("method", method).Str("url", requestURL).Msg("solr request")

	started := time.Now()

	var status int
	var body []byte
	var err error

	switch c.builder.payload {
	case payloadBody:
		status, body, err = c.transport.Post(requestURL, c.builder.body)
	case payloadEmpty:
		status, body, err = c.transport.Post(requestURL, nil)
	default:
		status, body, err = c.transport.Get(requestURL)
	}

	elapsedMS := int64(time.Since(started) / time.Millisecond)

	if err != nil {
		c.logger.Debug().Err(err).Int64("elapsed_ms", elapsedMS).Msg("solr request failed")
		return nil, networkError(err)
	}

	c.logger.Debug().Int("status", status).Int64("elapsed_ms", elapsedMS).Msg("solr response")

	raw, derr := decodeStatus(status, body)
	if derr != nil {
		return nil, derr
	}

	c.last = raw
	c.builder.clearParams()

	return raw, nil
}

// GetResponse decodes the most recent successful response into an envelope
// of T. With no prior call it returns an empty envelope. A document type
// that does not match the stored JSON surfaces as a serialization error
// here rather than at Run.
func GetResponse[T any](c *Client) (*Envelope[T], error) {
	if c.last == nil {
		return &Envelope[T]{}, nil
	}

	env, derr := decodeEnvelope[T](c.last, c.codec)
	if derr != nil {
		return nil, derr
	}

	return env, nil
}

func (c *Client) clone() *Client {
	dup := *c
	dup.builder = c.builder.clone()
	return &dup
}

func cursorMarkOf(raw map[string]json.RawMessage) string {
	val, ok := raw["nextCursorMark"]
	if ok == false {
		return ""
	}

	var mark string
	if err := json.Unmarshal(val, &mark); err != nil {
		return ""
	}

	return mark
}
