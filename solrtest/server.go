// Package solrtest provides a scripted in-process Solr stand-in for tests.
// Callers stub exact request lines (method plus request URI) with canned
// responses and assert afterwards on the requests the server received.
// Unstubbed requests get a Solr-shaped 404 so a drifting URL fails loudly.
package solrtest

import (
	"fmt"
	"io"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Request is one call received by the server, recorded before responding.
type Request struct {
	Method      string
	RequestURI  string
	ContentType string
	Body        string
}

type stub struct {
	status int
	body   string
}

// Server is a scripted Solr endpoint on a loopback listener.
type Server struct {
	ts     *httptest.Server
	engine *gin.Engine

	mu       sync.Mutex
	stubs    map[string]stub
	requests []Request
}

// NewServer starts a server with no stubs. Close it when the test ends.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)

	s := &Server{
		engine: gin.New(),
		stubs:  make(map[string]stub),
	}

	// a single catch-all keeps encoded slashes in handler segments intact;
	// gin route patterns would split them
	s.engine.NoRoute(s.handle)

	s.ts = httptest.NewServer(s.engine)

	return s
}

// URL returns the server origin, e.g. http://127.0.0.1:42801.
func (s *Server) URL() string {
	return s.ts.URL
}

// Close shuts the listener down.
func (s *Server) Close() {
	s.ts.Close()
}

// Stub registers a canned response for one exact request line. The
// requestURI is the path plus raw query as the client sends it, e.g.
// "/solr/c/select?q=*%3A*".
func (s *Server) Stub(method, requestURI string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stubs[method+" "+requestURI] = stub{status: status, body: body}
}

// StubOK registers a 200 response.
func (s *Server) StubOK(method, requestURI, body string) {
	s.Stub(method, requestURI, 200, body)
}

// Requests returns a copy of every request received so far, in order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request, or a zero Request when none
// arrived yet.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		return Request{}
	}

	return s.requests[len(s.requests)-1]
}

func (s *Server) handle(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)

	// RequestURI keeps the raw form the client sent, including %2F in
	// handler segments
	uri := c.Request.RequestURI

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:      c.Request.Method,
		RequestURI:  uri,
		ContentType: c.GetHeader("Content-Type"),
		Body:        string(body),
	})
	response, ok := s.stubs[c.Request.Method+" "+uri]
	s.mu.Unlock()

	if ok == false {
		c.Data(404, "application/json; charset=utf-8",
			[]byte(fmt.Sprintf(`{"error":{"msg":"no stub for %s %s","code":404}}`, c.Request.Method, uri)))
		return
	}

	c.Data(response.status, "application/json; charset=utf-8", []byte(response.body))
}
