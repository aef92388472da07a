package solr

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"time"
)

// Transport executes one blocking HTTP exchange and returns the status code
// and raw body bytes. Implementations decide pooling, timeouts and
// cancellation; the client only selects the verb and interprets the result.
type Transport interface {
	// Get issues a GET request.
	Get(url string) (status int, body []byte, err error)

	// Post issues a POST request. A nil payload sends no body and no
	// content-type; a non-nil payload is sent as application/json.
	Post(url string, payload []byte) (status int, body []byte, err error)
}

const (
	defaultConnTimeout = 5 * time.Second
	defaultReadTimeout = 30 * time.Second
)

type httpTransport struct {
	client *http.Client
}

func newHTTPTransport(connTimeout, readTimeout time.Duration) *httpTransport {
	client := &http.Client{
		Timeout: readTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   connTimeout,
				KeepAlive: 60 * time.Second,
			}).DialContext,
			MaxIdleConns:        100, // we are hitting one solr host, so
			MaxIdleConnsPerHost: 100, // these two values can be the same
			IdleConnTimeout:     90 * time.Second,
		},
	}

	return &httpTransport{client: client}
}

func (t *httpTransport) Get(url string) (int, []byte, error) {
	res, err := t.client.Get(url)
	if err != nil {
		return 0, nil, err
	}

	return drainResponse(res)
}

func (t *httpTransport) Post(url string, payload []byte) (int, []byte, error) {
	var req *http.Request
	var err error

	if payload == nil {
		req, err = http.NewRequest("POST", url, nil)
	} else {
		req, err = http.NewRequest("POST", url, bytes.NewReader(payload))
	}
	if err != nil {
		return 0, nil, err
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := t.client.Do(req)
	if err != nil {
		return 0, nil, err
	}

	return drainResponse(res)
}

func drainResponse(res *http.Response) (int, []byte, error) {
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, err
	}

	return res.StatusCode, body, nil
}
