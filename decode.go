package solr

import (
	"encoding/json"
	"unicode/utf8"
)

const badBodyPlaceholder = "<invalid utf-8 body>"

// decodeStatus maps one transport result onto the error taxonomy. On
// success it returns the parsed top-level JSON object; typed decoding of
// the documents is deferred until the caller names a type.
func decodeStatus(status int, body []byte) (map[string]json.RawMessage, *Error) {
	switch status {
	case 200:
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, serializationError(err)
		}
		return raw, nil

	case 404:
		return nil, notFoundError()

	default:
		return nil, classifyFailure(status, body)
	}
}

// classifyFailure distinguishes a Solr-reported problem (error.msg present)
// from everything else. Solr places a human-readable message at error.msg
// for both bad queries and infrastructure trouble; surfacing it separately
// spares callers from pattern-matching on body text.
func classifyFailure(status int, body []byte) *Error {
	var probe struct {
		Error struct {
			Msg  *string `json:"msg"`
			Code int     `json:"code"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &probe); err == nil && probe.Error.Msg != nil {
		return syntaxError(status, *probe.Error.Msg)
	}

	text := string(body)
	if utf8.ValidString(text) == false {
		text = badBodyPlaceholder
	}

	return otherError(status, text)
}
