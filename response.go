package solr

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ResponseHeader is Solr's per-response status block.
type ResponseHeader struct {
	Status int `json:"status"`
	QTime  int `json:"QTime"`
}

// Results is the document block of a select response. T is the caller's
// document type; use json.RawMessage or map[string]interface{} for
// schema-less access.
type Results[T any] struct {
	NumFound      uint32 `json:"numFound"`
	NumFoundExact bool   `json:"numFoundExact"`
	Start         uint32 `json:"start"`
	Docs          []T    `json:"docs"`
}

// FacetCount is one value/count pair from a field facet.
type FacetCount struct {
	Value string
	Count int64
}

// FacetCounts is the facet_counts block. Fields stays raw because Solr
// renders it as flat [term, count, term, count, ...] arrays keyed by field;
// FieldCounts flattens one field on demand. Sections other than
// facet_queries and facet_fields (ranges, intervals, heatmaps) pass through
// in Raw.
type FacetCounts struct {
	Queries map[string]uint64
	Fields  json.RawMessage
	Raw     map[string]json.RawMessage
}

// FieldCounts flattens the alternating term/count array Solr returns for
// one faceted field into ordered pairs.
func (f *FacetCounts) FieldCounts(field string) ([]FacetCount, error) {
	if f == nil || len(f.Fields) == 0 {
		return nil, nil
	}

	var fields map[string][]interface{}
	if err := json.Unmarshal(f.Fields, &fields); err != nil {
		return nil, errors.Wrap(err, "facet_fields")
	}

	flat, ok := fields[field]
	if ok == false {
		return nil, nil
	}

	counts := make([]FacetCount, 0, len(flat)/2)

	for i := 0; i+1 < len(flat); i += 2 {
		value, ok := flat[i].(string)
		if ok == false {
			return nil, errors.Errorf("facet_fields[%s]: expected term at index %d", field, i)
		}

		count, ok := flat[i+1].(float64)
		if ok == false {
			return nil, errors.Errorf("facet_fields[%s]: expected count at index %d", field, i+1)
		}

		counts = append(counts, FacetCount{Value: value, Count: int64(count)})
	}

	return counts, nil
}

// Envelope is the decoded top-level Solr reply. Any field may be absent
// depending on the handler; unknown top-level keys (debug, highlighting,
// terms, ...) are preserved verbatim in Raw.
type Envelope[T any] struct {
	Header         *ResponseHeader
	Response       *Results[T]
	FacetCounts    *FacetCounts
	NextCursorMark string
	Raw            map[string]json.RawMessage
}

// decodeEnvelope maps the cached generic response into a typed envelope.
// A failure here is the caller's type not matching the documents, surfaced
// as a serialization error.
func decodeEnvelope[T any](raw map[string]json.RawMessage, codec Codec) (*Envelope[T], *Error) {
	env := &Envelope[T]{}

	if raw == nil {
		return env, nil
	}

	for key, val := range raw {
		switch key {
		case "responseHeader":
			var header ResponseHeader
			if err := codec.Unmarshal(val, &header); err != nil {
				return nil, serializationError(errors.Wrap(err, "responseHeader"))
			}
			env.Header = &header

		case "response":
			var results Results[T]
			if err := codec.Unmarshal(val, &results); err != nil {
				return nil, serializationError(errors.Wrap(err, "response"))
			}
			env.Response = &results

		case "facet_counts":
			facets, err := decodeFacetCounts(val)
			if err != nil {
				return nil, serializationError(errors.Wrap(err, "facet_counts"))
			}
			env.FacetCounts = facets

		case "nextCursorMark":
			var mark string
			if err := codec.Unmarshal(val, &mark); err != nil {
				return nil, serializationError(errors.Wrap(err, "nextCursorMark"))
			}
			env.NextCursorMark = mark

		default:
			if env.Raw == nil {
				env.Raw = make(map[string]json.RawMessage)
			}
			env.Raw[key] = val
		}
	}

	return env, nil
}

// decodeFacetCounts splits the facet block into its typed and raw parts.
// facet_queries is a plain name-to-count object; it decodes through
// mapstructure because Solr emits the counts as bare JSON numbers.
func decodeFacetCounts(raw json.RawMessage) (*FacetCounts, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, err
	}

	facets := &FacetCounts{}

	for key, val := range sections {
		switch key {
		case "facet_queries":
			var generic map[string]interface{}
			if err := json.Unmarshal(val, &generic); err != nil {
				return nil, err
			}

			cfg := &mapstructure.DecoderConfig{
				Result:     &facets.Queries,
				TagName:    "json",
				ZeroFields: true,
			}

			dec, _ := mapstructure.NewDecoder(cfg)

			if err := dec.Decode(generic); err != nil {
				return nil, err
			}

		case "facet_fields":
			facets.Fields = val

		default:
			if facets.Raw == nil {
				facets.Raw = make(map[string]json.RawMessage)
			}
			facets.Raw[key] = val
		}
	}

	return facets, nil
}
