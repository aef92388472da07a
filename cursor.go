package solr

type cursorState int

const (
	cursorFresh cursorState = iota
	cursorPaging
	cursorExhausted
)

// Cursor walks a deep result set using Solr's cursorMark protocol. It owns
// a copy of the client taken when the cursor was created, so subsequent
// calls on the original client do not disturb pagination in flight.
//
// Iteration ends when Solr echoes back the mark it was sent; from then on
// Next returns nil forever. A transport or decode failure does not end
// iteration: the cursor stays on the current page and Next can be retried.
type Cursor struct {
	client   *Client
	mark     string
	snapshot []param
	phase    cursorState
}

func newCursor(client *Client, mark string) *Cursor {
	return &Cursor{
		client:   client,
		mark:     mark,
		snapshot: append([]param(nil), client.builder.params...),
	}
}

// Next fetches the next page of the walk, decoded for T. The first call
// yields the page already fetched by the Run that created the cursor; later
// calls replay the same query with the advancing cursor mark. A nil
// envelope with nil error means the result set is exhausted.
func Next[T any](cur *Cursor) (*Envelope[T], error) {
	switch cur.phase {
	case cursorExhausted:
		return nil, nil

	case cursorFresh:
		env, err := CursorResponse[T](cur)
		if err != nil {
			return nil, err
		}
		cur.phase = cursorPaging
		return env, nil
	}

	// replay the original page query with the current mark
	cur.client.builder.params = append([]param(nil), cur.snapshot...)

	if err := cur.client.builder.UpdateCursorMark(cur.mark); err != nil {
		return nil, err
	}

	raw, err := cur.client.run()
	if err != nil {
		// stay on this page; the caller may retry
		return nil, err
	}

	next := cursorMarkOf(raw)

	if next == "" || next == cur.mark {
		cur.phase = cursorExhausted
		return nil, nil
	}

	cur.mark = next

	return CursorResponse[T](cur)
}

// CursorResponse decodes the cursor's most recent page into an envelope of
// T, mirroring GetResponse on the client.
func CursorResponse[T any](cur *Cursor) (*Envelope[T], error) {
	return GetResponse[T](cur.client)
}
