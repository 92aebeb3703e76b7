package shared

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrBadItem is wrapped by every DecodeItem failure.
var ErrBadItem = errors.New("bad item")

// MsgItemExists is the error text the API sends when an id is already taken.
const MsgItemExists = "item already exists"

type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// wireItem uses pointers so a missing field can be told apart from "".
type wireItem struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DecodeItem parses exactly one JSON item. Unknown fields, missing fields and
// trailing data are all rejected, as are ids that cannot be a URL path
// segment ("", "." and "..").
func DecodeItem(body []byte) (Item, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var w wireItem
	if err := dec.Decode(&w); err != nil {
		return Item{}, fmt.Errorf("%w: %v", ErrBadItem, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return Item{}, fmt.Errorf("%w: trailing data after object", ErrBadItem)
	}

	switch {
	case w.ID == nil:
		return Item{}, fmt.Errorf("%w: missing field \"id\"", ErrBadItem)
	case w.Name == nil:
		return Item{}, fmt.Errorf("%w: missing field \"name\"", ErrBadItem)
	case w.Description == nil:
		return Item{}, fmt.Errorf("%w: missing field \"description\"", ErrBadItem)
	}

	switch *w.ID {
	case "", ".", "..":
		// /items/{id} cannot address these
		return Item{}, fmt.Errorf("%w: id %q is not a valid path segment", ErrBadItem, *w.ID)
	}

	return Item{ID: *w.ID, Name: *w.Name, Description: *w.Description}, nil
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Items  int    `json:"items"`
}
