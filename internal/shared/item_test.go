package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeItemAcceptsCompleteObject(t *testing.T) {
	item, err := DecodeItem([]byte(`{"id":"1","name":"Widget","description":"A widget"}`))
	require.NoError(t, err)
	require.Equal(t, Item{ID: "1", Name: "Widget", Description: "A widget"}, item)
}

func TestDecodeItemAllowsEmptyNameAndDescription(t *testing.T) {
	item, err := DecodeItem([]byte(`{"id":"x","name":"","description":""}`))
	require.NoError(t, err)
	require.Equal(t, Item{ID: "x"}, item)
}

func TestDecodeItemAllowsDotsInsideIDs(t *testing.T) {
	item, err := DecodeItem([]byte(`{"id":"...","name":"n","description":"d"}`))
	require.NoError(t, err)
	require.Equal(t, "...", item.ID)
}

func TestDecodeItemRejectsBadBodies(t *testing.T) {
	cases := map[string]string{
		"empty":           ``,
		"not json":        `hello`,
		"array":           `[]`,
		"missing id":      `{"name":"n","description":"d"}`,
		"missing name":    `{"id":"1","description":"d"}`,
		"missing desc":    `{"id":"1","name":"n"}`,
		"null field":      `{"id":null,"name":"n","description":"d"}`,
		"unknown field":   `{"id":"1","name":"n","description":"d","price":3}`,
		"wrong type":      `{"id":1,"name":"n","description":"d"}`,
		"trailing object": `{"id":"1","name":"n","description":"d"}{}`,
		"empty id":        `{"id":"","name":"n","description":"d"}`,
		"dot id":          `{"id":".","name":"n","description":"d"}`,
		"dot-dot id":      `{"id":"..","name":"n","description":"d"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeItem([]byte(body))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrBadItem), "got %v", err)
		})
	}
}
