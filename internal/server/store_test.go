package server

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"itemstore/internal/shared"
)

// backends runs fn against a fresh instance of every Store implementation.
func backends(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	for _, name := range []string{shared.BackendMemory, shared.BackendSQLite} {
		t.Run(name, func(t *testing.T) {
			s, closeFn, err := OpenStore(name, NewLogger("error", "text", io.Discard))
			require.NoError(t, err)
			t.Cleanup(func() { _ = closeFn() })
			fn(t, s)
		})
	}
}

func widget() shared.Item {
	return shared.Item{ID: "1", Name: "Widget", Description: "A widget"}
}

func ids(items []shared.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	sort.Strings(out)
	return out
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Create(widget()))

		got, err := s.Get("1")
		require.NoError(t, err)
		require.Equal(t, widget(), got)
	})
}

func TestCreateDuplicateKeepsOriginal(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Create(widget()))

		err := s.Create(shared.Item{ID: "1", Name: "Impostor", Description: "x"})
		require.ErrorIs(t, err, ErrAlreadyExists)

		got, err := s.Get("1")
		require.NoError(t, err)
		require.Equal(t, widget(), got)
	})
}

func TestMissingKeyReturnsNotFound(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		_, err := s.Get("ghost")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, s.Update("ghost", shared.Item{ID: "ghost"}), ErrNotFound)
		require.ErrorIs(t, s.Delete("ghost"), ErrNotFound)

		n, err := s.Len()
		require.NoError(t, err)
		require.Zero(t, n, "failed update must not insert")
	})
}

func TestDeleteRemovesVisibility(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Create(widget()))
		require.NoError(t, s.Delete("1"))

		_, err := s.Get("1")
		require.ErrorIs(t, err, ErrNotFound)
		require.ErrorIs(t, s.Delete("1"), ErrNotFound)
		require.ErrorIs(t, s.Update("1", widget()), ErrNotFound)

		// the id is free again
		require.NoError(t, s.Create(widget()))
	})
}

func TestListReturnsEveryItem(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		empty, err := s.List()
		require.NoError(t, err)
		require.NotNil(t, empty)
		require.Empty(t, empty)

		for _, id := range []string{"c", "a", "b"} {
			require.NoError(t, s.Create(shared.Item{ID: id, Name: "n" + id}))
		}

		items, err := s.List()
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"a", "b", "c"}, ids(items)); diff != "" {
			t.Fatalf("list ids mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestListIsASnapshot(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Create(widget()))

		items, err := s.List()
		require.NoError(t, err)
		items[0].Name = "mutated"

		got, err := s.Get("1")
		require.NoError(t, err)
		require.Equal(t, "Widget", got.Name)
	})
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Create(widget()))

		next := shared.Item{ID: "1", Name: "Widget2", Description: ""}
		require.NoError(t, s.Update("1", next))

		got, err := s.Get("1")
		require.NoError(t, err)
		require.Equal(t, next, got)
	})
}

func TestUpdateRekeysToBodyID(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		require.NoError(t, s.Create(widget()))

		moved := shared.Item{ID: "2", Name: "Moved", Description: "re-keyed"}
		require.NoError(t, s.Update("1", moved))

		_, err := s.Get("1")
		require.ErrorIs(t, err, ErrNotFound)

		got, err := s.Get("2")
		require.NoError(t, err)
		require.Equal(t, moved, got)

		n, err := s.Len()
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})
}

func TestUpdateRekeyOntoTakenIDHasNoEffect(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		a := shared.Item{ID: "a", Name: "A", Description: "first"}
		b := shared.Item{ID: "b", Name: "B", Description: "second"}
		require.NoError(t, s.Create(a))
		require.NoError(t, s.Create(b))

		err := s.Update("a", shared.Item{ID: "b", Name: "clobber", Description: ""})
		require.ErrorIs(t, err, ErrAlreadyExists)

		items, err := s.List()
		require.NoError(t, err)
		if diff := cmp.Diff([]shared.Item{a, b}, items); diff != "" {
			t.Fatalf("store changed (-want +got):\n%s", diff)
		}
	})
}

func TestConcurrentDistinctCreates(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		const n = 200
		var wg sync.WaitGroup
		errs := make(chan error, n)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs <- s.Create(shared.Item{ID: fmt.Sprintf("item-%03d", i), Name: "n"})
			}(i)
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		items, err := s.List()
		require.NoError(t, err)
		require.Len(t, items, n)

		want := make([]string, n)
		for i := range want {
			want[i] = fmt.Sprintf("item-%03d", i)
		}
		if diff := cmp.Diff(want, ids(items)); diff != "" {
			t.Fatalf("lost or duplicated items (-want +got):\n%s", diff)
		}
	})
}

func TestConcurrentSameIDCreateHasOneWinner(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		const n = 50
		var wg sync.WaitGroup
		var mu sync.Mutex
		wins, losses := 0, 0
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				err := s.Create(shared.Item{ID: "same", Name: fmt.Sprint(i)})
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					wins++
				case errors.Is(err, ErrAlreadyExists):
					losses++
				}
			}(i)
		}
		wg.Wait()

		require.Equal(t, 1, wins)
		require.Equal(t, n-1, losses)
	})
}

func TestConcurrentMixedOperationsStayConsistent(t *testing.T) {
	backends(t, func(t *testing.T, s Store) {
		const workers = 16
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				id := fmt.Sprintf("w%d", w)
				for i := 0; i < 25; i++ {
					_ = s.Create(shared.Item{ID: id, Name: "v0", Description: id})
					_ = s.Update(id, shared.Item{ID: id, Name: fmt.Sprint(i), Description: id})
					if it, err := s.Get(id); err == nil && it.Description != id {
						t.Errorf("torn read for %s: %+v", id, it)
					}
					_, _ = s.List()
					_ = s.Delete(id)
				}
			}(w)
		}
		wg.Wait()

		n, err := s.Len()
		require.NoError(t, err)
		require.Zero(t, n)
	})
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	_, _, err := OpenStore("etcd", NewLogger("error", "text", io.Discard))
	require.ErrorContains(t, err, "unknown backend")
}
