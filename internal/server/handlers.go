package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"itemstore/internal/ctxlog"
	"itemstore/internal/shared"
)

type API struct {
	Store        Store
	Logger       *slog.Logger
	MaxBodyBytes int64
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, shared.ErrorResponse{Error: msg})
}

func (a *API) readItem(w http.ResponseWriter, r *http.Request) (shared.Item, bool) {
	limit := a.MaxBodyBytes
	if limit <= 0 {
		limit = 2 << 20
	}
	defer r.Body.Close()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return shared.Item{}, false
		}
		writeError(w, http.StatusBadRequest, "bad body")
		return shared.Item{}, false
	}

	item, err := shared.DecodeItem(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return shared.Item{}, false
	}
	return item, true
}

// storeFailed answers for an error that is neither ErrNotFound nor
// ErrAlreadyExists.
func storeFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctxlog.FromContext(r.Context()).Error("store error", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "store error")
}

func (a *API) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := a.Store.List()
	if err != nil {
		storeFailed(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (a *API) GetItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, err := a.Store.Get(id)
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case err != nil:
		storeFailed(w, r, "get", err)
	default:
		writeJSON(w, http.StatusOK, item)
	}
}

func (a *API) CreateItem(w http.ResponseWriter, r *http.Request) {
	item, ok := a.readItem(w, r)
	if !ok {
		return
	}

	err := a.Store.Create(item)
	switch {
	case errors.Is(err, ErrAlreadyExists):
		ctxlog.FromContext(r.Context()).Debug("create rejected", "id", item.ID)
		writeError(w, http.StatusBadRequest, shared.MsgItemExists)
	case err != nil:
		storeFailed(w, r, "create", err)
	default:
		w.WriteHeader(http.StatusCreated)
	}
}

func (a *API) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	item, ok := a.readItem(w, r)
	if !ok {
		return
	}

	err := a.Store.Update(id, item)
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, ErrAlreadyExists):
		// re-key onto an id held by another item
		ctxlog.FromContext(r.Context()).Debug("update rejected", "id", id, "new_id", item.ID)
		writeError(w, http.StatusBadRequest, shared.MsgItemExists)
	case err != nil:
		storeFailed(w, r, "update", err)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (a *API) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	err := a.Store.Delete(id)
	switch {
	case errors.Is(err, ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	case err != nil:
		storeFailed(w, r, "delete", err)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	n, err := a.Store.Len()
	if err != nil {
		storeFailed(w, r, "len", err)
		return
	}
	writeJSON(w, http.StatusOK, shared.HealthResponse{Status: "ok", Items: n})
}
