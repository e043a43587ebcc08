package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeyousef/summon-sub017/callback"
)

func newTestRouter(reg *callback.Registry) http.Handler {
	r := chi.NewRouter()
	NewHandler(reg, nil).Mount(r)
	return r
}

func decodeReply(t *testing.T, resp *http.Response) reply {
	t.Helper()
	var rep reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	return rep
}

func TestDispatch_MissingID404(t *testing.T) {
	reg := callback.New()
	router := newTestRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/summon/callback/cb-0", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	rep := decodeReply(t, rec.Result())
	assert.Equal(t, "noop", rep.Action)
	assert.Equal(t, "missing", rep.Status)
}

func TestDispatch_UserClosureSuccess(t *testing.T) {
	reg := callback.New()
	var ran bool
	id := reg.Register(callback.UserClosure(func() error { ran = true; return nil }))
	router := newTestRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/summon/callback/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ran)
	rep := decodeReply(t, rec.Result())
	assert.Equal(t, "reload", rep.Action)
}

func TestDispatch_UserClosureErrorReturns500(t *testing.T) {
	reg := callback.New()
	id := reg.Register(callback.UserClosure(func() error { return errors.New("boom") }))
	router := newTestRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/summon/callback/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	rep := decodeReply(t, rec.Result())
	assert.Equal(t, "error", rep.Action)
}

func TestDispatch_UserClosurePanicReturns500(t *testing.T) {
	reg := callback.New()
	id := reg.Register(callback.UserClosure(func() error { panic("unexpected") }))
	router := newTestRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/summon/callback/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestDispatch_NonClosureActionIsNoop(t *testing.T) {
	reg := callback.New()
	id := reg.Register(callback.Navigate("/somewhere"))
	router := newTestRouter(reg)

	req := httptest.NewRequest(http.MethodPost, "/summon/callback/"+id, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	rep := decodeReply(t, rec.Result())
	assert.Equal(t, "noop", rep.Action)
	assert.Equal(t, "ok", rep.Status)
}
