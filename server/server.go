// Package server implements the callback-endpoint contract (spec §6
// "Callback endpoint contract"): POST /summon/callback/{id} dispatches
// to the registered action and replies with the small JSON directive
// the client bootstrap expects.
//
// Grounded on the chi.Router idiom found in the pack's dependency
// graph (go-chi/chi/v5, surfaced as an indirect dependency of
// jbw976-up's go.mod) and demonstrated directly in other_examples'
// backend-internal-di-container.go (chi.NewRouter(), r.Post("/path/{id}",
// handler), chi.URLParam for path params) — no example repo exercises
// chi as a render-adjacent server, so this package's route shape
// follows that file's idiom rather than any pack repo's own routes.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/codeyousef/summon-sub017/callback"
)

// reply is the stable JSON directive of spec §4.8 / §6: `{"action":
// "reload"|"noop"|"error", "status": "ok"|"missing"|...}`.
type reply struct {
	Action string `json:"action"`
	Status string `json:"status"`
}

// Handler dispatches POST /summon/callback/{id} against reg.
type Handler struct {
	reg *callback.Registry
	log *slog.Logger
}

// NewHandler builds a callback dispatch handler bound to reg.
func NewHandler(reg *callback.Registry, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{reg: reg, log: logger}
}

// Mount registers the callback route on r (spec §6: `POST
// /summon/callback/{id}`).
func (h *Handler) Mount(r chi.Router) {
	r.Post("/summon/callback/{id}", h.dispatch)
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	action, ok := h.reg.Lookup(id)
	if !ok {
		writeReply(w, http.StatusNotFound, reply{Action: "noop", Status: "missing"})
		return
	}

	if action.Kind != callback.KindUserClosure || action.Closure == nil {
		// Navigate/ServerRPC/ToggleVisibility are client-dispatched
		// descriptors; a POST against one of their ids is a no-op from
		// the server's point of view.
		writeReply(w, http.StatusOK, reply{Action: "noop", Status: "ok"})
		return
	}

	if err := h.runClosure(action); err != nil {
		h.log.Error("callback dispatch failed", "callback_id", id, "error", err)
		writeReply(w, http.StatusInternalServerError, reply{Action: "error", Status: err.Error()})
		return
	}

	writeReply(w, http.StatusOK, reply{Action: "reload", Status: "ok"})
}

// runClosure invokes action.Closure, converting a panic into the same
// error path as a returned error (spec §7 "callback-dispatch failure:
// user callback throws → 500").
func (h *Handler) runClosure(action callback.Action) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = panicError{rec}
		}
	}()
	return action.Closure()
}

type panicError struct{ v any }

func (p panicError) Error() string { return "callback panicked" }

func writeReply(w http.ResponseWriter, status int, body reply) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
