// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi registers unary JSON handlers on the server mux. Handlers
// keep the func(ctx, *Req) (*Res, error) shape; this package owns decoding,
// encoding, and error mapping.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/curioswitch/fitchat/internal/fitchatdb"
)

// Post registers a handler for a JSON POST endpoint.
func Post[Req any, Res any](mux *chi.Mux, pattern string, handler func(context.Context, *Req) (*Res, error)) {
	mux.Post(pattern, func(w http.ResponseWriter, r *http.Request) {
		var req Req
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		serve(w, r, &req, handler)
	})
}

// Get registers a handler for a GET endpoint with no request body.
func Get[Res any](mux *chi.Mux, pattern string, handler func(context.Context) (*Res, error)) {
	mux.Get(pattern, func(w http.ResponseWriter, r *http.Request) {
		serve(w, r, &struct{}{}, func(ctx context.Context, _ *struct{}) (*Res, error) {
			return handler(ctx)
		})
	})
}

func serve[Req any, Res any](w http.ResponseWriter, r *http.Request, req *Req, handler func(context.Context, *Req) (*Res, error)) {
	ctx := r.Context()
	res, err := handler(ctx, req)
	if err != nil {
		status := http.StatusInternalServerError
		message := "internal error"
		switch {
		case errors.Is(err, fitchatdb.ErrNotFound):
			status = http.StatusNotFound
			message = "not found"
		case errors.Is(err, fitchatdb.ErrVersionConflict):
			status = http.StatusConflict
			message = "the plan changed underneath this request, reload and retry"
		default:
			slog.ErrorContext(ctx, "httpapi: handling request", "path", r.URL.Path, "error", err)
		}
		writeError(w, status, message)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		slog.ErrorContext(ctx, "httpapi: encoding response", "path", r.URL.Path, "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}
