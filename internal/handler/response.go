// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/toast"
)

// flashAndRedirect sets a flash message and redirects. Used for
// one-shot messages that must survive the redirect.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, url, message, flashType string) {
	h.renderer.SetFlash(r, message, flashType)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// flashSuccess sets a success flash message and redirects.
func (h *Handler) flashSuccess(w http.ResponseWriter, r *http.Request, url, message string) {
	h.flashAndRedirect(w, r, url, message, "success")
}

// flashError sets an error flash message and redirects.
func (h *Handler) flashError(w http.ResponseWriter, r *http.Request, url, message string) {
	h.flashAndRedirect(w, r, url, message, "error")
}

// toastSuccess enqueues a success toast on the session's queue.
func (h *Handler) toastSuccess(r *http.Request, message string) {
	h.queue(r).Enqueue(toast.KindSuccess, message)
}

// toastError enqueues an error toast on the session's queue.
func (h *Handler) toastError(r *http.Request, message string) {
	h.queue(r).Enqueue(toast.KindError, message)
}

// parseFormOrRedirect parses the request form, flashing and redirecting on
// failure. Returns true when parsing succeeded.
func (h *Handler) parseFormOrRedirect(w http.ResponseWriter, r *http.Request, redirectURL string) bool {
	if err := r.ParseForm(); err != nil {
		h.flashError(w, r, redirectURL, "Invalid form data")
		return false
	}
	return true
}

// idParam extracts and parses the {id} URL parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// idPath appends a numeric id to a base route.
func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}

// remoteErrorMessage maps a remote call failure to the message shown to the
// operator. A missing token is not a message case; callers check
// hrclient.ErrNoToken first and bounce to the login page.
func remoteErrorMessage(err error) string {
	var apiErr *hrclient.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, hrclient.ErrNoResponse):
		return "No response from server"
	default:
		return "Something went wrong"
	}
}

// failRemote handles a failed remote mutation: no-token sessions go back to
// the login page, everything else flashes the mapped message and redirects
// to the given page so the row state the operator saw stays visible.
func (h *Handler) failRemote(w http.ResponseWriter, r *http.Request, redirectURL string, err error) {
	if errors.Is(err, hrclient.ErrNoToken) {
		http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
		return
	}
	h.flashError(w, r, redirectURL, remoteErrorMessage(err))
}

// logAndInternalError logs the error and responds with a 500.
func (h *Handler) logAndInternalError(w http.ResponseWriter, err error, logMsg string) {
	h.logger.Error(logMsg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// listResult is the outcome of a list fetch: rows plus an optional inline
// error line. A 404 from the service means "no rows", never an error.
type listResult[T any] struct {
	Rows     []T
	ErrorMsg string
}

// fetchList runs a list call and folds the error taxonomy into display
// state. Returns false when the session has no token and the caller must
// stop (a redirect has been written).
func fetchList[T any](h *Handler, w http.ResponseWriter, r *http.Request, fetch func() ([]T, error)) (listResult[T], bool) {
	rows, err := fetch()
	if err != nil {
		if errors.Is(err, hrclient.ErrNoToken) {
			http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
			return listResult[T]{}, false
		}
		h.logger.Warn("list fetch failed", "path", r.URL.Path, "error", err)
		return listResult[T]{ErrorMsg: remoteErrorMessage(err)}, true
	}
	return listResult[T]{Rows: rows}, true
}
