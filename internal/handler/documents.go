// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hrops/hrops-go/internal/hrclient"
	"github.com/hrops/hrops-go/internal/model"
)

const (
	documentsPerPage   = 10
	maxUploadSizeBytes = 32 << 20
)

var documentSortFields = map[string]bool{
	"fileName":    true,
	"fileType":    true,
	"fileSize":    true,
	"uploadedBy":  true,
	"createdDate": true,
}

// Documents lists uploaded documents with server-side paging, sorting and
// filtering.
func (h *Handler) Documents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	sortBy := q.Get("sortBy")
	if !documentSortFields[sortBy] {
		sortBy = "createdDate"
	}
	sortDir := q.Get("sortDir")
	if sortDir != "asc" {
		sortDir = "desc"
	}
	filter := model.FileFilter{
		FileName:   strings.TrimSpace(q.Get("fileName")),
		UploadedBy: strings.TrimSpace(q.Get("uploadedBy")),
		StartDate:  strings.TrimSpace(q.Get("startDate")),
		EndDate:    strings.TrimSpace(q.Get("endDate")),
	}

	var errMsg string
	result, err := h.clients.Files.Filter(r.Context(), page-1, documentsPerPage, sortBy, sortDir, filter)
	if err != nil {
		if errors.Is(err, hrclient.ErrNoToken) {
			http.Redirect(w, r, redirectLogin, http.StatusSeeOther)
			return
		}
		h.logger.Warn("document filter failed", "error", err)
		errMsg = remoteErrorMessage(err)
	}

	params := url.Values{}
	for _, k := range []string{"sortBy", "sortDir", "fileName", "uploadedBy", "startDate", "endDate"} {
		if v := q.Get(k); v != "" {
			params.Set(k, v)
		}
	}

	data := map[string]any{
		"Documents":  result.Content,
		"Error":      errMsg,
		"Filter":     filter,
		"SortBy":     sortBy,
		"SortDir":    sortDir,
		"Pagination": BuildPagination(page, result.TotalPages, RouteDocuments, params),
	}
	if err := h.renderer.Render(w, r, "pages/documents", h.pageData(r, "Documents", data)); err != nil {
		h.logAndInternalError(w, err, "rendering documents page")
	}
}

// DocumentUpload accepts a multipart upload and forwards it to the file
// service tagged with the session username.
func (h *Handler) DocumentUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSizeBytes); err != nil {
		h.flashError(w, r, RouteDocuments, "Invalid upload or file too large")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.flashError(w, r, RouteDocuments, "Select a file to upload")
		return
	}
	defer file.Close()

	username := h.session.Username(r.Context())
	if err := h.clients.Files.Upload(r.Context(), header.Filename, file, username); err != nil {
		h.failRemote(w, r, RouteDocuments, err)
		return
	}
	h.flashSuccess(w, r, RouteDocuments, "File uploaded successfully")
}

// DocumentDelete deletes an uploaded document.
func (h *Handler) DocumentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		h.flashError(w, r, RouteDocuments, "Invalid document ID")
		return
	}
	if err := h.clients.Files.Delete(r.Context(), id); err != nil {
		h.failRemote(w, r, RouteDocuments, err)
		return
	}
	h.flashSuccess(w, r, RouteDocuments, "File deleted successfully")
}
