// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package hrclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/hrops/hrops-go/internal/model"
)

// FileClient talks to the core service's document endpoints. Uploads go out
// as multipart form data; listings come back in the service's page envelope.
type FileClient struct {
	client *Client
}

// NewFileClient creates the document client on the core service.
func NewFileClient(c *Client) *FileClient {
	return &FileClient{client: c}
}

// Upload sends one document as a multipart request, tagged with the
// uploading user's name.
func (f *FileClient) Upload(ctx context.Context, fileName string, content io.Reader, uploadedBy string) error {
	token := f.client.token(ctx)
	if token == "" {
		return ErrNoToken
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("building upload form: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("reading upload content: %w", err)
	}
	if err := mw.WriteField("uploadedBy", uploadedBy); err != nil {
		return fmt.Errorf("building upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.client.baseURL+"/file/upload", &buf)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := f.client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	return nil
}

// Filter returns one page of documents matching the filter. Page numbers are
// zero-based on the wire.
func (f *FileClient) Filter(ctx context.Context, page, size int, sortBy, sortDir string, filter model.FileFilter) (model.Page[model.FileDocument], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	if sortBy != "" {
		q.Set("sortBy", sortBy)
	}
	if sortDir != "" {
		q.Set("sortDir", sortDir)
	}
	if filter.FileName != "" {
		q.Set("fileName", filter.FileName)
	}
	if filter.UploadedBy != "" {
		q.Set("uploadedBy", filter.UploadedBy)
	}
	if filter.StartDate != "" {
		q.Set("startDate", filter.StartDate)
	}
	if filter.EndDate != "" {
		q.Set("endDate", filter.EndDate)
	}

	var out model.Page[model.FileDocument]
	if err := f.client.do(ctx, http.MethodGet, "/file/filter?"+q.Encode(), nil, &out); err != nil {
		if IsNotFound(err) {
			return model.Page[model.FileDocument]{}, nil
		}
		return model.Page[model.FileDocument]{}, err
	}
	return out, nil
}

// Delete removes a document by id.
func (f *FileClient) Delete(ctx context.Context, id int64) error {
	return f.client.do(ctx, http.MethodDelete, "/file/delete/"+strconv.FormatInt(id, 10), nil, nil)
}
