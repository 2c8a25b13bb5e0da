// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "fmt"

// FileDocument mirrors the file service's stored-document record.
type FileDocument struct {
	ID          int64  `json:"id"`
	FileName    string `json:"fileName"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize"`
	UploadedBy  string `json:"uploadedBy"`
	CreatedDate string `json:"createdDate"`
}

// SizeLabel renders the byte count in a human-readable unit.
func (f FileDocument) SizeLabel() string {
	const unit = 1024
	if f.FileSize < unit {
		return fmt.Sprintf("%d B", f.FileSize)
	}
	div, exp := int64(unit), 0
	for n := f.FileSize / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(f.FileSize)/float64(div), "KMGTPE"[exp])
}

// Page is the page envelope the file service's filter endpoint returns.
type Page[T any] struct {
	Content    []T `json:"content"`
	TotalPages int `json:"totalPages"`
}

// FileFilter carries the optional filter parameters for document listings.
type FileFilter struct {
	FileName   string
	UploadedBy string
	StartDate  string
	EndDate    string
}

// IsZero reports whether no filter field is set.
func (f FileFilter) IsZero() bool {
	return f.FileName == "" && f.UploadedBy == "" && f.StartDate == "" && f.EndDate == ""
}
