// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationBasics(t *testing.T) {
	p := BuildPagination(3, 10, "/documents", nil)

	assert.Equal(t, 3, p.CurrentPage)
	assert.Equal(t, 10, p.TotalPages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)
	assert.Equal(t, "/documents?page=2", p.PrevURL())
	assert.Equal(t, "/documents?page=4", p.NextURL())
	assert.True(t, p.ShouldShow())
}

func TestBuildPaginationSinglePage(t *testing.T) {
	p := BuildPagination(1, 1, "/documents", nil)

	assert.False(t, p.HasPrev)
	assert.False(t, p.HasNext)
	assert.False(t, p.ShouldShow())
	assert.Len(t, p.Pages, 1)
}

func TestBuildPaginationClampsCurrentPage(t *testing.T) {
	p := BuildPagination(99, 4, "/documents", nil)
	assert.Equal(t, 4, p.CurrentPage)

	p = BuildPagination(0, 4, "/documents", nil)
	assert.Equal(t, 1, p.CurrentPage)
}

func TestBuildPaginationEllipsis(t *testing.T) {
	p := BuildPagination(10, 20, "/documents", nil)

	// First page, ellipsis, window around current, ellipsis, last page.
	assert.Equal(t, 1, p.Pages[0].Number)
	assert.True(t, p.Pages[1].IsEllipsis)
	last := p.Pages[len(p.Pages)-1]
	assert.Equal(t, 20, last.Number)
	assert.True(t, p.Pages[len(p.Pages)-2].IsEllipsis)

	var current int
	for _, page := range p.Pages {
		if page.IsCurrent {
			current = page.Number
		}
	}
	assert.Equal(t, 10, current)
}

func TestBuildPaginationPreservesFilters(t *testing.T) {
	params := url.Values{}
	params.Set("fileName", "handbook")
	params.Set("page", "3") // must be stripped
	params.Set("empty", "")

	p := BuildPagination(1, 5, "/documents", params)

	assert.Contains(t, p.PageURL(2), "fileName=handbook")
	assert.Contains(t, p.PageURL(2), "page=2")
	assert.NotContains(t, p.QueryString, "page=3")
	assert.NotContains(t, p.QueryString, "empty")
}
