// Copyright 2025 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import "net/http"

// PaginationKey is used to store pagination parameters in the context.
type PaginationKey string

const (
	PageKey    PaginationKey = "page"
	PerPageKey PaginationKey = "per_page"
)

// getPagination reads pagination parameters from the request context,
// as set by the paginate middleware; defaults apply when absent.
func getPagination(r *http.Request) (page, perPage int) {
	page, perPage = 1, 20
	if p, ok := r.Context().Value(PageKey).(int); ok {
		page = p
	}
	if pp, ok := r.Context().Value(PerPageKey).(int); ok {
		perPage = pp
	}
	return page, perPage
}
