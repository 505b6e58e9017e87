// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/eduai/principal-server/pkg/stor"
)

const placeholderPage = `<h1>EduAI Principal</h1><p>Place index.html in the resources folder.</p>`

// LandingPage serves the landing page from the resources directory,
// or a minimal placeholder when index.html is absent.
// Each hit is recorded as a page view.
func (a *APICtrl) LandingPage(w http.ResponseWriter, r *http.Request) {

	a.recordEvent(stor.EVENT_PAGE_VIEW, "")

	indexPath := filepath.Join(a.Config.Resources, "index.html")
	if a.Config.Resources == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(placeholderPage))
		return
	}
	if _, err := os.Stat(indexPath); err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(placeholderPage))
		return
	}

	http.ServeFile(w, r, indexPath)
}
