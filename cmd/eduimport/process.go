// Copyright 2026 EduAI Labs. All rights reserved.
// Use of this source code is governed by a BSD-style license
// specified in the Github project LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/eduai/principal-server/pkg/api"
	"github.com/xeipuuv/gojsonschema"
)

// processFile validates a single legacy data.json file and uploads it
// to the import endpoint of the server.
func processFile(c Config, fileName string) error {
	log.Printf("Processing file: %s", fileName)

	inputFilePath := path.Join(c.InputPath, fileName)

	document, err := os.ReadFile(inputFilePath)
	if err != nil {
		return err
	}

	// validate the document before sending it over the wire;
	// the server validates again, this catches garbage early
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(api.LegacySchema),
		gojsonschema.NewBytesLoader(document))
	if err != nil {
		return err
	}
	if !result.Valid() {
		var details []string
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return fmt.Errorf("invalid legacy document: %s", strings.Join(details, "; "))
	}

	start := time.Now()

	// upload the document
	importUrl := strings.TrimSuffix(c.ServerUrl, "/") + "/api/import"
	req, err := http.NewRequest("POST", importUrl, bytes.NewReader(document))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.Username, c.Password)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("import rejected (%d): %s", resp.StatusCode, string(body))
	}

	elapsed := time.Since(start)
	log.Printf("Imported %s in %s: %s", fileName, elapsed.Round(time.Millisecond), string(body))

	// move the processed file out of the watched directory
	if c.ArchivePath != "" {
		archived := path.Join(c.ArchivePath, fileName)
		if err := os.Rename(inputFilePath, archived); err != nil {
			log.Errorf("Error archiving file %s: %v", fileName, err)
		}
	}

	return nil
}
