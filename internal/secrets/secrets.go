// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads NCBI credentials from a directory of plain-text files.
// Each file in the directory represents one value: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: ncbi-api-key, ncbi-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	apiKeyFile = "ncbi-api-key"
	emailFile  = "ncbi-email"
)

// Secrets holds the E-utilities credentials found in the secrets directory.
// Both fields are optional: without an API key NCBI allows 3 requests per
// second, with one it allows 10.
type Secrets struct {
	APIKey string
	Email  string
}

// Load reads the known secret files from dir. A missing directory or
// missing files are not errors; Load returns zero values. Unreadable files
// produce a warning on stderr but do not abort.
func Load(dir string) (Secrets, error) {
	var s Secrets

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s.APIKey = readSecret(filepath.Join(dir, apiKeyFile))
	s.Email = readSecret(filepath.Join(dir, emailFile))
	return s, nil
}

// readSecret returns the trimmed contents of path, or "" if the file is
// missing or unreadable.
func readSecret(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", filepath.Base(path), err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}
