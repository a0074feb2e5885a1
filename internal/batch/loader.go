// =============================================================================
// QRMS Invoice Export - Batch Document Loader
// =============================================================================
//
// This file loads batch documents from disk. A batch document is the
// serialized form state of one QRMS invoice request: YAML (.yaml/.yml) is
// the primary format, JSON (.json) is accepted for documents produced by
// other tooling. The loader only deserializes; well-formedness is the
// validation engine's job, so a structurally decodable but rule-violating
// document loads fine and fails validation afterwards.
//
// =============================================================================

package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Extensions lists the batch document file extensions the loader accepts.
var Extensions = []string{".yaml", ".yml", ".json"}

// Load reads and decodes a single batch document.
//
// PARAMETERS:
//   - path: The path to the batch document file.
//
// RETURNS:
//   - A pointer to the decoded Batch.
//   - An error if the file cannot be read or decoded, or has an unsupported
//     extension.
func Load(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch document: %w", err)
	}

	var b Batch
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse batch document: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("failed to parse batch document: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported batch document extension: %s", filepath.Ext(path))
	}

	return &b, nil
}

// IsBatchDocument reports whether path has a batch document extension.
func IsBatchDocument(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}
