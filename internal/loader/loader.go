// Package loader reads source documents from the local filesystem. It is
// the document source collaborator: the retrieval core never fetches or
// parses files itself.
package loader

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"docsearch/internal/domain"
)

// Load expands each path as a glob and reads every supported file into a
// document. Files with unsupported extensions are skipped and returned in
// the second value so callers can report them.
func Load(paths []string) ([]domain.Document, []string, error) {
	var documents []domain.Document
	var skipped []string
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			sourceType, ok := typeForPath(m)
			if !ok {
				skipped = append(skipped, m)
				continue
			}
			content, err := readFile(m, sourceType)
			if err != nil {
				return nil, nil, fmt.Errorf("loading %s: %w", m, err)
			}
			documents = append(documents, domain.Document{
				SourceID:   hashString(m),
				SourceType: sourceType,
				Title:      titleForPath(m),
				Content:    content,
			})
		}
	}
	return documents, skipped, nil
}

func typeForPath(path string) (domain.SourceType, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return domain.SourceText, true
	case ".md", ".markdown":
		return domain.SourceMarkdown, true
	case ".pdf":
		return domain.SourcePDF, true
	default:
		return "", false
	}
}

func titleForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func readFile(path string, sourceType domain.SourceType) (string, error) {
	if sourceType == domain.SourcePDF {
		return extractPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	body, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
