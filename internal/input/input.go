// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package input reads submission text from flags, files and standard input.
package input

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ReadText resolves the submission text. An explicit text wins, then the file at
// path ("-" reads stdin), then stdin. Pass a nil stdin when nothing is piped.
func ReadText(text, path string, stdin io.Reader) (string, error) {
	if text != "" {
		return text, nil
	}
	if path == "-" || (path == "" && stdin != nil) {
		if stdin == nil {
			return "", fmt.Errorf("no input: provide --text, --file, or pipe text on stdin")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	if path == "" {
		return "", fmt.Errorf("no input: provide --text, --file, or pipe text on stdin")
	}
	return ReadFile(path)
}

// ReadFile returns the text content of path. PDF files are converted to plain
// text page by page; any other file is read as UTF-8 text.
func ReadFile(path string) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return readPDF(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func readPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("no extractable text in pdf %s", path)
	}
	return b.String(), nil
}
