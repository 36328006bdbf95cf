// Package fs provides file-based storage for scraped sentences.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tagscrape"
)

// ModulePrefix precedes the JSON object in a saved file so that the file
// can be loaded as a CommonJS data module.
const ModulePrefix = "module.exports = "

// document is the object serialized after ModulePrefix.
type document struct {
	Sentences []string `json:"sentences"`
}

// FormatSentences returns the file content for sentences.
// HTML characters are not escaped and a nil slice is written as [].
func FormatSentences(sentences []string) ([]byte, error) {
	if sentences == nil {
		sentences = []string{}
	}

	var buf bytes.Buffer
	buf.WriteString(ModulePrefix)
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(document{Sentences: sentences}); err != nil {
		return nil, err
	}
	// Encode terminates the value with a newline.
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ParseSentences extracts the sentences from content produced by FormatSentences.
func ParseSentences(content []byte) ([]string, error) {
	s := strings.TrimSpace(string(content))
	s, ok := strings.CutPrefix(s, strings.TrimSpace(ModulePrefix))
	if !ok {
		return nil, tagscrape.Errorf(tagscrape.EINVALID, "missing %q prefix", strings.TrimSpace(ModulePrefix))
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), ";")

	var doc document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		return nil, tagscrape.Errorf(tagscrape.EINVALID, "invalid sentences document: %v", err)
	}
	return doc.Sentences, nil
}

// ReadSentences reads a file written by Writer.
// Returns ENOTFOUND if the file does not exist.
func ReadSentences(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, tagscrape.Errorf(tagscrape.ENOTFOUND, "sentences file %q not found", path)
	} else if err != nil {
		return nil, err
	}
	return ParseSentences(content)
}

// Ensure Writer implements tagscrape.SentenceWriter at compile time.
var _ tagscrape.SentenceWriter = (*Writer)(nil)

// Writer writes sentences to files, replacing any previous content.
// Content is written to a temporary file next to the destination and
// renamed over it, so readers never observe a partial file.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteSentences writes sentences to dest as a complete overwrite.
func (w *Writer) WriteSentences(ctx context.Context, dest string, sentences []string) error {
	if dest == "" {
		return tagscrape.Errorf(tagscrape.EINVALID, "destination path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := FormatSentences(sentences)
	if err != nil {
		return err
	}

	// Each write gets its own temp file so concurrent writers to one
	// destination never share it.
	f, err := os.CreateTemp(filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := writeTemp(f, content); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func writeTemp(f *os.File, content []byte) error {
	if _, err := f.Write(content); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Chmod(0644); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
