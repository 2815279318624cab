package extract

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"
)

// Extractor pulls plain text out of an uploaded book file.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType string) (string, error)
}

// PlainText passes UTF-8 uploads through unchanged. It is the offline/dev
// driver and the one used by tests.
type PlainText struct{}

func NewPlainText() *PlainText { return &PlainText{} }

func (PlainText) Extract(_ context.Context, data []byte, _ string) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty file")
	}
	if !utf8.Valid(data) {
		return "", errors.New("file is not valid UTF-8 text")
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", errors.New("file contains no text")
	}
	return text, nil
}
