package extract

import (
	"context"
	"testing"
)

func TestPlainTextExtract(t *testing.T) {
	e := NewPlainText()
	got, err := e.Extract(context.Background(), []byte("  some book text \n"), "text/plain")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "some book text" {
		t.Errorf("got %q", got)
	}
}

func TestPlainTextExtractRejects(t *testing.T) {
	e := NewPlainText()
	cases := map[string][]byte{
		"empty file":      nil,
		"invalid utf-8":   {0xff, 0xfe, 0x00},
		"whitespace only": []byte("   \n\t "),
	}
	for name, data := range cases {
		if _, err := e.Extract(context.Background(), data, ""); err == nil {
			t.Errorf("%s: want error", name)
		}
	}
}
