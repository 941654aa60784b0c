package webview

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/vbncursed/vkr/wallet-service/internal/errors"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		raw  string
		kind error
	}{
		{"https://example.com/card", nil},
		{"http://localhost:8080", nil},
		{"", apperrors.ErrMissingField},
		{"/relative/path", apperrors.ErrInvalidField},
		{"javascript:alert(1)", apperrors.ErrInvalidField},
		{"ftp://example.com/file", apperrors.ErrInvalidField},
		{"https://", apperrors.ErrInvalidField},
	}
	for _, tt := range tests {
		_, err := Validate(tt.raw)
		if tt.kind == nil && err != nil {
			t.Errorf("Validate(%q) = %v, want ok", tt.raw, err)
		}
		if tt.kind != nil && !errors.Is(err, tt.kind) {
			t.Errorf("Validate(%q) = %v, want %v", tt.raw, err, tt.kind)
		}
	}
}

func TestRender(t *testing.T) {
	body, err := Render("https://example.com/?a=1&b=<x>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(body)
	if !strings.Contains(html, `<iframe id="frame" src="https://example.com/?a=1&amp;b=`) {
		t.Fatalf("iframe src not escaped as expected:\n%s", html)
	}
	if !strings.Contains(html, `data-load="/api/v1/view/load"`) {
		t.Fatal("load callback path missing")
	}
	if strings.Contains(html, "<x>") {
		t.Fatal("raw markup leaked into page")
	}
}
