package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByKind(t *testing.T) {
	err := MissingField("serialNumber")
	if !stderrors.Is(err, ErrMissingField) {
		t.Fatal("expected MissingField to match sentinel")
	}
	if stderrors.Is(err, ErrNotFound) {
		t.Fatal("did not expect MissingField to match NotFound")
	}
	wrapped := fmt.Errorf("build: %w", err)
	if !stderrors.Is(wrapped, ErrMissingField) {
		t.Fatal("expected wrapped error to match sentinel")
	}
	if got := FieldOf(wrapped); got != "serialNumber" {
		t.Fatalf("expected field serialNumber, got %q", got)
	}
}

func TestPlatformCallUsesCauseMessage(t *testing.T) {
	err := PlatformCall(stderrors.New("connection refused"))
	if err.Error() != "connection refused" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if KindOf(err) != KindPlatformCallFailed {
		t.Fatalf("unexpected kind %q", KindOf(err))
	}
}

func TestPlatformCallKeepsTypedCause(t *testing.T) {
	err := PlatformCall(NotFound("Pass not found"))
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected typed cause to keep its kind, got %q", KindOf(err))
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"plain", stderrors.New("boom"), KindUnknown},
		{"unsupported", Unsupported("x"), KindUnsupportedOnPlatform},
		{"stub", NotYetImplemented("x"), KindNotYetImplemented},
		{"invalid", InvalidField("passStyle", "poster"), KindInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPlatformCallKeepsWrappingContext(t *testing.T) {
	inner := NotFound("object not found")
	err := PlatformCall(fmt.Errorf("get issuer.object123: %w", inner))
	if err.Error() != "get issuer.object123: object not found" {
		t.Fatalf("outer context lost: %q", err.Error())
	}
	if KindOf(err) != KindNotFound || !stderrors.Is(err, ErrNotFound) {
		t.Fatalf("expected kind %q, got %q", KindNotFound, KindOf(err))
	}
	if PlatformCall(inner) != inner {
		t.Fatal("unwrapped typed error must pass through")
	}

	field := PlatformCall(fmt.Errorf("patch: %w", InvalidField("barcode", "string")))
	if FieldOf(field) != "barcode" || KindOf(field) != KindInvalidField {
		t.Fatalf("field lost: %+v", field)
	}
}
