package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "linkfix.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "linkfix.yaml" {
			t.Errorf("expected context file=linkfix.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		inner := ValidationError("root is not a directory").Build()
		wrapped := fmt.Errorf("run: %w", inner)

		if !IsClassified(wrapped) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(wrapped, CategoryValidation) {
			t.Error("expected validation category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified errors to report internal category")
		}
	})

	t.Run("Cause unwrapping", func(t *testing.T) {
		err := WrapError(fs.ErrPermission, CategoryFileSystem, "write failed").Build()

		if !errors.Is(err, fs.ErrPermission) {
			t.Error("expected errors.Is to find the wrapped cause")
		}
		if err.IsFatal() {
			t.Error("per-file errors should not be fatal by default")
		}
	})
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := FileSystemError("read failed").WithContext("path", "a.md").Build()
	derived := base.WithContext("op", "read")

	if _, ok := base.Context().Get("op"); ok {
		t.Error("original error context was mutated")
	}
	if op, _ := derived.Context().GetString("op"); op != "read" {
		t.Errorf("expected op=read, got %q", op)
	}
	if path, _ := derived.Context().GetString("path"); path != "a.md" {
		t.Errorf("expected path to carry over, got %q", path)
	}
}

func TestClassifiedErrorIs(t *testing.T) {
	a := RuntimeError("run canceled").Build()
	b := RuntimeError("run canceled").WithContext("files", 3).Build()

	if !errors.Is(a, b) {
		t.Error("errors with same category and message should match")
	}
	if errors.Is(a, ConfigError("run canceled").Build()) {
		t.Error("errors with different categories should not match")
	}
}
