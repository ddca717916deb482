package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("record", "fittonia-albivenis.json")

	expected := "record with ID fittonia-albivenis.json not found"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("Expected errors.Is(err, ErrNotFound) to be true")
	}

	if !IsNotFound(err) {
		t.Error("Expected IsNotFound(err) to be true")
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("scientificName", 42, "must be a string")

	if !errors.Is(err, ErrInvalidInput) {
		t.Error("Expected errors.Is(err, ErrInvalidInput) to be true")
	}

	if !IsValidationError(err) {
		t.Error("Expected IsValidationError(err) to be true")
	}

	// Without field
	err2 := &ValidationError{Message: "bad input"}
	if err2.Error() != "validation failed: bad input" {
		t.Errorf("Unexpected message: %q", err2.Error())
	}
}

func TestMalformedRecordError(t *testing.T) {
	cause := errors.New("json: cannot unmarshal object into Go value of type string")
	err := NewMalformedRecordError("monstera.json", "scientificName", "not a string", cause)

	if !errors.Is(err, ErrMalformedRecord) {
		t.Error("Expected errors.Is(err, ErrMalformedRecord) to be true")
	}
	if !IsMalformedRecord(err) {
		t.Error("Expected IsMalformedRecord(err) to be true")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected unwrap chain to reach the cause")
	}

	expected := "malformed record monstera.json (field scientificName): not a string"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestIOError(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewIOError("write", "/catalog/records/pilea.json", cause)

	if !errors.Is(err, cause) {
		t.Error("Expected unwrap to return the cause")
	}

	expected := "IO error during write of /catalog/records/pilea.json: permission denied"
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestMergeError(t *testing.T) {
	cause := errors.New("write failed")
	err := NewMergeError("fittonia.json", []string{"nerve-plant.json"}, cause)

	if !errors.Is(err, cause) {
		t.Error("Expected unwrap to return the cause")
	}

	expected := fmt.Sprintf("merge error folding %v into fittonia.json: write failed", []string{"nerve-plant.json"})
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapIO("read", "x", nil) != nil {
		t.Error("WrapIO with nil error should return nil")
	}
	if WrapParse("json", "x", nil) != nil {
		t.Error("WrapParse with nil error should return nil")
	}
	if WrapResource("load", "catalog", "", nil) != nil {
		t.Error("WrapResource with nil error should return nil")
	}
	if WrapValidation("field", nil) != nil {
		t.Error("WrapValidation with nil error should return nil")
	}

	cause := errors.New("boom")
	wrapped := WrapParse("yaml", "synonyms.yaml", cause)
	var parseErr *ParseError
	if !errors.As(wrapped, &parseErr) {
		t.Fatal("Expected a *ParseError")
	}
	if parseErr.File != "synonyms.yaml" {
		t.Errorf("Expected file synonyms.yaml, got %s", parseErr.File)
	}
}
