package domain_test

import (
	"encoding/json"
	"testing"

	"go.trai.ch/natdeps/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	s1 := "viennarna"
	s2 := "viennarna"

	is1 := domain.NewInternedString(s1)
	is2 := domain.NewInternedString(s2)

	// Verify that the underlying handles are equal
	if is1.Value() != is2.Value() {
		t.Errorf("Expected handles to be equal for identical strings, got %v and %v", is1.Value(), is2.Value())
	}

	if is1.String() != s1 {
		t.Errorf("Expected String() to return %q, got %q", s1, is1.String())
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString

	if !zero.IsZero() {
		t.Error("Expected zero InternedString to report IsZero")
	}
	if zero.String() != "" {
		t.Errorf("Expected zero InternedString to render empty, got %q", zero.String())
	}
	if domain.NewInternedString("").IsZero() {
		t.Error("Expected an interned empty string to be distinct from the zero value")
	}
}

func TestInternedStringJSON(t *testing.T) {
	type entry struct {
		Name    domain.InternedString `json:"name"`
		Version domain.InternedString `json:"version"`
	}

	original := entry{
		Name:    domain.NewInternedString("melting"),
		Version: domain.NewInternedString("4.3"),
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Failed to marshal struct: %v", err)
	}

	expectedJSON := `{"name":"melting","version":"4.3"}`
	if string(data) != expectedJSON {
		t.Errorf("Expected JSON %q, got %q", expectedJSON, string(data))
	}

	var decoded entry
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal struct: %v", err)
	}

	if decoded.Name != original.Name || decoded.Version != original.Version {
		t.Errorf("Expected %v, got %v", original, decoded)
	}
}
