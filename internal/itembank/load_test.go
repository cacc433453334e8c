package itembank

import (
	"errors"
	"strings"
	"testing"
)

const validBankJSON = `{
  "model": "2PL",
  "items": [
    {"id": "i1", "a": 1.2, "b": -0.5, "domain": "verbal", "text": "First question"},
    {"id": "i2", "a": 0.9, "b": 0.3, "domain": "numeric"},
    {"id": "i3", "a": null, "b": null}
  ]
}`

func TestLoadValidBank(t *testing.T) {
	bank, err := Load(strings.NewReader(validBankJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bank.Size() != 3 {
		t.Fatalf("size = %d, want 3", bank.Size())
	}

	i1, ok := bank.Get("i1")
	if !ok {
		t.Fatal("item i1 missing")
	}
	if !i1.Model.Scorable() {
		t.Error("i1 should be scorable")
	}
	if i1.Domain != "verbal" {
		t.Errorf("i1 domain = %q, want verbal", i1.Domain)
	}

	i3, _ := bank.Get("i3")
	if i3.Model.Scorable() {
		t.Error("i3 has null parameters, should be unscorable")
	}
}

func TestLoadGradedBank(t *testing.T) {
	src := `{
	  "model": "GRM",
	  "items": [
	    {"id": "g1", "a": 1.4, "thresholds": [-1.5, 0.0, 1.5]},
	    {"id": "g2", "a": 1.0, "thresholds": [-0.5, null, 2.0]}
	  ]
	}`
	bank, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	g1, _ := bank.Get("g1")
	if got := g1.Model.Categories(); got != 4 {
		t.Errorf("g1 categories = %d, want 4", got)
	}
	g2, _ := bank.Get("g2")
	if g2.Model.Scorable() {
		t.Error("g2 has a null threshold, should be unscorable")
	}
}

func TestLoadRejections(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not json", `{model:`},
		{"unknown model", `{"model": "4PL", "items": []}`},
		{"missing items", `{"model": "1PL"}`},
		{"missing id", `{"model": "1PL", "items": [{"b": 0.1}]}`},
		{"grm without thresholds", `{"model": "GRM", "items": [{"id": "g1", "a": 1.0}]}`},
		{"thresholds on 2pl", `{"model": "2PL", "items": [{"id": "i1", "a": 1, "b": 0, "thresholds": [0.5]}]}`},
		{"bad discrimination", `{"model": "2PL", "items": [{"id": "i1", "a": -1, "b": 0}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.src))
			var schemaErr *SchemaError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("expected *SchemaError, got %v", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/does-not-exist.json")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		t.Fatal("missing file should not be a schema error")
	}
}
