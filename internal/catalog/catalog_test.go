package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogOrder(t *testing.T) {
	c := Default()

	expected := []string{"STEM", "Arts", "Business", "Healthcare", "Education", "Sports"}
	names := c.Names()
	if len(names) != len(expected) {
		t.Fatalf("expected %d categories, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("category #%d: expected %q, got %q", i, expected[i], names[i])
		}
	}

	for _, category := range c.Categories() {
		if len(category.Roadmap) != 5 {
			t.Fatalf("%s: expected 5 roadmap stages, got %d", category.Name, len(category.Roadmap))
		}
		if category.Description == "" {
			t.Fatalf("%s: empty description", category.Name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	entry := Default().Lookup("Astrology")
	if entry.Description != NoDescription {
		t.Fatalf("unexpected description: %q", entry.Description)
	}
	if len(entry.Roles) != 0 || len(entry.Roadmap) != 0 {
		t.Fatalf("expected empty roles and roadmap, got %+v", entry)
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	c := Default()
	entry := c.Lookup("STEM")
	if entry.Roles[0] != "Software Engineer" {
		t.Fatalf("unexpected first role: %q", entry.Roles[0])
	}

	entry.Roles[0] = "mutated"
	entry.Roadmap[0] = "mutated"

	again := c.Lookup("STEM")
	if again.Roles[0] != "Software Engineer" || again.Roadmap[0] == "mutated" {
		t.Fatalf("catalog was mutated through lookup result: %+v", again)
	}
}

func TestNewValidation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		categories []Category
		wantErr    string
	}{
		{name: "empty", categories: nil, wantErr: "at least one category"},
		{name: "blank name", categories: []Category{{Name: " ", Keywords: []string{"x"}}}, wantErr: "empty name"},
		{
			name: "duplicate",
			categories: []Category{
				{Name: "A", Keywords: []string{"x"}},
				{Name: "A", Keywords: []string{"y"}},
			},
			wantErr: "defined twice",
		},
		{name: "no keywords", categories: []Category{{Name: "A", Keywords: []string{"  "}}}, wantErr: "no keywords"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(tc.categories)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestNewNormalizesKeywords(t *testing.T) {
	c, err := New([]Category{{Name: "Ops", Keywords: []string{" Kubernetes ", "", "LINUX"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	category, ok := c.Get("Ops")
	if !ok {
		t.Fatal("expected Ops to be present")
	}
	if strings.Join(category.Keywords, ",") != "kubernetes,linux" {
		t.Fatalf("unexpected keywords: %v", category.Keywords)
	}

	if entry := c.Lookup("Ops"); entry.Description != NoDescription {
		t.Fatalf("expected fallback description, got %q", entry.Description)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `categories:
  - name: Culinary
    keywords: [cooking, baking]
    description: Food.
    roles: [Chef]
    roadmap: [Apprentice, Chef]
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entry := c.Lookup("Culinary")
	if entry.Description != "Food." || len(entry.Roles) != 1 || len(entry.Roadmap) != 2 {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromConfig(t *testing.T) {
	raw := map[string]any{
		"categories": []any{
			map[string]any{
				"name":        "Law",
				"keywords":    []any{"law", "justice"},
				"description": "Legal careers.",
				"roles":       []any{"Lawyer", "Paralegal"},
				"roadmap":     []any{"Law school", "Associate", "Partner"},
			},
		},
	}

	c, err := FromConfig(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if c.Len() != 1 {
		t.Fatalf("expected 1 category, got %d", c.Len())
	}

	category, _ := c.Get("Law")
	if len(category.Keywords) != 2 || category.Roadmap[2] != "Partner" {
		t.Fatalf("unexpected category: %+v", category)
	}
}
