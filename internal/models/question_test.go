package models

import "testing"

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Category("SLEEP").Valid() {
		t.Error("expected unknown category to be invalid")
	}
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	if len(catalog) != 21 {
		t.Fatalf("expected 21 questions, got %d", len(catalog))
	}

	seen := make(map[string]bool)
	for _, q := range catalog {
		if seen[q.ID] {
			t.Errorf("duplicate id %q", q.ID)
		}
		seen[q.ID] = true
		if !q.Category.Valid() {
			t.Errorf("question %s has invalid category %q", q.ID, q.Category)
		}
		if q.Title == "" || q.Subtitle == "" {
			t.Errorf("question %s is missing text", q.ID)
		}
	}
}

func TestDefaultCatalog_FreshCopy(t *testing.T) {
	a := DefaultCatalog()
	a[0].IsActive = true
	b := DefaultCatalog()
	if b[0].IsActive {
		t.Error("DefaultCatalog should return an independent slice")
	}
}
