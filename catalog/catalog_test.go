/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	if got := len(c.Provinces()); got != 81 {
		t.Errorf("expected 81 provinces, got %d", got)
	}
	if len(c.Subjects()) < 50 {
		t.Errorf("expected at least 50 subjects, got %d", len(c.Subjects()))
	}

	for _, s := range c.Subjects() {
		if _, ok := c.Province(s.BirthProvince); !ok {
			t.Errorf("subject %q born in unknown province %q", s.ID, s.BirthProvince)
		}
		if s.DisplayName == "" || s.PhotoRef == "" || s.Category == "" {
			t.Errorf("subject %q is missing fields: %+v", s.ID, s)
		}
	}

	ankara, ok := c.Province("Ankara")
	if !ok {
		t.Fatal("Ankara not found")
	}
	if ankara.Coordinates[0] == 0 || ankara.Coordinates[1] == 0 {
		t.Errorf("Ankara has no coordinates: %+v", ankara)
	}
}

func TestResolve(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default failed: %v", err)
	}

	tests := map[string]string{
		"Ankara":    "Ankara",
		"Izmir":     "İzmir",
		"İzmit":     "Kocaeli",
		"Adapazarı": "Sakarya",
		"Afyon":     "Afyonkarahisar",
		"K. Maraş":  "",
		"Atlantis":  "",
		"":          "",
		"Şanlıurfa": "Şanlıurfa",
		"Sanliurfa": "Şanlıurfa",
	}

	for label, want := range tests {
		p, ok := c.Resolve(label)
		if want == "" {
			if ok {
				t.Errorf("Resolve(%q) = %q, want no match", label, p.Name)
			}
			continue
		}
		if !ok || p.Name != want {
			t.Errorf("Resolve(%q) = %q (%v), want %q", label, p.Name, ok, want)
		}
	}
}

func TestNewValidation(t *testing.T) {
	provinces := []Province{
		{Name: "A", Coordinates: Point{0, 0}},
		{Name: "B", Coordinates: Point{1, 0}},
		{Name: "C", Coordinates: Point{2, 0}},
		{Name: "D", Coordinates: Point{3, 0}},
	}
	subjects := []Subject{{ID: "x", DisplayName: "X", BirthProvince: "A"}}

	if _, err := New(provinces[:3], subjects); !errors.Is(err, ErrTooFewProvinces) {
		t.Errorf("expected ErrTooFewProvinces, got %v", err)
	}
	if _, err := New(provinces, nil); !errors.Is(err, ErrNoSubjects) {
		t.Errorf("expected ErrNoSubjects, got %v", err)
	}
	if _, err := New(provinces, append(subjects, subjects[0])); !errors.Is(err, ErrDuplicateSubject) {
		t.Errorf("expected ErrDuplicateSubject, got %v", err)
	}
	if _, err := New(append(provinces, provinces[0]), subjects); err == nil {
		t.Error("expected duplicate province error")
	}
	if _, err := New(provinces, subjects); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewCanonicalBirthProvince(t *testing.T) {
	provinces := []Province{
		{Name: "İzmir", Coordinates: Point{27.14, 38.42}},
		{Name: "Bursa", Coordinates: Point{29.06, 40.18}},
		{Name: "Van", Coordinates: Point{43.38, 38.49}},
		{Name: "Edirne", Coordinates: Point{26.56, 41.68}},
		{Name: "Afyonkarahisar", Coordinates: Point{30.54, 38.76}},
	}

	c, err := New(provinces, []Subject{
		{ID: "a", DisplayName: "A", BirthProvince: "Izmir"},
		{ID: "b", DisplayName: "B", BirthProvince: "Afyon"},
		{ID: "c", DisplayName: "C", BirthProvince: "Van"},
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []string{"İzmir", "Afyonkarahisar", "Van"}
	for i, s := range c.Subjects() {
		if s.BirthProvince != want[i] {
			t.Errorf("subject %q stored with province %q, want %q", s.ID, s.BirthProvince, want[i])
		}
	}

	_, err = New(provinces, []Subject{{ID: "x", DisplayName: "X", BirthProvince: "Nowhere"}})
	if !errors.Is(err, ErrUnknownProvince) {
		t.Errorf("expected ErrUnknownProvince, got %v", err)
	}
}

func TestResolvePrefersFoldedName(t *testing.T) {
	provinces := []Province{
		{Name: "Vanköy", Coordinates: Point{0, 0}},
		{Name: "Van", Coordinates: Point{1, 0}},
		{Name: "Bursa", Coordinates: Point{2, 0}},
		{Name: "Edirne", Coordinates: Point{3, 0}},
	}

	c, err := New(provinces, []Subject{{ID: "x", DisplayName: "X", BirthProvince: "VAN"}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := c.Subjects()[0].BirthProvince; got != "Van" {
		t.Errorf("birth province = %q, want Van", got)
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		provincesFile: {Data: []byte(`
- {name: A, coordinates: [0, 0]}
- {name: B, coordinates: [3, 4]}
- {name: C, coordinates: [6, 8]}
- {name: D, coordinates: [9, 12]}
`)},
		subjectsFile: {Data: []byte(`
- {id: one, name: One, category: music, photo: one.jpg, birth_province: B}
`)},
	}

	c, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	a, _ := c.Province("A")
	b, _ := c.Province("B")
	if d := a.Coordinates.Distance(b.Coordinates); d != 5 {
		t.Errorf("expected distance 5, got %v", d)
	}
	if s := c.Subjects()[0]; s.DisplayName != "One" || s.BirthProvince != "B" || s.PhotoRef != "one.jpg" {
		t.Errorf("unexpected subject: %+v", s)
	}
}

func TestLoadDirMissingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, provincesFile), []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadDir(dir); err == nil {
		t.Error("expected error for missing celebrities file")
	}
}
