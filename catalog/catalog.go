/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package catalog holds the static province and celebrity datasets the quiz
// draws from, and the fuzzy rule used to match map region labels against
// province names.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	provincesFile = "provinces.yaml"
	subjectsFile  = "celebrities.yaml"
)

// MinProvinces is the smallest province catalog that can fill an option set.
const MinProvinces = 4

var (
	ErrTooFewProvinces  = errors.New("catalog needs at least 4 provinces")
	ErrNoSubjects       = errors.New("catalog has no subjects")
	ErrDuplicateSubject = errors.New("duplicate subject id")
	ErrUnknownProvince  = errors.New("birth province matches no catalog province")
)

//go:embed data/*.yaml
var data embed.FS

// Point is a position in the province coordinate space. The projection is
// arbitrary; only relative distances are used.
type Point [2]float64

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p[0]-q[0], p[1]-q[1])
}

type Province struct {
	Name        string `yaml:"name" json:"name"`
	Coordinates Point  `yaml:"coordinates" json:"coordinates"`
}

// Subject is a celebrity whose birth province is the answer to a question.
type Subject struct {
	ID            string `yaml:"id" json:"id"`
	DisplayName   string `yaml:"name" json:"name"`
	Category      string `yaml:"category" json:"category"`
	PhotoRef      string `yaml:"photo" json:"photo"`
	BirthProvince string `yaml:"birth_province" json:"birth_province"`
}

// Catalog is read-only once loaded and safe to share between sessions.
type Catalog struct {
	provinces []Province
	subjects  []Subject
	byName    map[string]int
}

// New validates the given datasets and builds a catalog from them.
func New(provinces []Province, subjects []Subject) (*Catalog, error) {
	if len(provinces) < MinProvinces {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewProvinces, len(provinces))
	}
	if len(subjects) == 0 {
		return nil, ErrNoSubjects
	}

	c := &Catalog{
		provinces: make([]Province, len(provinces)),
		subjects:  make([]Subject, len(subjects)),
		byName:    make(map[string]int, len(provinces)),
	}
	copy(c.provinces, provinces)
	copy(c.subjects, subjects)

	for i, p := range c.provinces {
		if p.Name == "" {
			return nil, fmt.Errorf("province %d has no name", i)
		}
		if _, ok := c.byName[p.Name]; ok {
			return nil, fmt.Errorf("duplicate province %q", p.Name)
		}
		c.byName[p.Name] = i
	}

	// Subjects are stored with the canonical spelling of their birth
	// province, so option sets only ever hold catalog names.
	seen := make(map[string]bool, len(c.subjects))
	for i, s := range c.subjects {
		if s.ID == "" {
			return nil, fmt.Errorf("subject %q has no id", s.DisplayName)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSubject, s.ID)
		}
		seen[s.ID] = true

		p, ok := c.Resolve(s.BirthProvince)
		if !ok {
			return nil, fmt.Errorf("%w: subject %q born in %q", ErrUnknownProvince, s.ID, s.BirthProvince)
		}
		c.subjects[i].BirthProvince = p.Name
	}

	return c, nil
}

// Default loads the datasets compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(data, "data")
	if err != nil {
		return nil, err
	}

	return Load(sub)
}

// LoadDir loads provinces.yaml and celebrities.yaml from dir.
func LoadDir(dir string) (*Catalog, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	return Load(os.DirFS(abs))
}

// Load reads both datasets from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var provinces []Province
	if err := readYAML(fsys, provincesFile, &provinces); err != nil {
		return nil, err
	}

	var subjects []Subject
	if err := readYAML(fsys, subjectsFile, &subjects); err != nil {
		return nil, err
	}

	return New(provinces, subjects)
}

func readYAML(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}

	return nil
}

// Provinces returns the provinces in catalog order.
func (c *Catalog) Provinces() []Province {
	return c.provinces
}

// Subjects returns the subjects in catalog order.
func (c *Catalog) Subjects() []Subject {
	return c.subjects
}

// Province looks up a province by its exact canonical name.
func (c *Catalog) Province(name string) (Province, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Province{}, false
	}

	return c.provinces[i], true
}

// Resolve maps a free-text region label to a catalog province. Exact names
// win, then names equal after folding, then the first fuzzy match.
func (c *Catalog) Resolve(label string) (Province, bool) {
	if p, ok := c.Province(label); ok {
		return p, true
	}

	folded := fold(label)
	if folded == "" {
		return Province{}, false
	}

	for _, p := range c.provinces {
		if fold(p.Name) == folded {
			return p, true
		}
	}

	for _, p := range c.provinces {
		if MatchesProvince(label, p.Name) {
			return p, true
		}
	}

	return Province{}, false
}
