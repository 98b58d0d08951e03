/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package quiz builds multiple-choice questions from a catalog and resolves
// submitted answers against them.
package quiz

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/Seednode/geoquiz/catalog"
)

// OptionCount is the number of provinces offered per question.
const OptionCount = 4

const distractors = OptionCount - 1

// ErrExhausted is returned by Next once every subject has been asked.
var ErrExhausted = errors.New("no unasked subjects remain")

// Question is a subject together with its option set. Options and
// CorrectIndex are only ever produced together.
type Question struct {
	Subject      catalog.Subject
	Options      [OptionCount]string
	CorrectIndex int
}

// CorrectProvince returns the canonical name of the right answer.
func (q Question) CorrectProvince() string {
	return q.Options[q.CorrectIndex]
}

// Generator draws questions from a catalog. It is not safe for concurrent
// use; each session owns its own.
type Generator struct {
	catalog *catalog.Catalog
	rng     *rand.Rand
}

// NewGenerator returns a generator seeded from seed, or from crypto/rand when
// seed is zero.
func NewGenerator(c *catalog.Catalog, seed uint64) *Generator {
	if seed == 0 {
		seed = newSeed()
	}

	return &Generator{
		catalog: c,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func newSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}

	return binary.LittleEndian.Uint64(b[:])
}

// Next picks an unasked subject uniformly at random and builds its option
// set. The caller records the returned subject as asked.
func (g *Generator) Next(asked map[string]bool) (Question, error) {
	var remaining []catalog.Subject
	for _, s := range g.catalog.Subjects() {
		if !asked[s.ID] {
			remaining = append(remaining, s)
		}
	}

	if len(remaining) == 0 {
		return Question{}, ErrExhausted
	}

	subject := remaining[g.rng.IntN(len(remaining))]

	return g.build(subject), nil
}

func (g *Generator) build(subject catalog.Subject) Question {
	correct := subject.BirthProvince

	var others []catalog.Province
	for _, p := range g.catalog.Provinces() {
		if p.Name != correct {
			others = append(others, p)
		}
	}

	chosen := make([]string, 0, distractors)
	add := func(name string) {
		if len(chosen) < distractors && !slices.Contains(chosen, name) {
			chosen = append(chosen, name)
		}
	}

	if origin, ok := g.catalog.Province(correct); ok {
		for _, tier := range tiers(origin, others) {
			if len(tier) > 0 {
				add(tier[g.rng.IntN(len(tier))].Name)
			}
		}
	}

	for len(chosen) < distractors {
		add(others[g.rng.IntN(len(others))].Name)
	}

	names := append([]string{correct}, chosen...)
	g.rng.Shuffle(len(names), func(i, j int) {
		names[i], names[j] = names[j], names[i]
	})

	q := Question{Subject: subject}
	for i, name := range names {
		q.Options[i] = name
		if name == correct {
			q.CorrectIndex = i
		}
	}

	return q
}

// tiers sorts provinces by descending distance from origin and slices them
// into far, mid and near thirds.
func tiers(origin catalog.Province, provinces []catalog.Province) [3][]catalog.Province {
	sorted := slices.Clone(provinces)
	slices.SortStableFunc(sorted, func(a, b catalog.Province) int {
		da := origin.Coordinates.Distance(a.Coordinates)
		db := origin.Coordinates.Distance(b.Coordinates)
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		}
		return 0
	})

	n := len(sorted)

	return [3][]catalog.Province{
		sorted[:n/3],
		sorted[n/3 : 2*n/3],
		sorted[2*n/3:],
	}
}
