/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"testing"

	"github.com/Seednode/geoquiz/catalog"
)

func sampleQuestion() Question {
	return Question{
		Subject:      catalog.Subject{ID: "s", DisplayName: "S", BirthProvince: "Izmir"},
		Options:      [OptionCount]string{"Izmir", "Bursa", "Van", "Edirne"},
		CorrectIndex: 0,
	}
}

func TestResolveMenu(t *testing.T) {
	q := sampleQuestion()

	tests := []struct {
		index   int
		ok      bool
		correct bool
	}{
		{0, true, true},
		{1, true, false},
		{3, true, false},
		{-1, false, false},
		{4, false, false},
	}

	for _, tt := range tests {
		res, ok := ResolveMenu(q, tt.index)
		if ok != tt.ok {
			t.Errorf("ResolveMenu(%d) ok = %v, want %v", tt.index, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if res.IsCorrect != tt.correct || res.SelectedIndex != tt.index {
			t.Errorf("ResolveMenu(%d) = %+v, want correct=%v", tt.index, res, tt.correct)
		}
	}
}

func TestResolveMap(t *testing.T) {
	q := sampleQuestion()

	tests := []struct {
		label   string
		ok      bool
		index   int
		correct bool
	}{
		{"İzmir", true, 0, true},
		{"izmir ", true, 0, true},
		{"Bursa Province", true, 1, false},
		{"VAN", true, 2, false},
		{"Ankara", false, 0, false},
		{"", false, 0, false},
	}

	for _, tt := range tests {
		res, ok := ResolveMap(q, tt.label)
		if ok != tt.ok {
			t.Errorf("ResolveMap(%q) ok = %v, want %v", tt.label, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if res.SelectedIndex != tt.index || res.IsCorrect != tt.correct {
			t.Errorf("ResolveMap(%q) = %+v, want index %d correct %v", tt.label, res, tt.index, tt.correct)
		}
	}
}

func TestResolveMapFirstMatchWins(t *testing.T) {
	q := Question{
		Options:      [OptionCount]string{"Bursa", "Kocaeli", "Sakarya", "Afyon"},
		CorrectIndex: 3,
	}

	res, ok := ResolveMap(q, "Afyonkarahisar")
	if !ok || res.SelectedIndex != 3 || !res.IsCorrect {
		t.Errorf("expected Afyonkarahisar to resolve to Afyon, got %+v %v", res, ok)
	}

	res, ok = ResolveMap(q, "İzmit")
	if !ok || res.SelectedIndex != 1 || res.IsCorrect {
		t.Errorf("expected İzmit to resolve to Kocaeli, got %+v %v", res, ok)
	}
}

func TestViews(t *testing.T) {
	q := sampleQuestion()

	open := Views(q, nil)
	for _, v := range open {
		if v.IsCorrectOption || v.IsSelectedOption {
			t.Fatalf("open question leaked answer: %+v", open)
		}
	}

	res := Resolution{IsCorrect: false, SelectedIndex: 2}
	done := Views(q, &res)
	if !done[0].IsCorrectOption || done[0].IsSelectedOption {
		t.Errorf("unexpected view for correct option: %+v", done[0])
	}
	if done[2].IsCorrectOption || !done[2].IsSelectedOption {
		t.Errorf("unexpected view for selected option: %+v", done[2])
	}
	if done[1].Name != "Bursa" {
		t.Errorf("expected option order preserved, got %+v", done)
	}
}

func TestClassify(t *testing.T) {
	q := sampleQuestion()
	wrong := Resolution{IsCorrect: false, SelectedIndex: 1}
	right := Resolution{IsCorrect: true, SelectedIndex: 0}

	tests := []struct {
		name    string
		answer  *Resolution
		label   string
		hovered string
		want    RegionClass
	}{
		{"plain", nil, "Ankara", "", RegionPlain},
		{"empty label", nil, "", "", RegionPlain},
		{"hovered non-option", nil, "Ankara", "Ankara", RegionHovered},
		{"option", nil, "Van", "", RegionOption},
		{"hovered option", nil, "Van", "VAN", RegionOptionHovered},
		{"other hovered", nil, "Van", "Bursa", RegionOption},
		{"clicked wrong", &wrong, "Bursa", "", RegionClickedWrong},
		{"correct after wrong", &wrong, "İzmir", "", RegionCorrect},
		{"clicked correct", &right, "İzmir", "", RegionClickedCorrect},
		{"option after answer", &right, "Edirne", "", RegionOption},
	}

	for _, tt := range tests {
		if got := Classify(q, tt.answer, tt.label, tt.hovered); got != tt.want {
			t.Errorf("%s: Classify(%q, %q) = %q, want %q", tt.name, tt.label, tt.hovered, got, tt.want)
		}
	}
}
