/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import "github.com/Seednode/geoquiz/catalog"

// Resolution is the outcome of an accepted answer.
type Resolution struct {
	IsCorrect     bool `json:"is_correct"`
	SelectedIndex int  `json:"selected_index"`
}

// ResolveMenu evaluates a direct option pick. An index outside the option set
// does not resolve.
func ResolveMenu(q Question, index int) (Resolution, bool) {
	if index < 0 || index >= OptionCount {
		return Resolution{}, false
	}

	return Resolution{
		IsCorrect:     index == q.CorrectIndex,
		SelectedIndex: index,
	}, true
}

// ResolveMap evaluates a clicked map region. The first option, in option
// order, whose name matches the label is taken as the selection; a label
// matching no option does not resolve.
func ResolveMap(q Question, label string) (Resolution, bool) {
	i := q.OptionIndex(label)
	if i < 0 {
		return Resolution{}, false
	}

	return ResolveMenu(q, i)
}

// OptionIndex returns the index of the first option matching label, or -1.
func (q Question) OptionIndex(label string) int {
	for i, name := range q.Options {
		if catalog.MatchesProvince(label, name) {
			return i
		}
	}

	return -1
}
