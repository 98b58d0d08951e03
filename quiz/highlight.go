/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import "github.com/Seednode/geoquiz/catalog"

// RegionClass tells the map how to paint one region for the current question.
type RegionClass string

const (
	RegionPlain          RegionClass = "plain"
	RegionHovered        RegionClass = "hovered"
	RegionOption         RegionClass = "option"
	RegionOptionHovered  RegionClass = "option_hovered"
	RegionCorrect        RegionClass = "correct"
	RegionClickedCorrect RegionClass = "clicked_correct"
	RegionClickedWrong   RegionClass = "clicked_wrong"
)

// OptionView is the presentation state of a single option. Correctness is
// only revealed once the question has been answered.
type OptionView struct {
	Name             string `json:"name"`
	IsCorrectOption  bool   `json:"is_correct_option"`
	IsSelectedOption bool   `json:"is_selected_option"`
}

// Views describes every option of q. answer is nil while the question is
// still open.
func Views(q Question, answer *Resolution) []OptionView {
	views := make([]OptionView, 0, OptionCount)
	for i, name := range q.Options {
		v := OptionView{Name: name}
		if answer != nil {
			v.IsCorrectOption = i == q.CorrectIndex
			v.IsSelectedOption = i == answer.SelectedIndex
		}
		views = append(views, v)
	}

	return views
}

// Classify decides how the region named label is drawn, given the answer
// (nil while open) and the currently hovered label (empty for none). It uses
// the same matching rule as ResolveMap, so a region that would resolve to an
// option is always painted as that option.
func Classify(q Question, answer *Resolution, label, hovered string) RegionClass {
	if label == "" {
		return RegionPlain
	}

	if answer != nil {
		if catalog.MatchesProvince(label, q.Options[answer.SelectedIndex]) {
			if answer.IsCorrect {
				return RegionClickedCorrect
			}
			return RegionClickedWrong
		}
		if catalog.MatchesProvince(label, q.CorrectProvince()) {
			return RegionCorrect
		}
	}

	isHovered := hovered != "" && catalog.MatchesProvince(label, hovered)

	if q.OptionIndex(label) >= 0 {
		if isHovered {
			return RegionOptionHovered
		}
		return RegionOption
	}

	if isHovered {
		return RegionHovered
	}

	return RegionPlain
}
