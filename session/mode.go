/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package session

import (
	"fmt"
	"strings"
)

// Mode selects the scoring and timing rules for a session.
type Mode string

const (
	Normal Mode = "normal"
	Hard   Mode = "hard"
	Duo    Mode = "duo"
)

// Modes lists every playable mode in menu order.
var Modes = []Mode{Normal, Hard, Duo}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case Normal, Hard, Duo:
		return m, nil
	}

	return "", fmt.Errorf("unknown game mode %q", s)
}

// Title is the human-facing name of the mode.
func (m Mode) Title() string {
	switch m {
	case Hard:
		return "Hard"
	case Duo:
		return "Duo"
	}

	return "Normal"
}

// Rules describes the mode to players before a session starts.
func (m Mode) Rules() []string {
	switch m {
	case Hard:
		return []string{
			fmt.Sprintf("%d seconds starting time", hardInitialTime),
			fmt.Sprintf("Each correct answer: +%d points and +%d second", pointsPerCorrect, hardBonus),
			fmt.Sprintf("Each wrong answer: -%d seconds", hardPenalty),
			"Correct provinces are marked green on the map",
		}
	case Duo:
		return []string{
			"2 players take turns",
			fmt.Sprintf("%d seconds total time", duoInitialTime),
			fmt.Sprintf("Each correct answer: +%d points", pointsPerCorrect),
			fmt.Sprintf("-1 point per %d seconds while it is your turn", duoDecayEvery),
			"Highest score wins when time runs out",
		}
	}

	return []string{
		fmt.Sprintf("You have %d seconds", normalInitialTime),
		fmt.Sprintf("Each correct answer: +%d points", pointsPerCorrect),
		"Correct provinces are marked green on the map",
		"Answer options are highlighted on the map",
	}
}

// Phase is the lifecycle position of a session.
type Phase string

const (
	Idle     Phase = "idle"
	Playing  Phase = "playing"
	Finished Phase = "finished"
)

// Winner is the outcome of a duo session.
type Winner string

const (
	WinnerPending Winner = "pending"
	WinnerPlayer1 Winner = "player1"
	WinnerPlayer2 Winner = "player2"
	WinnerNone    Winner = "none"
)
