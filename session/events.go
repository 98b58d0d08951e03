/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package session

import (
	"math"

	"github.com/Seednode/geoquiz/catalog"
	"github.com/Seednode/geoquiz/quiz"
)

// Event is an outcome the session reports to its presentation layer. Every
// concrete event carries a "type" field when encoded as JSON.
type Event interface {
	EventType() string
}

const (
	TypeSessionStarted   = "session_started"
	TypeQuestionLoaded   = "question_loaded"
	TypeAnswerEvaluated  = "answer_evaluated"
	TypeTicked           = "tick"
	TypeHighlightChanged = "highlight_changed"
	TypeSessionFinished  = "session_finished"
	TypeSessionStopped   = "session_stopped"
)

// Snapshot is the HUD view of a session.
type Snapshot struct {
	ID            string `json:"id"`
	Mode          Mode   `json:"mode"`
	Phase         Phase  `json:"phase"`
	TimeRemaining int    `json:"time_remaining"`
	Score         int    `json:"score"`
	Player1Score  int    `json:"player1_score,omitempty"`
	Player2Score  int    `json:"player2_score,omitempty"`
	ActivePlayer  int    `json:"active_player,omitempty"`
	QuestionCount int    `json:"question_count"`
	CorrectCount  int    `json:"correct_count"`
}

// Summary is reported once when a session finishes.
type Summary struct {
	Mode              Mode              `json:"mode"`
	Score             int               `json:"score"`
	Player1Score      int               `json:"player1_score,omitempty"`
	Player2Score      int               `json:"player2_score,omitempty"`
	QuestionCount     int               `json:"question_count"`
	QuestionsAnswered int               `json:"questions_answered"`
	CorrectCount      int               `json:"correct_count"`
	SuccessRate       int               `json:"success_rate"`
	Winner            Winner            `json:"winner,omitempty"`
	Correct           []catalog.Subject `json:"correct"`
}

// successRate is the rounded percentage of loaded questions answered
// correctly.
func successRate(correct, questions int) int {
	if questions == 0 {
		return 0
	}

	return int(math.Round(float64(correct) / float64(questions) * 100))
}

// SubjectView is the part of a subject shown with a question. It leaves out
// the birth province.
type SubjectView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Photo    string `json:"photo"`
}

func viewSubject(s catalog.Subject) SubjectView {
	return SubjectView{
		ID:       s.ID,
		Name:     s.DisplayName,
		Category: s.Category,
		Photo:    s.PhotoRef,
	}
}

type SessionStarted struct {
	Type  string   `json:"type"`
	Rules []string `json:"rules"`
	HUD   Snapshot `json:"hud"`
}

type QuestionLoaded struct {
	Type    string                      `json:"type"`
	Number  int                         `json:"number"`
	Subject SubjectView                 `json:"subject"`
	Options []quiz.OptionView           `json:"options"`
	Regions map[string]quiz.RegionClass `json:"regions,omitempty"`
	HUD     Snapshot                    `json:"hud"`
}

// AnswerEvaluated reports an accepted answer. Player is the duo player who
// answered, zero otherwise.
type AnswerEvaluated struct {
	Type            string                      `json:"type"`
	IsCorrect       bool                        `json:"is_correct"`
	SelectedIndex   int                         `json:"selected_index"`
	CorrectProvince string                      `json:"correct_province"`
	Player          int                         `json:"player,omitempty"`
	Options         []quiz.OptionView           `json:"options"`
	Regions         map[string]quiz.RegionClass `json:"regions,omitempty"`
	HUD             Snapshot                    `json:"hud"`
}

type Ticked struct {
	Type string   `json:"type"`
	HUD  Snapshot `json:"hud"`
}

// HighlightChanged is sent when the hovered region changes while a question
// is open.
type HighlightChanged struct {
	Type    string                      `json:"type"`
	Hovered string                      `json:"hovered,omitempty"`
	Regions map[string]quiz.RegionClass `json:"regions,omitempty"`
}

type SessionFinished struct {
	Type    string   `json:"type"`
	Summary Summary  `json:"summary"`
	HUD     Snapshot `json:"hud"`
}

type SessionStopped struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (SessionStarted) EventType() string   { return TypeSessionStarted }
func (QuestionLoaded) EventType() string   { return TypeQuestionLoaded }
func (AnswerEvaluated) EventType() string  { return TypeAnswerEvaluated }
func (Ticked) EventType() string           { return TypeTicked }
func (HighlightChanged) EventType() string { return TypeHighlightChanged }
func (SessionFinished) EventType() string  { return TypeSessionFinished }
func (SessionStopped) EventType() string   { return TypeSessionStopped }
