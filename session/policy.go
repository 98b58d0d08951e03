/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package session

const (
	pointsPerCorrect = 10

	normalInitialTime = 90

	hardInitialTime = 60
	hardMaxTime     = 90
	hardBonus       = 1
	hardPenalty     = 3

	duoInitialTime = 90
	duoDecayEvery  = 2
	duoDecay       = 1
)

// Board is the mutable scoring state a policy operates on.
type Board struct {
	TimeRemaining int
	Score         int
	Player1Score  int
	Player2Score  int
	ActivePlayer  int
	Winner        Winner
}

// Policy holds the mode-specific scoring and timing rules. A session picks
// one when it starts and never branches on the mode otherwise.
type Policy interface {
	Mode() Mode
	// Reset prepares a fresh board.
	Reset(b *Board)
	// Answer applies the score and time effect of an accepted answer.
	Answer(b *Board, correct bool)
	// Tick applies the side effect of the n-th one-second tick, after the
	// clock has been decremented.
	Tick(b *Board, n int)
	// Turn runs between an answered question and the next one.
	Turn(b *Board)
	// Finish settles the board once the session ends.
	Finish(b *Board)
}

// PolicyFor returns the rules of mode m.
func PolicyFor(m Mode) Policy {
	switch m {
	case Hard:
		return hardPolicy{}
	case Duo:
		return duoPolicy{}
	}

	return normalPolicy{}
}

type normalPolicy struct{}

func (normalPolicy) Mode() Mode { return Normal }

func (normalPolicy) Reset(b *Board) {
	*b = Board{TimeRemaining: normalInitialTime}
}

func (normalPolicy) Answer(b *Board, correct bool) {
	if correct {
		b.Score += pointsPerCorrect
	}
}

func (normalPolicy) Tick(*Board, int) {}
func (normalPolicy) Turn(*Board)      {}
func (normalPolicy) Finish(*Board)    {}

type hardPolicy struct{}

func (hardPolicy) Mode() Mode { return Hard }

func (hardPolicy) Reset(b *Board) {
	*b = Board{TimeRemaining: hardInitialTime}
}

func (hardPolicy) Answer(b *Board, correct bool) {
	if correct {
		b.Score += pointsPerCorrect
		b.TimeRemaining = min(b.TimeRemaining+hardBonus, hardMaxTime)
		return
	}

	b.TimeRemaining = max(b.TimeRemaining-hardPenalty, 0)
}

func (hardPolicy) Tick(*Board, int) {}
func (hardPolicy) Turn(*Board)      {}
func (hardPolicy) Finish(*Board)    {}

type duoPolicy struct{}

func (duoPolicy) Mode() Mode { return Duo }

func (duoPolicy) Reset(b *Board) {
	*b = Board{
		TimeRemaining: duoInitialTime,
		ActivePlayer:  1,
		Winner:        WinnerPending,
	}
}

func (duoPolicy) Answer(b *Board, correct bool) {
	if correct {
		*b.active() += pointsPerCorrect
	}
}

func (duoPolicy) Tick(b *Board, n int) {
	if n%duoDecayEvery == 0 {
		score := b.active()
		*score = max(*score-duoDecay, 0)
	}
}

func (duoPolicy) Turn(b *Board) {
	if b.ActivePlayer == 1 {
		b.ActivePlayer = 2
		return
	}

	b.ActivePlayer = 1
}

func (duoPolicy) Finish(b *Board) {
	if b.Winner != WinnerPending {
		return
	}

	switch {
	case b.Player1Score > b.Player2Score:
		b.Winner = WinnerPlayer1
	case b.Player2Score > b.Player1Score:
		b.Winner = WinnerPlayer2
	default:
		b.Winner = WinnerNone
	}
}

func (b *Board) active() *int {
	if b.ActivePlayer == 2 {
		return &b.Player2Score
	}

	return &b.Player1Score
}
