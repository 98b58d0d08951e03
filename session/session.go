/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package session runs a timed quiz: it owns the clock, asks questions,
// applies the mode's scoring policy and reports outcomes as events.
package session

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Seednode/geoquiz/catalog"
	"github.com/Seednode/geoquiz/quiz"
)

const (
	DefaultTickInterval = time.Second
	DefaultAdvanceDelay = 1500 * time.Millisecond
)

// Options configures a Session.
type Options struct {
	// TickInterval is the period of the built-in clock. Zero disables it and
	// the caller drives time with Tick.
	TickInterval time.Duration

	// AdvanceDelay is how long an answered question stays on screen before
	// the next one loads. Zero advances immediately.
	AdvanceDelay time.Duration

	// Seed fixes the question order. Zero seeds from crypto/rand.
	Seed uint64

	// Regions are the labels of every region the map can draw. When set,
	// events that change highlighting carry a class for each of them.
	Regions []string

	// Notify receives every event in order. It runs with the session locked
	// and must not call back into the session.
	Notify func(Event)
}

// Session is one quiz played from start to finish. Ticks and answers are
// serialized by a single lock, so scoring and timeout decisions are applied
// in a strict order.
type Session struct {
	mu sync.Mutex

	catalog *catalog.Catalog
	opts    Options
	gen     *quiz.Generator

	id     string
	policy Policy
	phase  Phase
	board  Board
	ticks  int

	question      *quiz.Question
	answer        *quiz.Resolution
	hovered       string
	asked         map[string]bool
	correct       []catalog.Subject
	questionCount int
	answered      int

	// epoch invalidates clock ticks and pending advances from an earlier
	// start once the session is stopped or restarted.
	epoch   int
	done    chan struct{}
	advance *time.Timer
}

// New returns an idle session over c.
func New(c *catalog.Catalog, opts Options) *Session {
	return &Session{
		catalog: c,
		opts:    opts,
		gen:     quiz.NewGenerator(c, opts.Seed),
		phase:   Idle,
		policy:  PolicyFor(Normal),
	}
}

// Start begins a fresh session in mode m, discarding any session in
// progress.
func (s *Session) Start(m Mode) error {
	if _, err := ParseMode(string(m)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.haltLocked()
	s.epoch++

	s.id = uuid.NewString()
	s.policy = PolicyFor(m)
	s.policy.Reset(&s.board)
	s.phase = Playing
	s.ticks = 0
	s.question = nil
	s.answer = nil
	s.hovered = ""
	s.asked = make(map[string]bool)
	s.correct = nil
	s.questionCount = 0
	s.answered = 0

	s.emit(SessionStarted{
		Type:  TypeSessionStarted,
		Rules: m.Rules(),
		HUD:   s.snapshotLocked(),
	})

	if s.opts.TickInterval > 0 {
		s.done = make(chan struct{})
		go s.runClock(s.epoch, s.done)
	}

	s.loadQuestionLocked()

	return nil
}

func (s *Session) runClock(epoch int, done <-chan struct{}) {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if s.epoch == epoch {
				s.tickLocked()
			}
			s.mu.Unlock()
		}
	}
}

// Tick advances the clock by one second. It reports whether the tick was
// applied.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.tickLocked()
}

func (s *Session) tickLocked() bool {
	if s.phase != Playing {
		return false
	}

	s.ticks++
	s.board.TimeRemaining = max(s.board.TimeRemaining-1, 0)
	s.policy.Tick(&s.board, s.ticks)

	s.emit(Ticked{Type: TypeTicked, HUD: s.snapshotLocked()})

	if s.board.TimeRemaining == 0 {
		s.finishLocked()
	}

	return true
}

// SubmitMenuAnswer answers the open question with the option at index. It
// reports whether the answer was accepted.
func (s *Session) SubmitMenuAnswer(index int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.openLocked() {
		return false
	}

	res, ok := quiz.ResolveMenu(*s.question, index)
	if !ok {
		return false
	}

	s.acceptLocked(res)

	return true
}

// SubmitMapAnswer answers the open question with a clicked map region. A
// label that matches no option is ignored and leaves the question open.
func (s *Session) SubmitMapAnswer(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.openLocked() {
		return false
	}

	res, ok := quiz.ResolveMap(*s.question, label)
	if !ok {
		return false
	}

	s.acceptLocked(res)

	return true
}

// Hover records the map region under the pointer, or clears it when label is
// empty. Hovering is ignored once the question is answered.
func (s *Session) Hover(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.openLocked() || s.hovered == label {
		return false
	}

	s.hovered = label
	s.emit(HighlightChanged{
		Type:    TypeHighlightChanged,
		Hovered: label,
		Regions: s.regionsLocked(),
	})

	return true
}

// Stop aborts the session. The clock halts before Stop returns, every later
// tick or input is a no-op, and no winner is computed.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == Idle {
		return
	}

	s.haltLocked()
	s.epoch++

	id := s.id
	s.phase = Idle
	s.board = Board{}
	s.question = nil
	s.answer = nil
	s.hovered = ""
	s.asked = nil
	s.correct = nil

	s.emit(SessionStopped{Type: TypeSessionStopped, ID: id})
}

func (s *Session) openLocked() bool {
	return s.phase == Playing && s.question != nil && s.answer == nil
}

func (s *Session) acceptLocked(res quiz.Resolution) {
	player := s.board.ActivePlayer

	s.answer = &res
	s.answered++
	s.policy.Answer(&s.board, res.IsCorrect)

	if res.IsCorrect {
		s.correct = append(s.correct, s.question.Subject)
	}

	s.emit(AnswerEvaluated{
		Type:            TypeAnswerEvaluated,
		IsCorrect:       res.IsCorrect,
		SelectedIndex:   res.SelectedIndex,
		CorrectProvince: s.question.CorrectProvince(),
		Player:          player,
		Options:         quiz.Views(*s.question, s.answer),
		Regions:         s.regionsLocked(),
		HUD:             s.snapshotLocked(),
	})

	if s.board.TimeRemaining == 0 {
		s.finishLocked()
		return
	}

	if s.opts.AdvanceDelay <= 0 {
		s.nextLocked()
		return
	}

	epoch, number := s.epoch, s.questionCount
	s.advance = time.AfterFunc(s.opts.AdvanceDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.epoch != epoch || s.phase != Playing || s.questionCount != number {
			return
		}

		s.nextLocked()
	})
}

func (s *Session) nextLocked() {
	s.policy.Turn(&s.board)
	s.loadQuestionLocked()
}

func (s *Session) loadQuestionLocked() {
	// quiz.ErrExhausted is the only failure; running out of subjects ends
	// the session normally.
	q, err := s.gen.Next(s.asked)
	if err != nil {
		s.finishLocked()
		return
	}

	s.asked[q.Subject.ID] = true
	s.question = &q
	s.answer = nil
	s.hovered = ""
	s.questionCount++

	s.emit(QuestionLoaded{
		Type:    TypeQuestionLoaded,
		Number:  s.questionCount,
		Subject: viewSubject(q.Subject),
		Options: quiz.Views(q, nil),
		Regions: s.regionsLocked(),
		HUD:     s.snapshotLocked(),
	})
}

func (s *Session) finishLocked() {
	s.haltLocked()
	s.phase = Finished
	s.policy.Finish(&s.board)

	s.emit(SessionFinished{
		Type:    TypeSessionFinished,
		Summary: s.summaryLocked(),
		HUD:     s.snapshotLocked(),
	})
}

// haltLocked stops the clock and any pending advance.
func (s *Session) haltLocked() {
	if s.done != nil {
		close(s.done)
		s.done = nil
	}

	if s.advance != nil {
		s.advance.Stop()
		s.advance = nil
	}
}

func (s *Session) emit(e Event) {
	if s.opts.Notify != nil {
		s.opts.Notify(e)
	}
}

// Snapshot returns the current HUD state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		ID:            s.id,
		Mode:          s.policy.Mode(),
		Phase:         s.phase,
		TimeRemaining: s.board.TimeRemaining,
		Score:         s.board.Score,
		Player1Score:  s.board.Player1Score,
		Player2Score:  s.board.Player2Score,
		ActivePlayer:  s.board.ActivePlayer,
		QuestionCount: s.questionCount,
		CorrectCount:  len(s.correct),
	}
}

// WithState calls fn with the current HUD and option views while holding the
// session lock, so no event is emitted until fn returns. fn must not call
// back into the session.
func (s *Session) WithState(fn func(Snapshot, []quiz.OptionView)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var options []quiz.OptionView
	if s.question != nil {
		options = quiz.Views(*s.question, s.answer)
	}

	fn(s.snapshotLocked(), options)
}

// Summary returns the final results. It reports false until the session has
// finished.
func (s *Session) Summary() (Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Finished {
		return Summary{}, false
	}

	return s.summaryLocked(), true
}

func (s *Session) summaryLocked() Summary {
	return Summary{
		Mode:              s.policy.Mode(),
		Score:             s.board.Score,
		Player1Score:      s.board.Player1Score,
		Player2Score:      s.board.Player2Score,
		QuestionCount:     s.questionCount,
		QuestionsAnswered: s.answered,
		CorrectCount:      len(s.correct),
		SuccessRate:       successRate(len(s.correct), s.questionCount),
		Winner:            s.board.Winner,
		Correct:           slices.Clone(s.correct),
	}
}

// Winner returns the duo outcome; it is WinnerPending until the session
// finishes and empty outside duo mode.
func (s *Session) Winner() Winner {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.board.Winner
}

// Question returns the question currently on screen, if any.
func (s *Session) Question() (quiz.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.question == nil || s.phase != Playing {
		return quiz.Question{}, false
	}

	return *s.question, true
}

// Locked reports whether the question on screen has already been answered.
func (s *Session) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.answer != nil
}

// Asked returns how many subjects have been asked so far.
func (s *Session) Asked() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.asked)
}

// OptionViews describes the options of the current question for rendering.
func (s *Session) OptionViews() []quiz.OptionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.question == nil {
		return nil
	}

	return quiz.Views(*s.question, s.answer)
}

// Classify tells the map how to draw the region named label right now.
func (s *Session) Classify(label string) quiz.RegionClass {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.question == nil || s.phase != Playing {
		return quiz.RegionPlain
	}

	return quiz.Classify(*s.question, s.answer, label, s.hovered)
}

// regionsLocked classifies every known region, leaving out plain ones.
func (s *Session) regionsLocked() map[string]quiz.RegionClass {
	if len(s.opts.Regions) == 0 || s.question == nil {
		return nil
	}

	out := make(map[string]quiz.RegionClass)
	for _, label := range s.opts.Regions {
		if c := quiz.Classify(*s.question, s.answer, label, s.hovered); c != quiz.RegionPlain {
			out[label] = c
		}
	}

	return out
}

// ID identifies the current run; it changes on every Start.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.id
}
