// Package practice holds the pure state of one flashcard session. All
// transitions are synchronous and total; the screen layer decides when
// to call them.
package practice

import (
	"time"

	"github.com/google/uuid"

	"github.com/kennt44/teachme/internal/tutor"
)

// Phase is the coarse lifecycle of a session.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePracticing
	PhaseRecording
	PhaseEvaluating
	PhaseComplete
)

// State tracks one practice run through a course's due cards.
type State struct {
	// Course is the course this session was opened for.
	Course tutor.Course

	// Cards is the due sequence, fixed for the session's lifetime.
	Cards []tutor.PracticeCard

	// Cursor indexes Cards. Always in [0, len(Cards)) while practicing.
	Cursor int

	// ShowAnswer reveals the back of the current card.
	ShowAnswer bool

	// ShowHint reveals the hint of the current card, if it has one.
	ShowHint bool

	// Stats is the latest snapshot, nil when the stats fetch failed.
	Stats *tutor.CourseStats

	// Evaluation is the pronunciation result for the current card, nil
	// until one arrives. Cleared whenever the card changes.
	Evaluation *tutor.EvaluationResult

	// Phase is the session lifecycle phase.
	Phase Phase

	// Reviewed counts grades submitted this session.
	Reviewed int

	// SessionID identifies this run in logs.
	SessionID string

	// StartedAt is when the cards arrived.
	StartedAt time.Time
}

// NewState starts a session over the given due cards.
func NewState(course tutor.Course, cards []tutor.PracticeCard) *State {
	return &State{
		Course:    course,
		Cards:     cards,
		Phase:     PhasePracticing,
		SessionID: uuid.NewString(),
		StartedAt: time.Now(),
	}
}

// Current returns the card under the cursor. Only valid while cards
// remain; callers check Len first.
func (s *State) Current() tutor.PracticeCard {
	return s.Cards[s.Cursor]
}

// Len returns the number of cards in the session.
func (s *State) Len() int { return len(s.Cards) }

// Reveal shows the back of the current card. Irreversible until the
// card changes.
func (s *State) Reveal() {
	s.ShowAnswer = true
}

// ToggleHint flips hint visibility. No-op when the card has no hint.
func (s *State) ToggleHint() {
	if s.Current().Hint == "" {
		return
	}
	s.ShowHint = !s.ShowHint
}

// Next moves the cursor forward by one. Returns false, changing
// nothing, at the last card.
func (s *State) Next() bool {
	if s.Cursor >= len(s.Cards)-1 {
		return false
	}
	s.Cursor++
	s.clearTransient()
	return true
}

// Prev moves the cursor back by one. Returns false, changing nothing,
// at the first card.
func (s *State) Prev() bool {
	if s.Cursor <= 0 {
		return false
	}
	s.Cursor--
	s.clearTransient()
	return true
}

// Advance moves past the current card after a review. Returns false
// and flips the session to PhaseComplete when it was the last card.
func (s *State) Advance() bool {
	s.Reviewed++
	if s.Cursor >= len(s.Cards)-1 {
		s.Phase = PhaseComplete
		return false
	}
	s.Cursor++
	s.clearTransient()
	return true
}

// SetEvaluation attaches a pronunciation result to the current card.
func (s *State) SetEvaluation(result *tutor.EvaluationResult) {
	s.Evaluation = result
}

// ClearEvaluation drops the current card's pronunciation result.
func (s *State) ClearEvaluation() {
	s.Evaluation = nil
}

func (s *State) clearTransient() {
	s.ShowAnswer = false
	s.ShowHint = false
	s.Evaluation = nil
}

// Band groups a similarity score for presentation.
type Band int

const (
	BandLow  Band = iota // needs work
	BandMid              // close
	BandHigh             // solid match
)

const (
	highThreshold = 80
	midThreshold  = 60
)

// SimilarityBand maps a 0-100 similarity score to its display band.
func SimilarityBand(similarity float64) Band {
	switch {
	case similarity >= highThreshold:
		return BandHigh
	case similarity >= midThreshold:
		return BandMid
	default:
		return BandLow
	}
}
