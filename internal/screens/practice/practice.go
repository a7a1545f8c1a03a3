// Package practice is the practice-session screen: it drives one run
// through a course's due cards, including grading, pronunciation
// recording and playback.
package practice

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/kennt44/teachme/internal/audio"
	"github.com/kennt44/teachme/internal/beep"
	"github.com/kennt44/teachme/internal/playback"
	psess "github.com/kennt44/teachme/internal/practice"
	"github.com/kennt44/teachme/internal/router"
	"github.com/kennt44/teachme/internal/screen"
	"github.com/kennt44/teachme/internal/tutor"
	"github.com/kennt44/teachme/internal/ui/layout"
)

// Recorder is the capture surface the screen depends on.
type Recorder interface {
	Start() error
	Stop() (tutor.AudioClip, error)
	Cancel() error
	Recording() bool
	Elapsed() time.Duration
}

// PracticeScreen implements screen.Screen for an active session.
type PracticeScreen struct {
	gateway  tutor.Service
	recorder Recorder
	player   playback.Player
	log      zerolog.Logger
	course   tutor.Course

	state *psess.State
	stats *tutor.CourseStats

	// Per-slot single-flight flags. An intent arriving while its slot
	// is busy is dropped.
	loading       bool
	reviewPending bool
	evaluating    bool
	resetting     bool

	confirmReset bool
	emptyDeck    bool
	errMsg       string
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)

// New creates the screen for one course with injected dependencies.
func New(gateway tutor.Service, recorder Recorder, player playback.Player, log zerolog.Logger, course tutor.Course) *PracticeScreen {
	return &PracticeScreen{
		gateway:  gateway,
		recorder: recorder,
		player:   player,
		log:      log,
		course:   course,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	s.loading = true
	// Cards and stats load concurrently; neither orders the other.
	return tea.Batch(s.loadCards(), s.loadStats())
}

func (s *PracticeScreen) Title() string {
	return s.course.Language
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.errMsg != "" || s.emptyDeck:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.confirmReset:
		return []layout.KeyHint{
			{Key: "Y", Description: "Reset course"},
			{Key: "N", Description: "Keep progress"},
		}
	case s.state == nil:
		return nil
	case s.state.Phase == psess.PhaseComplete:
		return []layout.KeyHint{{Key: "Enter", Description: "Back to courses"}}
	case s.recorder.Recording():
		return []layout.KeyHint{
			{Key: "R", Description: "Stop and score"},
			{Key: "Esc", Description: "Discard take"},
		}
	case s.state.ShowAnswer:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Grade"},
			{Key: "R", Description: "Record"},
			{Key: "T", Description: "Listen"},
			{Key: "Esc", Description: "Exit"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Space", Description: "Reveal"},
			{Key: "H", Description: "Hint"},
			{Key: "T", Description: "Listen"},
			{Key: "←/→", Description: "Navigate"},
			{Key: "Esc", Description: "Exit"},
		}
	}
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardsLoadedMsg:
		return s.handleCardsLoaded(msg)

	case statsLoadedMsg:
		return s.handleStatsLoaded(msg)

	case reviewDoneMsg:
		return s.handleReviewDone(msg)

	case evaluationMsg:
		return s.handleEvaluation(msg)

	case resetDoneMsg:
		return s.handleResetDone(msg)

	case recordTickMsg:
		if s.recorder.Recording() {
			return s, recordTick()
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PracticeScreen) handleCardsLoaded(msg cardsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.ISO != s.course.ISO {
		return s, nil
	}
	s.loading = false

	if msg.Err != nil {
		s.errMsg = describeError(msg.Err)
		return s, nil
	}
	if len(msg.Cards) == 0 {
		s.emptyDeck = true
		return s, nil
	}

	s.state = psess.NewState(s.course, msg.Cards)
	s.log.Info().
		Str("session", s.state.SessionID).
		Str("course", s.course.ISO).
		Int("cards", len(msg.Cards)).
		Msg("practice session started")
	return s, nil
}

func (s *PracticeScreen) handleStatsLoaded(msg statsLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.ISO != s.course.ISO {
		return s, nil
	}
	if msg.Err != nil {
		// Degraded panel only; the session itself continues.
		s.log.Warn().Err(msg.Err).Msg("stats fetch failed")
		s.stats = nil
		return s, nil
	}
	s.stats = msg.Stats
	if s.state != nil {
		s.state.Stats = msg.Stats
	}
	return s, nil
}

func (s *PracticeScreen) handleReviewDone(msg reviewDoneMsg) (screen.Screen, tea.Cmd) {
	s.reviewPending = false
	if msg.ISO != s.course.ISO || s.state == nil {
		return s, nil
	}
	if msg.CardID != s.state.Current().ID {
		return s, nil
	}

	var cmds []tea.Cmd
	if msg.Err != nil {
		// The grade is lost server-side but the session moves on; the
		// learner can navigate back and re-grade.
		s.log.Warn().Err(msg.Err).Int("card", msg.CardID).Msg("review failed")
		cmds = append(cmds, router.SetStatus("Couldn't save that review. The card still advanced."))
	}

	s.state.Advance()
	// Yesterday's numbers are stale the moment a review lands.
	cmds = append(cmds, s.loadStats())
	return s, tea.Batch(cmds...)
}

func (s *PracticeScreen) handleEvaluation(msg evaluationMsg) (screen.Screen, tea.Cmd) {
	s.evaluating = false
	if msg.ISO != s.course.ISO || s.state == nil {
		return s, nil
	}
	if s.state.Phase == psess.PhaseEvaluating {
		s.state.Phase = psess.PhasePracticing
	}
	if msg.CardID != s.state.Current().ID {
		return s, nil
	}

	if msg.Err != nil {
		beep.PlayError()
		s.log.Warn().Err(msg.Err).Int("card", msg.CardID).Msg("evaluation failed")
		return s, router.SetStatus("Couldn't score that take. Try recording again.")
	}

	s.state.SetEvaluation(msg.Result)
	s.log.Info().
		Float64("similarity", msg.Result.Similarity).
		Str("transcript", msg.Result.Transcript).
		Int("card", msg.CardID).
		Msg("pronunciation scored")
	return s, nil
}

func (s *PracticeScreen) handleResetDone(msg resetDoneMsg) (screen.Screen, tea.Cmd) {
	s.resetting = false
	if msg.ISO != s.course.ISO {
		return s, nil
	}
	if msg.Err != nil {
		return s, router.SetStatus("Reset failed: " + describeError(msg.Err))
	}

	// Back to Loading over the same course.
	s.state = nil
	s.stats = nil
	s.emptyDeck = false
	s.loading = true
	return s, tea.Batch(
		router.SetStatus("Course progress reset."),
		s.loadCards(),
		s.loadStats(),
	)
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Terminal states: any key goes back.
	if s.errMsg != "" || s.emptyDeck {
		return s, s.exit()
	}

	// Recording owns the keyboard until the mic is released.
	if s.recorder.Recording() {
		switch key {
		case "r", "R":
			return s.stopRecording()
		case "esc":
			return s.cancelRecording()
		}
		return s, nil
	}

	if s.confirmReset {
		switch key {
		case "y", "Y":
			s.confirmReset = false
			return s.startReset()
		case "n", "N", "esc":
			s.confirmReset = false
		}
		return s, nil
	}

	if s.state == nil {
		if key == "esc" {
			return s, s.exit()
		}
		return s, nil
	}

	if s.state.Phase == psess.PhaseComplete {
		switch key {
		case "enter", "esc", "q":
			return s, s.exit()
		}
		return s, nil
	}

	if s.state.Phase == psess.PhaseEvaluating {
		// Wait for the verdict; only bailing out is allowed.
		if key == "esc" {
			return s, s.exit()
		}
		return s, nil
	}

	switch key {
	case "esc", "q":
		return s, s.exit()
	case " ", "space", "enter":
		s.state.Reveal()
		return s, nil
	case "h", "H", "?":
		s.state.ToggleHint()
		return s, nil
	case "left", "p":
		s.state.Prev()
		return s, nil
	case "right", "n":
		s.state.Next()
		return s, nil
	case "t", "T":
		return s, s.speak(s.state.Current(), s.state.ShowAnswer)
	case "r":
		return s.startRecording()
	case "R":
		s.confirmReset = true
		return s, nil
	case "1", "2", "3", "4":
		if !s.state.ShowAnswer {
			return s, nil
		}
		grade := tutor.Grade(int(key[0] - '1'))
		return s.submitGrade(grade)
	}

	return s, nil
}

// submitGrade sends the review and blocks further grading until the
// response lands.
func (s *PracticeScreen) submitGrade(grade tutor.Grade) (screen.Screen, tea.Cmd) {
	if s.reviewPending {
		return s, nil
	}
	s.reviewPending = true

	iso := s.course.ISO
	cardID := s.state.Current().ID
	gateway := s.gateway
	return s, func() tea.Msg {
		err := gateway.SubmitReview(context.Background(), cardID, grade)
		return reviewDoneMsg{ISO: iso, CardID: cardID, Err: err}
	}
}

func (s *PracticeScreen) startRecording() (screen.Screen, tea.Cmd) {
	if s.evaluating {
		return s, nil
	}
	if err := s.recorder.Start(); err != nil {
		beep.PlayError()
		s.log.Warn().Err(err).Msg("recording start failed")
		return s, router.SetStatus(describeAudioError(err))
	}
	beep.PlayStart()
	s.state.Phase = psess.PhaseRecording
	return s, recordTick()
}

func (s *PracticeScreen) stopRecording() (screen.Screen, tea.Cmd) {
	clip, err := s.recorder.Stop()
	beep.PlayEnd()
	if err != nil {
		s.state.Phase = psess.PhasePracticing
		s.log.Warn().Err(err).Msg("recording stop failed")
		return s, router.SetStatus("Recording failed. Try again.")
	}

	s.state.Phase = psess.PhaseEvaluating
	s.evaluating = true

	iso := s.course.ISO
	card := s.state.Current()
	gateway := s.gateway
	return s, func() tea.Msg {
		// The learner speaks the target-language side of the card.
		result, err := gateway.EvaluatePronunciation(context.Background(), card.Back, clip)
		return evaluationMsg{ISO: iso, CardID: card.ID, Result: result, Err: err}
	}
}

func (s *PracticeScreen) cancelRecording() (screen.Screen, tea.Cmd) {
	if err := s.recorder.Cancel(); err != nil {
		s.log.Warn().Err(err).Msg("recording cancel failed")
	}
	if s.state != nil {
		s.state.Phase = psess.PhasePracticing
	}
	return s, router.SetStatus("Take discarded.")
}

func (s *PracticeScreen) startReset() (screen.Screen, tea.Cmd) {
	if s.resetting {
		return s, nil
	}
	s.resetting = true

	iso := s.course.ISO
	gateway := s.gateway
	return s, func() tea.Msg {
		err := gateway.ResetCourse(context.Background(), iso)
		return resetDoneMsg{ISO: iso, Err: err}
	}
}

// speak plays the side of the card the learner is looking at: the
// prompt in English while the answer is hidden, the target-language
// answer in the course voice once revealed. Fire and forget: a
// playback failure is logged and otherwise invisible.
func (s *PracticeScreen) speak(card tutor.PracticeCard, revealed bool) tea.Cmd {
	text, lang := card.Front, "en"
	if revealed {
		text, lang = card.Back, s.course.ISO
	}
	url := s.gateway.TTSURL(text, lang)
	player := s.player
	log := s.log
	return func() tea.Msg {
		if err := player.Play(context.Background(), url); err != nil {
			log.Debug().Err(err).Msg("tts playback failed")
		}
		return nil
	}
}

// exit leaves the screen, releasing the microphone if a take is live.
func (s *PracticeScreen) exit() tea.Cmd {
	if s.recorder.Recording() {
		if err := s.recorder.Cancel(); err != nil {
			s.log.Warn().Err(err).Msg("recording cancel on exit failed")
		}
	}
	if s.state != nil {
		s.log.Info().
			Str("session", s.state.SessionID).
			Int("reviewed", s.state.Reviewed).
			Msg("practice session closed")
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *PracticeScreen) loadCards() tea.Cmd {
	iso := s.course.ISO
	gateway := s.gateway
	return func() tea.Msg {
		cards, err := gateway.PracticeCards(context.Background(), iso)
		return cardsLoadedMsg{ISO: iso, Cards: cards, Err: err}
	}
}

func (s *PracticeScreen) loadStats() tea.Cmd {
	iso := s.course.ISO
	gateway := s.gateway
	return func() tea.Msg {
		stats, err := gateway.CourseStats(context.Background(), iso)
		return statsLoadedMsg{ISO: iso, Stats: stats, Err: err}
	}
}

func recordTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return recordTickMsg(t)
	})
}

func describeError(err error) string {
	switch tutor.KindOf(err) {
	case tutor.KindUnreachable:
		return "Can't reach the tutor server."
	case tutor.KindNotFound:
		return "This course is gone from the server."
	default:
		return err.Error()
	}
}

func describeAudioError(err error) string {
	switch {
	case errors.Is(err, audio.ErrAlreadyRecording):
		return "Already recording."
	case errors.Is(err, audio.ErrPermissionDenied):
		return "Microphone access denied. Check your OS permissions."
	case errors.Is(err, audio.ErrUnsupported):
		return "No microphone available on this system."
	default:
		return "Couldn't start recording."
	}
}
