package practice

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/kennt44/teachme/internal/beep"
	"github.com/kennt44/teachme/internal/playback"
	psess "github.com/kennt44/teachme/internal/practice"
	"github.com/kennt44/teachme/internal/router"
	"github.com/kennt44/teachme/internal/tutor"
)

func TestMain(m *testing.M) {
	beep.Disable()
	os.Exit(m.Run())
}

// fakeRecorder implements Recorder for testing.
type fakeRecorder struct {
	recording bool
	startErr  error
	stopErr   error
	clip      tutor.AudioClip
	starts    int
	stops     int
	cancels   int
}

func (f *fakeRecorder) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	f.starts++
	f.recording = true
	return nil
}

func (f *fakeRecorder) Stop() (tutor.AudioClip, error) {
	f.stops++
	f.recording = false
	if f.stopErr != nil {
		return tutor.AudioClip{}, f.stopErr
	}
	return f.clip, nil
}

func (f *fakeRecorder) Cancel() error {
	f.cancels++
	f.recording = false
	return nil
}

func (f *fakeRecorder) Recording() bool        { return f.recording }
func (f *fakeRecorder) Elapsed() time.Duration { return time.Second }

// capturePlayer records every URL it is asked to play.
type capturePlayer struct {
	urls []string
}

func (p *capturePlayer) Play(_ context.Context, url string) error {
	p.urls = append(p.urls, url)
	return nil
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testCourse() tutor.Course {
	return tutor.Course{ISO: "fr", Language: "French", CardCount: 3}
}

func testCards() []tutor.PracticeCard {
	return []tutor.PracticeCard{
		{ID: 1, Front: "hello", Back: "bonjour", Hint: "greeting"},
		{ID: 2, Front: "thank you", Back: "merci"},
		{ID: 3, Front: "cat", Back: "chat"},
	}
}

func testScreen() (*PracticeScreen, *tutor.Fake, *fakeRecorder) {
	gateway := &tutor.Fake{
		Cards: map[string][]tutor.PracticeCard{"fr": testCards()},
		Stats: map[string]*tutor.CourseStats{"fr": {TotalCards: 10, Mastered: 2, DueToday: 3}},
	}
	rec := &fakeRecorder{clip: tutor.AudioClip{Data: []byte{1, 2}, ContentType: "audio/flac"}}
	s := New(gateway, rec, playback.NopPlayer{}, zerolog.Nop(), testCourse())
	return s, gateway, rec
}

func loadedScreen() (*PracticeScreen, *tutor.Fake, *fakeRecorder) {
	s, gateway, rec := testScreen()
	s.Update(cardsLoadedMsg{ISO: "fr", Cards: testCards()})
	s.Update(statsLoadedMsg{ISO: "fr", Stats: &tutor.CourseStats{DueToday: 3}})
	return s, gateway, rec
}

func TestPracticeScreen_Title(t *testing.T) {
	s, _, _ := testScreen()
	if s.Title() != "French" {
		t.Errorf("Title = %q, want %q", s.Title(), "French")
	}
}

func TestPracticeScreen_CardsLoaded(t *testing.T) {
	s, _, _ := testScreen()
	scr, _ := s.Update(cardsLoadedMsg{ISO: "fr", Cards: testCards()})
	ss := scr.(*PracticeScreen)
	if ss.state == nil {
		t.Fatal("expected session state after cards loaded")
	}
	if ss.state.Phase != psess.PhasePracticing {
		t.Errorf("Phase = %v, want PhasePracticing", ss.state.Phase)
	}
	if v := ss.View(80, 24); v == "" {
		t.Error("expected non-empty card view")
	}
}

func TestPracticeScreen_StaleCardsDropped(t *testing.T) {
	s, _, _ := testScreen()
	scr, _ := s.Update(cardsLoadedMsg{ISO: "de", Cards: testCards()})
	if scr.(*PracticeScreen).state != nil {
		t.Error("cards for a different course must be dropped")
	}
}

func TestPracticeScreen_EmptyDeck(t *testing.T) {
	s, _, _ := testScreen()
	scr, _ := s.Update(cardsLoadedMsg{ISO: "fr", Cards: nil})
	ss := scr.(*PracticeScreen)
	if !ss.emptyDeck {
		t.Fatal("expected empty-deck state")
	}
	if ss.state != nil {
		t.Error("empty deck must not enter practicing")
	}

	_, cmd := ss.Update(keyPress(' '))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("any key on empty deck should pop the screen")
	}
}

func TestPracticeScreen_LoadError(t *testing.T) {
	s, _, _ := testScreen()
	scr, _ := s.Update(cardsLoadedMsg{ISO: "fr", Err: errors.New("connection refused")})
	ss := scr.(*PracticeScreen)
	if ss.errMsg == "" {
		t.Error("expected error message after failed load")
	}
	if v := ss.View(80, 24); v == "" {
		t.Error("expected non-empty error view")
	}
}

func TestPracticeScreen_StatsFailureNonFatal(t *testing.T) {
	s, _, _ := testScreen()
	s.Update(cardsLoadedMsg{ISO: "fr", Cards: testCards()})
	scr, _ := s.Update(statsLoadedMsg{ISO: "fr", Err: errors.New("boom")})
	ss := scr.(*PracticeScreen)
	if ss.state == nil || ss.state.Phase != psess.PhasePracticing {
		t.Error("stats failure must not interrupt practicing")
	}
	if ss.stats != nil {
		t.Error("expected degraded (nil) stats")
	}
	if v := ss.View(80, 24); v == "" {
		t.Error("expected non-empty view with degraded stats panel")
	}
}

func TestPracticeScreen_RevealAndGrade(t *testing.T) {
	s, gateway, _ := loadedScreen()

	// Grade keys do nothing before reveal.
	s.Update(keyPress('3'))
	if s.reviewPending {
		t.Fatal("grading before reveal must be ignored")
	}

	s.Update(keyPress(' '))
	if !s.state.ShowAnswer {
		t.Fatal("expected answer revealed")
	}

	_, cmd := s.Update(keyPress('3'))
	if !s.reviewPending {
		t.Fatal("expected review in flight")
	}
	if cmd == nil {
		t.Fatal("expected review command")
	}

	msg := cmd().(reviewDoneMsg)
	if msg.CardID != 1 {
		t.Errorf("review card = %d, want 1", msg.CardID)
	}
	s.Update(msg)

	if len(gateway.Reviews) != 1 {
		t.Fatalf("reviews recorded = %d, want 1", len(gateway.Reviews))
	}
	if gateway.Reviews[0].Grade != tutor.GradeGood {
		t.Errorf("grade = %v, want GradeGood", gateway.Reviews[0].Grade)
	}
	if s.state.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (advanced)", s.state.Cursor)
	}
	if s.state.ShowAnswer {
		t.Error("advance must clear reveal")
	}
}

func TestPracticeScreen_DuplicateGradeIgnored(t *testing.T) {
	s, _, _ := loadedScreen()
	s.Update(keyPress(' '))

	_, cmd1 := s.Update(keyPress('2'))
	_, cmd2 := s.Update(keyPress('4'))
	if cmd1 == nil {
		t.Fatal("expected first review command")
	}
	if cmd2 != nil {
		t.Error("second grade while review pending must be dropped")
	}
}

func TestPracticeScreen_ReviewFailureStillAdvances(t *testing.T) {
	s, gateway, _ := loadedScreen()
	gateway.ReviewErr = errors.New("server down")
	s.Update(keyPress(' '))

	_, cmd := s.Update(keyPress('1'))
	msg := cmd().(reviewDoneMsg)
	if msg.Err == nil {
		t.Fatal("expected review error")
	}
	_, after := s.Update(msg)

	if s.state.Cursor != 1 {
		t.Errorf("cursor = %d, want 1 (advance despite failure)", s.state.Cursor)
	}
	if after == nil {
		t.Error("expected status + stats refresh commands after failed review")
	}
}

func TestPracticeScreen_CompleteAfterLastCard(t *testing.T) {
	s, _, _ := loadedScreen()

	for i := 0; i < 3; i++ {
		s.Update(keyPress(' '))
		_, cmd := s.Update(keyPress('3'))
		s.Update(cmd().(reviewDoneMsg))
	}

	if s.state.Phase != psess.PhaseComplete {
		t.Fatalf("Phase = %v, want PhaseComplete", s.state.Phase)
	}
	if v := s.View(80, 24); v == "" {
		t.Error("expected non-empty summary view")
	}

	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter on summary should pop the screen")
	}
}

func TestPracticeScreen_RecordAndEvaluate(t *testing.T) {
	s, gateway, rec := loadedScreen()
	s.Update(keyPress(' '))

	s.Update(keyPress('r'))
	if !rec.recording {
		t.Fatal("expected recorder running")
	}
	if s.state.Phase != psess.PhaseRecording {
		t.Errorf("Phase = %v, want PhaseRecording", s.state.Phase)
	}

	_, cmd := s.Update(keyPress('r'))
	if rec.recording {
		t.Fatal("expected recorder stopped")
	}
	if s.state.Phase != psess.PhaseEvaluating {
		t.Errorf("Phase = %v, want PhaseEvaluating", s.state.Phase)
	}

	msg := cmd().(evaluationMsg)
	if msg.CardID != 1 {
		t.Errorf("evaluation card = %d, want 1", msg.CardID)
	}
	s.Update(msg)

	if len(gateway.Expected) != 1 || gateway.Expected[0] != "bonjour" {
		t.Errorf("expected text = %v, want the card back [bonjour]", gateway.Expected)
	}

	if s.state.Phase != psess.PhasePracticing {
		t.Errorf("Phase = %v, want PhasePracticing after result", s.state.Phase)
	}
	if s.state.Evaluation == nil {
		t.Fatal("expected evaluation attached to card")
	}
	if v := s.View(80, 24); v == "" {
		t.Error("expected non-empty view with evaluation panel")
	}
}

func TestPracticeScreen_EvaluationFailureKeepsAnswer(t *testing.T) {
	s, gateway, _ := loadedScreen()
	gateway.EvaluateErr = errors.New("stt unavailable")
	s.Update(keyPress(' '))

	s.Update(keyPress('r'))
	_, cmd := s.Update(keyPress('r'))
	_, statusCmd := s.Update(cmd().(evaluationMsg))

	if s.state.Phase != psess.PhasePracticing {
		t.Errorf("Phase = %v, want PhasePracticing after failure", s.state.Phase)
	}
	if !s.state.ShowAnswer {
		t.Error("answer must stay visible after evaluation failure")
	}
	if s.state.Evaluation != nil {
		t.Error("no evaluation should be attached on failure")
	}
	if statusCmd == nil {
		t.Error("expected a status message command")
	}

	// Re-recording is allowed immediately.
	s.Update(keyPress('r'))
	if s.state.Phase != psess.PhaseRecording {
		t.Error("expected re-recording to start")
	}
}

func TestPracticeScreen_StaleEvaluationDropped(t *testing.T) {
	s, _, _ := loadedScreen()
	s.Update(keyPress(' '))
	s.Update(keyPress('r'))
	_, cmd := s.Update(keyPress('r'))
	msg := cmd().(evaluationMsg)

	// Navigate away before the verdict arrives.
	s.state.Phase = psess.PhasePracticing
	s.evaluating = false
	s.Update(specialKey(tea.KeyRight))

	s.Update(msg)
	if s.state.Evaluation != nil {
		t.Error("evaluation for a previous card must be dropped")
	}
}

func TestPracticeScreen_SecondRecordKeyStopsNotRestarts(t *testing.T) {
	s, _, rec := loadedScreen()
	s.Update(keyPress(' '))
	s.Update(keyPress('r'))
	s.Update(keyPress('r'))

	if rec.starts != 1 || rec.stops != 1 {
		t.Errorf("starts = %d, stops = %d, want 1/1", rec.starts, rec.stops)
	}
}

func TestPracticeScreen_EscWhileRecordingDiscards(t *testing.T) {
	s, _, rec := loadedScreen()
	s.Update(keyPress('r'))
	s.Update(specialKey(tea.KeyEscape))

	if rec.recording {
		t.Error("expected recorder released")
	}
	if rec.cancels != 1 {
		t.Errorf("cancels = %d, want 1", rec.cancels)
	}
	if s.state.Phase != psess.PhasePracticing {
		t.Errorf("Phase = %v, want PhasePracticing", s.state.Phase)
	}
}

func TestPracticeScreen_ExitReleasesMic(t *testing.T) {
	s, _, rec := loadedScreen()
	s.Update(keyPress('r'))

	// Esc stops the take, a second Esc leaves the screen.
	s.Update(specialKey(tea.KeyEscape))
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("expected pop command on exit")
	}
	if rec.recording {
		t.Error("mic must be released on exit")
	}
}

func TestPracticeScreen_RecorderStartFailure(t *testing.T) {
	s, _, rec := loadedScreen()
	rec.startErr = errors.New("mic busy")

	_, cmd := s.Update(keyPress('r'))
	if s.state.Phase != psess.PhasePracticing {
		t.Errorf("Phase = %v, want PhasePracticing after start failure", s.state.Phase)
	}
	if cmd == nil {
		t.Error("expected a status message command")
	}
}

func TestPracticeScreen_ResetFlow(t *testing.T) {
	s, gateway, _ := loadedScreen()

	s.Update(keyPress('R'))
	if !s.confirmReset {
		t.Fatal("expected reset confirmation")
	}
	if v := s.View(80, 24); v == "" {
		t.Error("expected non-empty confirm view")
	}

	_, cmd := s.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("expected reset command")
	}
	msg := cmd().(resetDoneMsg)
	s.Update(msg)

	if len(gateway.Resets) != 1 || gateway.Resets[0] != "fr" {
		t.Errorf("resets = %v, want [fr]", gateway.Resets)
	}
	if s.state != nil {
		t.Error("reset must re-enter loading")
	}
	if !s.loading {
		t.Error("expected loading after reset")
	}
}

func TestPracticeScreen_ResetDeclined(t *testing.T) {
	s, gateway, _ := loadedScreen()
	s.Update(keyPress('R'))
	s.Update(keyPress('n'))

	if s.confirmReset {
		t.Error("expected confirmation dismissed")
	}
	if len(gateway.Resets) != 0 {
		t.Error("declined reset must not hit the backend")
	}
}

func TestPracticeScreen_SpeaksVisibleSide(t *testing.T) {
	gateway := &tutor.Fake{Cards: map[string][]tutor.PracticeCard{"fr": testCards()}}
	rec := &fakeRecorder{}
	player := &capturePlayer{}
	s := New(gateway, rec, player, zerolog.Nop(), testCourse())
	s.Update(cardsLoadedMsg{ISO: "fr", Cards: testCards()})

	// Prompt side plays in English while the answer is hidden.
	_, cmd := s.Update(keyPress('t'))
	if cmd == nil {
		t.Fatal("expected playback command")
	}
	cmd()
	if want := "fake://tts?lang=en&text=hello"; len(player.urls) != 1 || player.urls[0] != want {
		t.Fatalf("urls = %v, want [%s]", player.urls, want)
	}

	// Once revealed, the target-language answer plays in the course voice.
	s.Update(keyPress(' '))
	_, cmd = s.Update(keyPress('t'))
	cmd()
	if want := "fake://tts?lang=fr&text=bonjour"; len(player.urls) != 2 || player.urls[1] != want {
		t.Fatalf("urls = %v, want second %s", player.urls, want)
	}
}

func TestPracticeScreen_HintToggle(t *testing.T) {
	s, _, _ := loadedScreen()
	s.Update(keyPress('h'))
	if !s.state.ShowHint {
		t.Error("expected hint shown")
	}
	s.Update(keyPress('h'))
	if s.state.ShowHint {
		t.Error("expected hint hidden")
	}
}

func TestPracticeScreen_Navigation(t *testing.T) {
	s, _, _ := loadedScreen()

	s.Update(specialKey(tea.KeyRight))
	if s.state.Cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.state.Cursor)
	}
	s.Update(specialKey(tea.KeyLeft))
	if s.state.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.state.Cursor)
	}
	s.Update(specialKey(tea.KeyLeft))
	if s.state.Cursor != 0 {
		t.Error("Prev at first card must be a no-op")
	}
}

func TestPracticeScreen_KeyHints(t *testing.T) {
	s, _, _ := loadedScreen()
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints while practicing")
	}
	s.Update(keyPress(' '))
	if len(s.KeyHints()) == 0 {
		t.Error("expected key hints after reveal")
	}
}
