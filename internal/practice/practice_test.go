package practice

import (
	"testing"

	"github.com/kennt44/teachme/internal/tutor"
)

func testCards(n int) []tutor.PracticeCard {
	cards := make([]tutor.PracticeCard, n)
	for i := range cards {
		cards[i] = tutor.PracticeCard{ID: i + 1, Front: "front", Back: "back", Hint: "hint"}
	}
	return cards
}

func testState(n int) *State {
	return NewState(tutor.Course{ISO: "fr", Language: "French", CardCount: n}, testCards(n))
}

func TestNewState(t *testing.T) {
	s := testState(3)
	if s.Phase != PhasePracticing {
		t.Errorf("Phase = %v, want PhasePracticing", s.Phase)
	}
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0", s.Cursor)
	}
	if s.SessionID == "" {
		t.Error("SessionID should be set")
	}
	if s.Current().ID != 1 {
		t.Errorf("Current().ID = %d, want 1", s.Current().ID)
	}
}

func TestNavigationBounds(t *testing.T) {
	s := testState(3)

	if s.Prev() {
		t.Error("Prev at first card should be a no-op")
	}
	if s.Cursor != 0 {
		t.Errorf("Cursor = %d after no-op Prev, want 0", s.Cursor)
	}

	if !s.Next() || !s.Next() {
		t.Fatal("Next should succeed until the last card")
	}
	if s.Next() {
		t.Error("Next at last card should be a no-op")
	}
	if s.Cursor != 2 {
		t.Errorf("Cursor = %d, want 2", s.Cursor)
	}

	if !s.Prev() {
		t.Error("Prev should succeed when not at the first card")
	}
	if s.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", s.Cursor)
	}
}

func TestNavigationClearsTransientState(t *testing.T) {
	s := testState(3)
	s.Reveal()
	s.ToggleHint()
	s.SetEvaluation(&tutor.EvaluationResult{Similarity: 90})

	s.Next()
	if s.ShowAnswer || s.ShowHint || s.Evaluation != nil {
		t.Error("Next should clear reveal, hint and evaluation")
	}

	s.Reveal()
	s.Prev()
	if s.ShowAnswer {
		t.Error("Prev should clear reveal")
	}
}

func TestNoOpNavigationKeepsState(t *testing.T) {
	s := testState(1)
	s.Reveal()
	s.SetEvaluation(&tutor.EvaluationResult{Similarity: 50})

	s.Next()
	s.Prev()
	if !s.ShowAnswer || s.Evaluation == nil {
		t.Error("bounded navigation must not clear state when the cursor does not move")
	}
}

func TestToggleHint(t *testing.T) {
	s := testState(1)
	s.ToggleHint()
	if !s.ShowHint {
		t.Error("ToggleHint should show the hint")
	}
	s.ToggleHint()
	if s.ShowHint {
		t.Error("second ToggleHint should hide the hint")
	}
}

func TestToggleHintWithoutHint(t *testing.T) {
	s := NewState(tutor.Course{ISO: "fr"}, []tutor.PracticeCard{{ID: 1, Front: "a", Back: "b"}})
	s.ToggleHint()
	if s.ShowHint {
		t.Error("ToggleHint should be a no-op for a card without a hint")
	}
}

func TestAdvanceThroughSession(t *testing.T) {
	s := testState(3)

	if !s.Advance() {
		t.Fatal("Advance from card 1 of 3 should continue")
	}
	if s.Cursor != 1 || s.Reviewed != 1 {
		t.Errorf("Cursor = %d, Reviewed = %d", s.Cursor, s.Reviewed)
	}

	s.Reveal()
	if !s.Advance() {
		t.Fatal("Advance from card 2 of 3 should continue")
	}
	if s.ShowAnswer {
		t.Error("Advance should clear reveal")
	}

	if s.Advance() {
		t.Error("Advance from the last card should end the session")
	}
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %v, want PhaseComplete", s.Phase)
	}
	if s.Reviewed != 3 {
		t.Errorf("Reviewed = %d, want 3", s.Reviewed)
	}
}

func TestAdvanceSingleCard(t *testing.T) {
	s := testState(1)
	if s.Advance() {
		t.Error("Advance on a one-card session should complete immediately")
	}
	if s.Phase != PhaseComplete {
		t.Errorf("Phase = %v, want PhaseComplete", s.Phase)
	}
}

func TestSimilarityBand(t *testing.T) {
	cases := []struct {
		similarity float64
		want       Band
	}{
		{0, BandLow},
		{59.9, BandLow},
		{60, BandMid},
		{79.9, BandMid},
		{80, BandHigh},
		{100, BandHigh},
	}
	for _, tc := range cases {
		if got := SimilarityBand(tc.similarity); got != tc.want {
			t.Errorf("SimilarityBand(%v) = %v, want %v", tc.similarity, got, tc.want)
		}
	}
}
