package tutor

import (
	"context"
	"sync"
)

// Fake is an in-memory Service for tests. Zero value is usable: every
// call succeeds against the configured fixtures. Set the per-method Err
// fields to force failures.
type Fake struct {
	mu sync.Mutex

	Courses []Course
	Cards   map[string][]PracticeCard
	Stats   map[string]*CourseStats
	Result  *EvaluationResult

	CoursesErr  error
	CardsErr    error
	StatsErr    error
	ReviewErr   error
	ResetErr    error
	AddCardErr  error
	SeedErr     error
	EvaluateErr error

	Reviews  []FakeReview
	Resets   []string
	Added    []NewCard
	Seeded   []string
	Expected []string
}

// FakeReview records one SubmitReview call.
type FakeReview struct {
	CardID int
	Grade  Grade
}

var _ Service = (*Fake)(nil)

func (f *Fake) ListCourses(ctx context.Context) ([]Course, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CoursesErr != nil {
		return nil, f.CoursesErr
	}
	return append([]Course(nil), f.Courses...), nil
}

func (f *Fake) PracticeCards(ctx context.Context, iso string) ([]PracticeCard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CardsErr != nil {
		return nil, f.CardsErr
	}
	cards, ok := f.Cards[iso]
	if !ok {
		return nil, notFound("course " + iso + " not found")
	}
	return append([]PracticeCard(nil), cards...), nil
}

func (f *Fake) CourseStats(ctx context.Context, iso string) (*CourseStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StatsErr != nil {
		return nil, f.StatsErr
	}
	if stats, ok := f.Stats[iso]; ok {
		cp := *stats
		return &cp, nil
	}
	return &CourseStats{}, nil
}

func (f *Fake) SubmitReview(ctx context.Context, cardID int, grade Grade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReviewErr != nil {
		return f.ReviewErr
	}
	f.Reviews = append(f.Reviews, FakeReview{CardID: cardID, Grade: grade})
	return nil
}

func (f *Fake) ResetCourse(ctx context.Context, iso string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ResetErr != nil {
		return f.ResetErr
	}
	f.Resets = append(f.Resets, iso)
	return nil
}

func (f *Fake) AddCard(ctx context.Context, iso string, card NewCard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.AddCardErr != nil {
		return f.AddCardErr
	}
	f.Added = append(f.Added, card)
	return nil
}

func (f *Fake) SeedLanguage(ctx context.Context, iso string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SeedErr != nil {
		return f.SeedErr
	}
	f.Seeded = append(f.Seeded, iso)
	return nil
}

func (f *Fake) EvaluatePronunciation(ctx context.Context, expected string, clip AudioClip) (*EvaluationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.EvaluateErr != nil {
		return nil, f.EvaluateErr
	}
	f.Expected = append(f.Expected, expected)
	if f.Result != nil {
		cp := *f.Result
		return &cp, nil
	}
	return &EvaluationResult{Similarity: 100, Grade: "perfect", Feedback: "Perfect!", Transcript: expected}, nil
}

func (f *Fake) TTSURL(text, lang string) string {
	return "fake://tts?lang=" + lang + "&text=" + text
}
