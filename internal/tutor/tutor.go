// Package tutor is the typed boundary to the remote tutor service. It
// carries no business logic: each method is one request/response pair,
// and every failure is classified into the Kind taxonomy so callers can
// decide what is fatal and what degrades.
package tutor

import "context"

// Service is the gateway contract the screens depend on. *Client
// implements it against a live backend; Fake implements it for tests.
type Service interface {
	// ListCourses fetches the course catalogue. An empty slice is a
	// valid, non-error result.
	ListCourses(ctx context.Context) ([]Course, error)

	// PracticeCards fetches the due-card sequence for a course. The
	// backend decides ordering and selection; re-entering a course
	// yields a fresh sequence.
	PracticeCards(ctx context.Context, iso string) ([]PracticeCard, error)

	// CourseStats fetches a point-in-time progress snapshot.
	CourseStats(ctx context.Context, iso string) (*CourseStats, error)

	// SubmitReview records a quality rating for one card. Not
	// idempotent: each submission advances the card's schedule once.
	SubmitReview(ctx context.Context, cardID int, grade Grade) error

	// ResetCourse clears all per-card progress for a course.
	ResetCourse(ctx context.Context, iso string) error

	// AddCard appends a custom card to a course deck.
	AddCard(ctx context.Context, iso string, card NewCard) error

	// SeedLanguage asks the backend to create a starter deck.
	SeedLanguage(ctx context.Context, iso string) error

	// EvaluatePronunciation uploads a recorded clip with the expected
	// target-language text and returns the backend's scoring.
	EvaluatePronunciation(ctx context.Context, expected string, clip AudioClip) (*EvaluationResult, error)

	// TTSURL builds the text-to-speech stream URL. Pure string
	// construction, no network call.
	TTSURL(text, lang string) string
}
