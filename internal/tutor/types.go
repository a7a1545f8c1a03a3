package tutor

import "fmt"

// Course is one target language and its deck, as listed by the backend.
// The list is replaced wholesale on every reload; entries are never
// mutated client-side.
type Course struct {
	ISO       string `json:"iso"`
	Language  string `json:"language"`
	CardCount int    `json:"card_count"`
}

// PracticeCard is one prompt/answer pair drawn from a course deck.
// Identity is ID; the backend owns all scheduling state, the client
// treats cards as immutable for the lifetime of a session.
type PracticeCard struct {
	ID    int    `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint,omitempty"`
}

// CourseStats is a point-in-time snapshot, invalidated by any review
// or reset.
type CourseStats struct {
	TotalCards int `json:"total_cards"`
	Mastered   int `json:"mastered"`
	DueToday   int `json:"due_today"`
}

// NewCard is the payload for adding a custom card to a course.
type NewCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint,omitempty"`
}

// Grade is the learner's self-assessed recall quality for a card.
// Ordinal; the backend's scheduler consumes it as a bare integer.
type Grade int

const (
	GradeAgain Grade = iota
	GradeHard
	GradeGood
	GradeEasy
)

// String returns the label shown on the grading buttons.
func (g Grade) String() string {
	switch g {
	case GradeAgain:
		return "Again"
	case GradeHard:
		return "Hard"
	case GradeGood:
		return "Good"
	case GradeEasy:
		return "Easy"
	default:
		return fmt.Sprintf("Grade(%d)", int(g))
	}
}

// Valid reports whether g is one of the four defined quality ratings.
func (g Grade) Valid() bool {
	return g >= GradeAgain && g <= GradeEasy
}

// EvaluationResult is the backend's scoring of one spoken attempt.
// It is never persisted client-side beyond the current card.
type EvaluationResult struct {
	Similarity float64 `json:"similarity"`
	Grade      string  `json:"grade"`
	Feedback   string  `json:"feedback"`
	Transcript string  `json:"transcript"`
}

// AudioClip is one finalized recording, ready for upload. The gateway
// does not inspect or decode the audio content.
type AudioClip struct {
	Data        []byte
	ContentType string
}

// Filename returns an upload filename matching the clip's content type.
func (c AudioClip) Filename() string {
	switch c.ContentType {
	case "audio/flac":
		return "clip.flac"
	default:
		return "clip.wav"
	}
}
