package practice

import (
	"time"

	"github.com/kennt44/teachme/internal/tutor"
)

// Async results carry the course iso (and card id where it matters) so
// responses that arrive after the user moved on can be dropped.

// cardsLoadedMsg is sent when the due-card fetch completes.
type cardsLoadedMsg struct {
	ISO   string
	Cards []tutor.PracticeCard
	Err   error
}

// statsLoadedMsg is sent when the stats fetch completes.
type statsLoadedMsg struct {
	ISO   string
	Stats *tutor.CourseStats
	Err   error
}

// reviewDoneMsg is sent when a grade submission completes.
type reviewDoneMsg struct {
	ISO    string
	CardID int
	Err    error
}

// evaluationMsg is sent when pronunciation scoring completes.
type evaluationMsg struct {
	ISO    string
	CardID int
	Result *tutor.EvaluationResult
	Err    error
}

// resetDoneMsg is sent when a course reset completes.
type resetDoneMsg struct {
	ISO string
	Err error
}

// recordTickMsg repaints the elapsed-time indicator while recording.
type recordTickMsg time.Time
