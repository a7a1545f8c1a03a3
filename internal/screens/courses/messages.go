package courses

import "github.com/kennt44/teachme/internal/tutor"

// coursesLoadedMsg is sent when the course list fetch completes.
type coursesLoadedMsg struct {
	Courses []tutor.Course
	Err     error
}
