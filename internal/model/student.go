package model

import "time"

// Student is an enrolled learner identified by a NEMIS number.
type Student struct {
	ID         int64
	Name       string
	NEMIS      string
	Grade      string
	Guardian   string
	Contact    string
	EnrolledAt time.Time
}

// Grades lists the grade levels enrollment and fee structures accept.
var Grades = []string{
	"Grade 1", "Grade 2", "Grade 3", "Grade 4",
	"Grade 5", "Grade 6", "Grade 7", "Grade 8",
}

// KnownGrade reports whether g is a recognized grade level.
func KnownGrade(g string) bool {
	for _, known := range Grades {
		if g == known {
			return true
		}
	}
	return false
}
