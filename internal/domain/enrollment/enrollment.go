package enrollment

import (
	"errors"
	"time"
)

// One-way membership relation from a user to a course. Append-only.

type Enrollment struct {
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}

var ErrAlreadyEnrolled = errors.New("already enrolled")

type EnrollRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}
