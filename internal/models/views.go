package models

import "time"

// EnrollmentView is a dashboard row: the enrollment joined with its course.
type EnrollmentView struct {
	CourseID    uint
	Name        string
	Description string
	Badge       string
	Progress    int
}

// ThreadView is a thread joined with its author's name.
type ThreadView struct {
	ID         uint
	Title      string
	Content    string
	UserID     uint
	AuthorName string
	CreatedAt  time.Time
}

// PostView is a reply joined with its author's name.
type PostView struct {
	ID         uint
	ThreadID   uint
	Content    string
	UserID     uint
	AuthorName string
	CreatedAt  time.Time
}

// UserStats are the per-user counters shown on the profile page.
type UserStats struct {
	EnrolledCourses int64
	ForumThreads    int64
	ForumPosts      int64
	TestAttempts    int64
}
