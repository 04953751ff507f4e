package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/s/bitmentor/internal/database/testdb"
	"github.com/s/bitmentor/internal/models"
	"github.com/s/bitmentor/internal/storage"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestService(t *testing.T) (*Service, *storage.Storage) {
	t.Helper()
	st := storage.New(testdb.New(t))
	nop := zerolog.Nop()
	return New(st, Options{BcryptCost: bcrypt.MinCost, Now: tickingClock(), Logger: &nop}), st
}

func register(t *testing.T, svc *Service, name, email string) *models.User {
	t.Helper()
	u, err := svc.Register(context.Background(), RegisterInput{Name: name, Email: email, Password: "secret1"})
	require.NoError(t, err)
	return u
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u := register(t, svc, "Ada", "ada@example.com")
	assert.NotZero(t, u.ID)
	assert.NotEqual(t, []byte("secret1"), u.PasswordHash)

	got, err := svc.Authenticate(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, wrongPassword := svc.Authenticate(ctx, "ada@example.com", "nope")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword, unknownEmail)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc, "Ada", "ada@example.com")

	_, err := svc.Register(context.Background(), RegisterInput{Name: "Imposter", Email: "ada@example.com", Password: "secret2"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name   string
		in     RegisterInput
		fields []string
	}{
		{name: "empty", in: RegisterInput{}, fields: []string{"email", "fullname", "password"}},
		{name: "bad email", in: RegisterInput{Name: "Ada", Email: "ada", Password: "secret1"}, fields: []string{"email"}},
		{name: "short password", in: RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "123"}, fields: []string{"password"}},
		{name: "blank name", in: RegisterInput{Name: "   ", Email: "ada@example.com", Password: "secret1"}, fields: []string{"fullname"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.in)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)

			var fields []string
			for _, f := range ve.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")

	require.NoError(t, svc.Enroll(ctx, u.ID, 1))
	require.NoError(t, st.SetProgress(ctx, u.ID, 1, 66))
	require.NoError(t, svc.Enroll(ctx, u.ID, 1))

	var n int64
	require.NoError(t, st.DB().Model(&models.Enrollment{}).Where("user_id = ? AND course_id = ?", u.ID, 1).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	rows, err := svc.Enrollments(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 66, rows[0].Progress)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newTestService(t)
	u := register(t, svc, "Ada", "ada@example.com")

	err := svc.Enroll(context.Background(), u.ID, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseDetail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")

	detail, err := svc.CourseDetail(ctx, u.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "Java Fundamentals", detail.Course.Name)
	assert.False(t, detail.Enrolled)
	require.Len(t, detail.Lessons, 3)
	assert.Equal(t, "What is Java?", detail.Lessons[0].Title)
	assert.Equal(t, "Variables and Data Types", detail.Lessons[2].Title)

	_, err = svc.CourseDetail(ctx, u.ID, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCompleteLessonUpdatesProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")
	require.NoError(t, svc.Enroll(ctx, u.ID, 1))

	progress := func() int {
		d, err := svc.CourseDetail(ctx, u.ID, 1)
		require.NoError(t, err)
		return d.Progress
	}

	require.NoError(t, svc.CompleteLesson(ctx, u.ID, 1, 1))
	assert.Equal(t, 33, progress())

	require.NoError(t, svc.CompleteLesson(ctx, u.ID, 1, 1))
	assert.Equal(t, 33, progress())

	require.NoError(t, svc.CompleteLesson(ctx, u.ID, 1, 2))
	require.NoError(t, svc.CompleteLesson(ctx, u.ID, 1, 3))
	assert.Equal(t, 100, progress())

	// lesson 4 belongs to the Java course
	assert.ErrorIs(t, svc.CompleteLesson(ctx, u.ID, 1, 4), ErrNotFound)
	assert.ErrorIs(t, svc.CompleteLesson(ctx, u.ID, 1, 999), ErrNotFound)
}

func TestCompleteLessonWithoutEnrollment(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")

	require.NoError(t, svc.CompleteLesson(ctx, u.ID, 3, 7))

	d, err := svc.CourseDetail(ctx, u.ID, 3)
	require.NoError(t, err)
	assert.True(t, d.Done[7])
	assert.False(t, d.Enrolled)
	assert.Equal(t, 0, d.Progress)
}

func TestScoreSubmission(t *testing.T) {
	// Course 1: question 1 -> answers 1(correct),2,3 ; question 2 -> answers 4,5(correct),6
	tests := []struct {
		name    string
		answers []uint
		want    int
		wantErr error
	}{
		{name: "all correct", answers: []uint{1, 5}, want: 100},
		{name: "none correct", answers: []uint{2, 4}, want: 0},
		{name: "half correct", answers: []uint{1, 6}, want: 50},
		{name: "unanswered question counts against", answers: []uint{5}, want: 50},
		{name: "duplicates collapse", answers: []uint{1, 1, 5}, want: 100},
		{name: "no answers", answers: nil, wantErr: ErrNoAnswersSubmitted},
		{name: "answer from another course", answers: []uint{1, 7}, wantErr: ErrForeignAnswer},
		{name: "two answers for one question", answers: []uint{1, 2}, wantErr: ErrMultipleAnswers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			u := register(t, svc, "Ada", "ada@example.com")

			res, err := svc.ScoreSubmission(context.Background(), u.ID, 1, tt.answers)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Score)
			assert.Equal(t, 2, res.Total)
		})
	}
}

func TestScoreSubmissionTruncates(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")

	db := st.DB()
	require.NoError(t, db.Create(&models.Course{ID: 20, Name: "Thirds"}).Error)
	var correct []uint
	for i := 0; i < 3; i++ {
		q := models.Question{CourseID: 20, Text: "q", Answers: []models.Answer{{Text: "yes", IsCorrect: true}, {Text: "no"}}}
		require.NoError(t, db.Create(&q).Error)
		correct = append(correct, q.Answers[0].ID)
	}

	res, err := svc.ScoreSubmission(ctx, u.ID, 20, correct[:2])
	require.NoError(t, err)
	assert.Equal(t, 66, res.Score)
}

func TestScoreSubmissionZeroQuestions(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")
	require.NoError(t, st.DB().Create(&models.Course{ID: 30, Name: "Empty"}).Error)

	res, err := svc.ScoreSubmission(ctx, u.ID, 30, []uint{1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0, res.Total)

	_, err = svc.ScoreSubmission(ctx, u.ID, 404, []uint{1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTestsListsBestScore(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")

	_, err := svc.ScoreSubmission(ctx, u.ID, 1, []uint{1, 6})
	require.NoError(t, err)
	_, err = svc.ScoreSubmission(ctx, u.ID, 1, []uint{1, 5})
	require.NoError(t, err)

	tests, err := svc.Tests(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, tests, 3)
	assert.Equal(t, 2, tests[0].QuestionCount)
	assert.True(t, tests[0].Attempted)
	assert.Equal(t, 100, tests[0].BestScore)
	assert.False(t, tests[2].Attempted)
	assert.Equal(t, 1, tests[2].QuestionCount)
}

func TestForumOrdering(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	ada := register(t, svc, "Ada", "ada@example.com")
	bob := register(t, svc, "Bob", "bob@example.com")

	first, err := svc.CreateThread(ctx, ada.ID, ThreadInput{Title: "Python loops help", Content: "..."})
	require.NoError(t, err)
	second, err := svc.CreateThread(ctx, bob.ID, ThreadInput{Title: "Java generics", Content: "?"})
	require.NoError(t, err)

	threads, err := svc.Threads(ctx)
	require.NoError(t, err)
	require.Len(t, threads, 2)
	assert.Equal(t, second, threads[0].ID)
	assert.Equal(t, first, threads[1].ID)

	_, err = svc.Reply(ctx, first, bob.ID, ReplyInput{Content: "Use range()..."})
	require.NoError(t, err)
	last, err := svc.Reply(ctx, first, ada.ID, ReplyInput{Content: "Thanks!"})
	require.NoError(t, err)

	posts, err := svc.Posts(ctx, first)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, last, posts[1].ID)
	assert.Equal(t, "Ada", posts[1].AuthorName)

	thread, err := svc.Thread(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Ada", thread.AuthorName)
}

func TestForumErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")

	_, err := svc.Reply(ctx, 404, u.ID, ReplyInput{Content: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Thread(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)

	var ve *ValidationError
	_, err = svc.CreateThread(ctx, u.ID, ThreadInput{Title: "", Content: "body"})
	assert.ErrorAs(t, err, &ve)
}

func TestProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	u := register(t, svc, "Ada", "ada@example.com")
	require.NoError(t, svc.Enroll(ctx, u.ID, 1))
	require.NoError(t, svc.Enroll(ctx, u.ID, 2))
	_, err := svc.CreateThread(ctx, u.ID, ThreadInput{Title: "t", Content: "c"})
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, u.ID, ProfileInput{Name: "Ada Lovelace", Bio: "Analyst"})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
	assert.Equal(t, "Analyst", updated.Bio)
	assert.Equal(t, "ada@example.com", updated.Email)

	p, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", p.User.Name)
	assert.Equal(t, int64(2), p.Stats.EnrolledCourses)
	assert.Equal(t, int64(1), p.Stats.ForumThreads)
	assert.Equal(t, int64(0), p.Stats.ForumPosts)

	_, err = svc.Profile(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSignInWithGoogle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.SignInWithGoogle(ctx, GoogleProfile{ID: "g-1", Email: "grace@example.com", Name: "Grace"})
	require.NoError(t, err)
	again, err := svc.SignInWithGoogle(ctx, GoogleProfile{ID: "g-1", Email: "grace@example.com", Name: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)

	_, err = svc.SignInWithGoogle(ctx, GoogleProfile{})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestEndToEndScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	ada := register(t, svc, "Ada", "ada@example.com")
	require.NoError(t, svc.Enroll(ctx, ada.ID, 1))

	questions, err := svc.Questions(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, questions)

	var correct []uint
	for _, q := range questions {
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct = append(correct, a.ID)
			}
		}
	}

	res, err := svc.ScoreSubmission(ctx, ada.ID, 1, correct)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)

	_, err = svc.ScoreSubmission(ctx, ada.ID, 1, nil)
	assert.ErrorIs(t, err, ErrNoAnswersSubmitted)
}
