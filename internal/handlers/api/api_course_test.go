package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/s/bitmentor/internal/database/testdb"
	"github.com/s/bitmentor/internal/models"
	"github.com/s/bitmentor/internal/service"
	"github.com/s/bitmentor/internal/session"
	"github.com/s/bitmentor/internal/storage"
)

type fixture struct {
	router   *mux.Router
	svc      *service.Service
	sessions *session.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	nop := zerolog.Nop()
	svc := service.New(storage.New(testdb.New(t)), service.Options{BcryptCost: bcrypt.MinCost, Logger: &nop})
	sessions := session.NewManager([]byte("0123456789abcdef0123456789abcdef"), session.NewMemoryStore(), time.Hour, false)

	r := mux.NewRouter()
	(&Service{Svc: svc, Sessions: sessions, Log: nop}).Register(r)
	return &fixture{router: r, svc: svc, sessions: sessions}
}

// login registers a user and returns the cookies of their session.
func (f *fixture) login(t *testing.T) []*http.Cookie {
	t.Helper()

	u, err := f.svc.Register(context.Background(), service.RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	_, err = f.sessions.Create(rec, httptest.NewRequest(http.MethodPost, "/auth", nil), session.Identity{UserID: u.ID, UserName: u.Name})
	require.NoError(t, err)
	return rec.Result().Cookies()
}

func (f *fixture) do(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCoursesAPI(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/courses", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var courses []models.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &courses))
	require.Len(t, courses, 3)
	assert.Equal(t, "Python for Beginners", courses[0].Name)
}

func TestCourseStructure(t *testing.T) {
	f := newFixture(t)

	t.Run("anonymous", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/courses/1/structure", nil), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp CourseStructureResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.IsAuth)
		assert.Len(t, resp.Lessons, 3)
		assert.Empty(t, resp.Done)
	})

	t.Run("enrolled user", func(t *testing.T) {
		cookies := f.login(t)

		rec := f.do(httptest.NewRequest(http.MethodPost, "/api/enroll", strings.NewReader(`{"course_id":1}`)), cookies)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"enrolled"}`, rec.Body.String())

		rec = f.do(httptest.NewRequest(http.MethodGet, "/api/courses/1/structure", nil), cookies)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp CourseStructureResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.IsAuth)
		assert.True(t, resp.Enrolled)
		assert.Equal(t, 0, resp.Progress)
	})

	t.Run("unknown course", func(t *testing.T) {
		rec := f.do(httptest.NewRequest(http.MethodGet, "/api/courses/99/structure", nil), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestQuestionsAPIHidesCorrectness(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/api/courses/1/questions", nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "IsCorrect")
	assert.NotContains(t, rec.Body.String(), "is_correct")

	var questions []models.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &questions))
	require.Len(t, questions, 2)
	assert.Len(t, questions[0].Answers, 3)
}

func TestSubmitEnrollment(t *testing.T) {
	f := newFixture(t)

	rec := f.do(httptest.NewRequest(http.MethodPost, "/api/enroll", strings.NewReader(`{"course_id":1}`)), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	cookies := f.login(t)

	rec = f.do(httptest.NewRequest(http.MethodPost, "/api/enroll", strings.NewReader(`not json`)), cookies)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(httptest.NewRequest(http.MethodPost, "/api/enroll", strings.NewReader(`{"course_id":42}`)), cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for i := 0; i < 2; i++ {
		rec = f.do(httptest.NewRequest(http.MethodPost, "/api/enroll", strings.NewReader(`{"course_id":2}`)), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
