package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	goQuizClient "github.com/MrEthical07/goQuizClient"
	"github.com/MrEthical07/goQuizClient/store"
)

func newQuizServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	requireAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer AT1" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "token expired"})
				return
			}
			next(w, r)
		}
	}

	mux.HandleFunc("GET /api/quizzes", requireAuth(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"_id": "q1", "title": "Go Basics", "questions": []map[string]any{
					{"question": "What does := do?"},
				}},
				{"_id": "q2", "title": "Concurrency"},
			},
		})
	}))

	mux.HandleFunc("POST /api/quizzes", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var input CreateQuizInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bad request"})
			return
		}
		if strings.TrimSpace(input.Title) == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "title required"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"_id": "q3", "title": input.Title, "text": input.Text,
		})
	}))

	mux.HandleFunc("POST /api/submissions", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		var input SubmitInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		writeJSON(w, http.StatusCreated, map[string]any{
			"_id":            "s1",
			"quizId":         input.QuizID,
			"userEmail":      input.UserEmail,
			"score":          50.0,
			"correctAnswers": 1,
			"totalQuestions": 2,
			"timeSpent":      input.TimeSpent,
		})
	}))

	mux.HandleFunc("GET /api/submissions", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("userEmail") == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "userEmail required"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"submissions": []map[string]any{
				{"_id": "s1", "quizId": "q1", "userEmail": r.URL.Query().Get("userEmail"), "score": 50.0},
			},
			"page":  r.URL.Query().Get("page"),
			"limit": r.URL.Query().Get("limit"),
		})
	}))

	mux.HandleFunc("GET /api/submissions/quiz/{id}", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "q1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "quiz not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"submissions": []map[string]any{
				{"_id": "s1", "quizId": "q1", "score": 50.0},
				{"_id": "s2", "quizId": "q1", "score": 100.0},
			},
		})
	}))

	mux.HandleFunc("GET /api/submissions/quiz/{id}/stats", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"quizId":           r.PathValue("id"),
			"totalSubmissions": 2,
			"averageScore":     75.0,
			"bestScore":        100.0,
		})
	}))

	mux.HandleFunc("GET /api/submissions/{id}", requireAuth(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "s1" {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "submission not found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"_id": "s1", "quizId": "q1", "score": 50.0,
		})
	}))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newQuizService(t *testing.T) *Service {
	t.Helper()

	server := newQuizServer(t)

	credStore := store.NewMemoryStore()
	snap := store.Snapshot{
		User:         &store.User{ID: "user-1", Name: "Ada", Email: "a@b.com"},
		AccessToken:  "AT1",
		RefreshToken: "RT1",
	}
	if err := credStore.Save(context.Background(), snap); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	client, err := goQuizClient.New().
		WithBaseURL(server.URL).
		WithStore(credStore).
		Build(context.Background())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	t.Cleanup(client.Close)

	return NewService(client)
}

func TestQuizzesListsAll(t *testing.T) {
	svc := newQuizService(t)

	quizzes, err := svc.Quizzes(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(quizzes))
	}
	if quizzes[0].ID != "q1" || quizzes[0].Title != "Go Basics" {
		t.Fatalf("unexpected first quiz: %+v", quizzes[0])
	}
	if len(quizzes[0].Questions) != 1 {
		t.Fatalf("expected embedded questions, got %+v", quizzes[0].Questions)
	}
}

func TestQuizByID(t *testing.T) {
	svc := newQuizService(t)

	q, err := svc.QuizByID(context.Background(), "q2")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if q.Title != "Concurrency" {
		t.Fatalf("unexpected quiz: %+v", q)
	}

	if _, err := svc.QuizByID(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateQuizReturnsServerRecord(t *testing.T) {
	svc := newQuizService(t)

	created, err := svc.CreateQuiz(context.Background(), CreateQuizInput{
		Title: "Generics",
		Text:  "Type parameters were added in Go 1.18.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != "q3" || created.Title != "Generics" {
		t.Fatalf("unexpected created quiz: %+v", created)
	}
}

func TestCreateQuizSurfacesValidationMessage(t *testing.T) {
	svc := newQuizService(t)

	_, err := svc.CreateQuiz(context.Background(), CreateQuizInput{Title: "   "})

	var apiErr *goQuizClient.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "title required" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestSubmitReturnsGradedAttempt(t *testing.T) {
	svc := newQuizService(t)

	graded, err := svc.Submit(context.Background(), SubmitInput{
		QuizID:    "q1",
		UserEmail: "a@b.com",
		Answers: []Answer{
			{Question: "What does := do?", Selected: "declare and assign"},
			{Question: "What is a goroutine?", Selected: "a thread"},
		},
		TimeSpent: 30,
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if graded.CorrectAnswers != 1 || graded.TotalQuestions != 2 {
		t.Fatalf("unexpected grading: %+v", graded)
	}
	if graded.QuizID != "q1" || graded.TimeSpent != 30 {
		t.Fatalf("unexpected echo: %+v", graded)
	}
}

func TestUserSubmissionsPaginates(t *testing.T) {
	svc := newQuizService(t)

	subs, err := svc.UserSubmissions(context.Background(), "a@b.com", ListOptions{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(subs) != 1 || subs[0].UserEmail != "a@b.com" {
		t.Fatalf("unexpected submissions: %+v", subs)
	}
}

func TestQuizSubmissionsAndStats(t *testing.T) {
	svc := newQuizService(t)

	subs, err := svc.QuizSubmissions(context.Background(), "q1", "", ListOptions{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(subs))
	}

	stats, err := svc.QuizStats(context.Background(), "q1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalSubmissions != 2 || stats.BestScore != 100.0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if _, err := svc.QuizSubmissions(context.Background(), "missing", "", ListOptions{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown quiz, got %v", err)
	}
}

func TestSubmissionByID(t *testing.T) {
	svc := newQuizService(t)

	sub, err := svc.SubmissionByID(context.Background(), "s1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if sub.ID != "s1" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	if _, err := svc.SubmissionByID(context.Background(), "s9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
