package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	goQuizClient "github.com/MrEthical07/goQuizClient"
)

const (
	quizzesPath     = "/api/quizzes"
	submissionsPath = "/api/submissions"

	maxBodyBytes = 8 << 20
)

// ErrNotFound is returned when a quiz or submission does not exist.
var ErrNotFound = errors.New("not found")

// Choice is one answer option of a question.
type Choice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect,omitempty"`
}

// Question is a single quiz item.
type Question struct {
	Question string   `json:"question"`
	Choices  []Choice `json:"choices,omitempty"`
}

// Quiz defines a public type used by goQuizClient APIs.
//
// Quiz mirrors the server's quiz record. The server assigns ID; CreatedBy is
// the author's identifier as the server tracks it.
type Quiz struct {
	ID        string     `json:"_id"`
	Title     string     `json:"title"`
	Text      string     `json:"text,omitempty"`
	CreatedBy string     `json:"createdBy,omitempty"`
	Questions []Question `json:"questions,omitempty"`
	CreatedAt time.Time  `json:"createdAt,omitempty"`
}

// CreateQuizInput defines a public type used by goQuizClient APIs.
type CreateQuizInput struct {
	Title     string `json:"title"`
	Text      string `json:"text"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// Service defines a public type used by goQuizClient APIs.
//
// Service instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Service struct {
	client *goQuizClient.Client
}

// NewService describes the newservice operation and its observable behavior.
func NewService(client *goQuizClient.Client) *Service {
	return &Service{client: client}
}

// Quizzes describes the quizzes operation and its observable behavior.
//
// Quizzes lists every quiz visible to the session. An empty or missing items
// array is an empty list, not an error.
func (s *Service) Quizzes(ctx context.Context) ([]Quiz, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, quizzesPath, nil)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []Quiz `json:"items"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode quiz list: %w", err)
	}
	if payload.Items == nil {
		return []Quiz{}, nil
	}
	return payload.Items, nil
}

// QuizByID describes the quizbyid operation and its observable behavior.
func (s *Service) QuizByID(ctx context.Context, id string) (*Quiz, error) {
	quizzes, err := s.Quizzes(ctx)
	if err != nil {
		return nil, err
	}
	for i := range quizzes {
		if quizzes[i].ID == id {
			return &quizzes[i], nil
		}
	}
	return nil, ErrNotFound
}

// CreateQuiz describes the createquiz operation and its observable behavior.
//
// CreateQuiz returns the created record as the server stored it, including
// the assigned ID and any generated questions.
func (s *Service) CreateQuiz(ctx context.Context, input CreateQuizInput) (*Quiz, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, http.MethodPost, quizzesPath, payload)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var created Quiz
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created quiz: %w", err)
	}
	return &created, nil
}

// readBody consumes the response and turns a non-2xx status into an error
// carrying the server's message when one is present.
func readBody(resp *http.Response) ([]byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", goQuizClient.ErrConnectivity, err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}

	var failure struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &failure)
	return nil, &goQuizClient.APIError{
		StatusCode: resp.StatusCode,
		Message:    failure.Message,
	}
}
