package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Answer records the choice a user picked for one question.
type Answer struct {
	Question string `json:"question"`
	Selected string `json:"selected"`
}

// Submission defines a public type used by goQuizClient APIs.
//
// Submission mirrors the server's record of one completed quiz attempt.
type Submission struct {
	ID             string    `json:"_id"`
	QuizID         string    `json:"quizId"`
	UserEmail      string    `json:"userEmail"`
	Answers        []Answer  `json:"answers,omitempty"`
	Score          float64   `json:"score,omitempty"`
	CorrectAnswers int       `json:"correctAnswers,omitempty"`
	TotalQuestions int       `json:"totalQuestions,omitempty"`
	TimeSpent      int       `json:"timeSpent,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// SubmitInput defines a public type used by goQuizClient APIs.
type SubmitInput struct {
	QuizID    string   `json:"quizId"`
	UserEmail string   `json:"userEmail"`
	Answers   []Answer `json:"answers"`
	TimeSpent int      `json:"timeSpent"`
}

// QuizStats defines a public type used by goQuizClient APIs.
//
// QuizStats aggregates every submission of one quiz.
type QuizStats struct {
	QuizID           string  `json:"quizId"`
	TotalSubmissions int     `json:"totalSubmissions"`
	AverageScore     float64 `json:"averageScore"`
	BestScore        float64 `json:"bestScore"`
}

// ListOptions pages through submission history. Zero values take the
// server's defaults (first page, ten entries).
type ListOptions struct {
	Page  int
	Limit int
}

func (o ListOptions) query(values url.Values) url.Values {
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	return values
}

// Submit describes the submit operation and its observable behavior.
//
// Submit records a completed attempt and returns the graded submission.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*Submission, error) {
	payload, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(ctx, http.MethodPost, submissionsPath, payload)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var graded Submission
	if err := json.Unmarshal(body, &graded); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return &graded, nil
}

// UserSubmissions describes the usersubmissions operation and its observable behavior.
//
// UserSubmissions lists one user's attempt history, newest first.
func (s *Service) UserSubmissions(ctx context.Context, userEmail string, opts ListOptions) ([]Submission, error) {
	values := opts.query(url.Values{})
	values.Set("userEmail", userEmail)

	return s.listSubmissions(ctx, submissionsPath+"?"+values.Encode())
}

// QuizSubmissions describes the quizsubmissions operation and its observable behavior.
//
// QuizSubmissions lists attempts against one quiz, optionally filtered to a
// single user.
func (s *Service) QuizSubmissions(ctx context.Context, quizID, userEmail string, opts ListOptions) ([]Submission, error) {
	values := opts.query(url.Values{})
	if userEmail != "" {
		values.Set("userEmail", userEmail)
	}

	path := submissionsPath + "/quiz/" + url.PathEscape(quizID)
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return s.listSubmissions(ctx, path)
}

// QuizStats describes the quizstats operation and its observable behavior.
func (s *Service) QuizStats(ctx context.Context, quizID string) (*QuizStats, error) {
	path := submissionsPath + "/quiz/" + url.PathEscape(quizID) + "/stats"

	resp, err := s.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var stats QuizStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return nil, fmt.Errorf("decode quiz stats: %w", err)
	}
	return &stats, nil
}

// SubmissionByID describes the submissionbyid operation and its observable behavior.
func (s *Service) SubmissionByID(ctx context.Context, id string) (*Submission, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, submissionsPath+"/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var submission Submission
	if err := json.Unmarshal(body, &submission); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	return &submission, nil
}

func (s *Service) listSubmissions(ctx context.Context, path string) ([]Submission, error) {
	resp, err := s.client.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Submissions []Submission `json:"submissions"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode submission list: %w", err)
	}
	if payload.Submissions == nil {
		return []Submission{}, nil
	}
	return payload.Submissions, nil
}
