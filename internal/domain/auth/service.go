package auth

import (
	"context"
	"errors"
	"time"
)

// ErrInvalidCredentials covers every login failure cause: unknown email,
// inactive record, or wrong secret. Callers cannot tell which one occurred.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	store      *Store
	classifier *Classifier
	secret     string
	tokenTTL   time.Duration
}

func NewService(store *Store, classifier *Classifier, secret string, tokenTTL time.Duration) *Service {
	return &Service{store: store, classifier: classifier, secret: secret, tokenTTL: tokenTTL}
}

// SubjectSummary is returned alongside the token so the client can render
// the logged-in user without a second request.
type SubjectSummary struct {
	ID         int64  `json:"id"`
	FullName   string `json:"fullName"`
	Email      string `json:"email"`
	JobTitle   string `json:"jobTitle"`
	Department string `json:"department"`
	Role       Role   `json:"role"`
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (string, SubjectSummary, error) {
	row, err := s.store.findActiveByEmail(ctx, email)
	if err != nil {
		return "", SubjectSummary{}, ErrInvalidCredentials
	}

	if err := CheckPassword(row.PasswordHash, password); err != nil {
		return "", SubjectSummary{}, ErrInvalidCredentials
	}

	role := s.classifier.Classify(row.JobTitle)
	token, err := GenerateToken(s.secret, Claims{EmployeeID: row.ID, Email: row.Email, Role: string(role)}, s.tokenTTL)
	if err != nil {
		return "", SubjectSummary{}, err
	}

	summary := SubjectSummary{
		ID:         row.ID,
		FullName:   row.FullName,
		Email:      row.Email,
		JobTitle:   row.JobTitle,
		Department: row.Department,
		Role:       role,
	}
	return token, summary, nil
}
