package services

import (
	"context"
	"fmt"
	"regexp"

	"github.com/MdAmzadAli/note-taking-app-sub003/internal/models"
	"github.com/MdAmzadAli/note-taking-app-sub003/internal/repository"
	"github.com/MdAmzadAli/note-taking-app-sub003/pkg/email"
	"github.com/sirupsen/logrus"
)

var signupEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// FeedbackService handles feedback submissions and beta signups.
type FeedbackService struct {
	repo  *repository.FeedbackRepository
	inbox string
}

// NewFeedbackService creates a new instance of FeedbackService. inbox, when
// non-empty, receives an email copy of every submission.
func NewFeedbackService(repo *repository.FeedbackRepository, inbox string) *FeedbackService {
	return &FeedbackService{
		repo:  repo,
		inbox: inbox,
	}
}

// SubmitFeedback stores a feedback entry and forwards it to the inbox.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, fb *models.Feedback) (*models.Feedback, error) {
	if fb.Message == "" {
		return nil, fmt.Errorf("feedback message is required")
	}

	created, err := s.repo.CreateFeedback(ctx, fb)
	if err != nil {
		return nil, fmt.Errorf("failed to submit feedback: %v", err)
	}

	if s.inbox != "" {
		go func() {
			subject := fmt.Sprintf("New feedback (%s)", created.Category)
			if err := email.SendEmail(s.inbox, subject, created.Message); err != nil {
				logrus.WithError(err).Warn("Failed to forward feedback email")
			}
		}()
	}

	logrus.WithField("feedback_id", created.ID.Hex()).Info("Feedback submitted")
	return created, nil
}

// ListFeedback lists recent feedback submissions (admin use).
func (s *FeedbackService) ListFeedback(ctx context.Context, limit int64) ([]models.Feedback, error) {
	return s.repo.GetAllFeedback(ctx, limit)
}

// SignupForBeta records a beta signup.
func (s *FeedbackService) SignupForBeta(ctx context.Context, signup *models.BetaSignup) (*models.BetaSignup, error) {
	if !signupEmailRegex.MatchString(signup.Email) {
		return nil, fmt.Errorf("invalid email format")
	}

	created, err := s.repo.CreateBetaSignup(ctx, signup)
	if err != nil {
		return nil, err
	}

	logrus.WithField("email", created.Email).Info("Beta signup recorded")
	return created, nil
}

// ListBetaSignups lists beta signups (admin use).
func (s *FeedbackService) ListBetaSignups(ctx context.Context) ([]models.BetaSignup, error) {
	return s.repo.GetBetaSignups(ctx)
}
