package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/api/metrics"
	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// ReconcileMarker abstracts the short-lived marker store (Redis) that lets a
// recently run email backfill be skipped. The marker is an optimisation only:
// reconciliation is idempotent, so a lost or unavailable marker is harmless.
type ReconcileMarker interface {
	Seen(ctx context.Context, principalID string) (bool, error)
	Mark(ctx context.Context, principalID string) error
}

// noopMarker never marks; every reconcile runs.
type noopMarker struct{}

func (noopMarker) Seen(context.Context, string) (bool, error) { return false, nil }
func (noopMarker) Mark(context.Context, string) error         { return nil }

// SupportService implements refund, inquiry, and feedback workflows plus the
// email reconciliation that links anonymous submissions to principals.
type SupportService struct {
	refunds   ports.RefundRepository
	inquiries ports.InquiryRepository
	feedback  ports.FeedbackRepository
	users     ports.UserRepository
	marker    ReconcileMarker
	logger    zerolog.Logger
}

func NewSupportService(
	refunds ports.RefundRepository,
	inquiries ports.InquiryRepository,
	feedback ports.FeedbackRepository,
	users ports.UserRepository,
	marker ReconcileMarker,
	logger zerolog.Logger,
) *SupportService {
	if marker == nil {
		marker = noopMarker{}
	}
	return &SupportService{
		refunds:   refunds,
		inquiries: inquiries,
		feedback:  feedback,
		users:     users,
		marker:    marker,
		logger:    logger,
	}
}

// link resolves the submission link for an actor-or-anonymous write. For
// anonymous submissions the email is matched against the credential store;
// lookup failures are swallowed so the write always proceeds.
func (s *SupportService) link(ctx context.Context, actor *domain.Principal, email string) domain.SubmissionLink {
	email = strings.ToLower(strings.TrimSpace(email))
	link := domain.SubmissionLink{Email: email}

	if actor != nil {
		link.UserID = actor.ID
		if actor.IsAdmin() && !strings.EqualFold(actor.Email, email) {
			// Admin filing on someone's behalf: record the issuer, leave the
			// user link for reconciliation against the submission email.
			link.UserID = ""
			link.CreatedBy = actor.ID
		}
		return link
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		link.UserID = user.ID
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Warn().Err(err).Msg("email linkage lookup failed, submission continues unlinked")
	}
	return link
}

// --- Refunds ---

func (s *SupportService) SubmitRefund(ctx context.Context, actor *domain.Principal, input ports.RefundInput) (*domain.Refund, error) {
	if input.Email == "" || input.Reason == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	refund := &domain.Refund{
		SubmissionLink: s.link(ctx, actor, input.Email),
		BookingRef:     input.BookingRef,
		Reason:         input.Reason,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.refunds.Create(ctx, refund)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create refund request")
		return nil, err
	}
	return created, nil
}

func (s *SupportService) ListRefunds(ctx context.Context, actor *domain.Principal) ([]*domain.Refund, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	s.reconcileOnce(ctx, actor.ID, actor.Email)
	return s.refunds.ListForPrincipal(ctx, actor.ID, actor.Email)
}

func (s *SupportService) ListAllRefunds(ctx context.Context) ([]*domain.Refund, error) {
	return s.refunds.List(ctx)
}

func (s *SupportService) ProcessRefund(ctx context.Context, id, note string) (*domain.Refund, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.refunds.SetStatus(ctx, id, domain.StatusProcessed, note)
}

// --- Inquiries ---

func (s *SupportService) SubmitInquiry(ctx context.Context, actor *domain.Principal, input ports.InquiryInput) (*domain.Inquiry, error) {
	if input.Email == "" || input.Message == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	inquiry := &domain.Inquiry{
		SubmissionLink: s.link(ctx, actor, input.Email),
		Name:           input.Name,
		Subject:        input.Subject,
		Message:        input.Message,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create inquiry")
		return nil, err
	}
	return created, nil
}

func (s *SupportService) ListInquiries(ctx context.Context, actor *domain.Principal) ([]*domain.Inquiry, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	s.reconcileOnce(ctx, actor.ID, actor.Email)
	return s.inquiries.ListForPrincipal(ctx, actor.ID, actor.Email)
}

func (s *SupportService) ListAllInquiries(ctx context.Context) ([]*domain.Inquiry, error) {
	return s.inquiries.List(ctx)
}

func (s *SupportService) RespondInquiry(ctx context.Context, id, response string) (*domain.Inquiry, error) {
	if id == "" || response == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.inquiries.Respond(ctx, id, response)
}

// --- Feedback ---

func (s *SupportService) SubmitFeedback(ctx context.Context, actor *domain.Principal, input ports.FeedbackInput) (*domain.Feedback, error) {
	if input.Email == "" || input.Rating < 1 || input.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	item := &domain.Feedback{
		SubmissionLink: s.link(ctx, actor, input.Email),
		Name:           input.Name,
		Rating:         input.Rating,
		Message:        input.Message,
		Status:         domain.StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := s.feedback.Create(ctx, item)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create feedback")
		return nil, err
	}
	return created, nil
}

func (s *SupportService) ListFeedback(ctx context.Context, actor *domain.Principal) ([]*domain.Feedback, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	s.reconcileOnce(ctx, actor.ID, actor.Email)
	return s.feedback.ListForPrincipal(ctx, actor.ID, actor.Email)
}

func (s *SupportService) ListAllFeedback(ctx context.Context) ([]*domain.Feedback, error) {
	return s.feedback.List(ctx)
}

func (s *SupportService) RespondFeedback(ctx context.Context, id, response string) (*domain.Feedback, error) {
	if id == "" || response == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.feedback.Respond(ctx, id, response)
}

// --- Reconciliation ---

// Reconcile links every unlinked submission whose email matches the principal.
// The write sets the same deterministic value each time, so re-runs and
// concurrent runs for the same principal are safe.
func (s *SupportService) Reconcile(ctx context.Context, principalID, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if principalID == "" || email == "" {
		return domain.ErrInvalidInput
	}

	stores := []struct {
		resource string
		repo     interface {
			LinkByEmail(ctx context.Context, email, principalID string) (int64, error)
		}
	}{
		{"refund", s.refunds},
		{"inquiry", s.inquiries},
		{"feedback", s.feedback},
	}

	var linked int64
	for _, st := range stores {
		n, err := st.repo.LinkByEmail(ctx, email, principalID)
		if err != nil {
			return err
		}
		if n > 0 {
			metrics.ReconciliationsTotal.WithLabelValues(st.resource).Add(float64(n))
		}
		linked += n
	}

	if linked > 0 {
		s.logger.Info().Str("user", principalID).Int64("linked", linked).Msg("submissions reconciled")
	}
	return nil
}

// reconcileOnce runs Reconcile unless a recent marker says it already ran.
// Marker failures only disable the skip, never the reconciliation itself.
func (s *SupportService) reconcileOnce(ctx context.Context, principalID, email string) {
	seen, err := s.marker.Seen(ctx, principalID)
	if err != nil {
		s.logger.Warn().Err(err).Msg("reconcile marker check failed, reconciling anyway")
	} else if seen {
		return
	}

	if err := s.Reconcile(ctx, principalID, email); err != nil {
		s.logger.Warn().Err(err).Str("user", principalID).Msg("lazy reconciliation failed")
		return
	}
	if err := s.marker.Mark(ctx, principalID); err != nil {
		s.logger.Warn().Err(err).Msg("reconcile marker write failed")
	}
}
