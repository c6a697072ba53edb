package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// Support submissions accept both authenticated and anonymous writers, so
// retrieval for a principal matches the union of the user link, the created_by
// link, and the submission email. LinkByEmail is the reconciliation write: it
// sets the user link on every unlinked document whose email matches, returns
// the number of documents touched, and is a no-op when re-run.

// RefundRepository defines persistence for refund requests.
type RefundRepository interface {
	Create(ctx context.Context, r *domain.Refund) (*domain.Refund, error)
	FindByID(ctx context.Context, id string) (*domain.Refund, error)
	ListForPrincipal(ctx context.Context, principalID, email string) ([]*domain.Refund, error)
	List(ctx context.Context) ([]*domain.Refund, error)
	// SetStatus applies a status transition with an optional admin note.
	SetStatus(ctx context.Context, id, status, note string) (*domain.Refund, error)
	LinkByEmail(ctx context.Context, email, principalID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// InquiryRepository defines persistence for inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, i *domain.Inquiry) (*domain.Inquiry, error)
	FindByID(ctx context.Context, id string) (*domain.Inquiry, error)
	ListForPrincipal(ctx context.Context, principalID, email string) ([]*domain.Inquiry, error)
	List(ctx context.Context) ([]*domain.Inquiry, error)
	// Respond stores the admin response and marks the inquiry answered.
	Respond(ctx context.Context, id, response string) (*domain.Inquiry, error)
	LinkByEmail(ctx context.Context, email, principalID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// FeedbackRepository defines persistence for feedback items.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) (*domain.Feedback, error)
	FindByID(ctx context.Context, id string) (*domain.Feedback, error)
	ListForPrincipal(ctx context.Context, principalID, email string) ([]*domain.Feedback, error)
	List(ctx context.Context) ([]*domain.Feedback, error)
	Respond(ctx context.Context, id, response string) (*domain.Feedback, error)
	LinkByEmail(ctx context.Context, email, principalID string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
