package ports

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
)

// RefundInput carries an inbound refund request. Email is required even for
// authenticated submitters; it is the reconciliation key.
type RefundInput struct {
	Email      string
	BookingRef string
	Reason     string
}

// InquiryInput carries an inbound inquiry.
type InquiryInput struct {
	Email   string
	Name    string
	Subject string
	Message string
}

// FeedbackInput carries an inbound feedback item.
type FeedbackInput struct {
	Email   string
	Name    string
	Rating  int
	Message string
}

// SupportService covers the three submission resources. Submissions accept an
// optional actor: when nil, a best-effort email match against the credential
// store links the record to an existing principal; a failed match never aborts
// the write.
type SupportService interface {
	SubmitRefund(ctx context.Context, actor *domain.Principal, input RefundInput) (*domain.Refund, error)
	ListRefunds(ctx context.Context, actor *domain.Principal) ([]*domain.Refund, error)
	ListAllRefunds(ctx context.Context) ([]*domain.Refund, error)
	ProcessRefund(ctx context.Context, id, note string) (*domain.Refund, error)

	SubmitInquiry(ctx context.Context, actor *domain.Principal, input InquiryInput) (*domain.Inquiry, error)
	ListInquiries(ctx context.Context, actor *domain.Principal) ([]*domain.Inquiry, error)
	ListAllInquiries(ctx context.Context) ([]*domain.Inquiry, error)
	RespondInquiry(ctx context.Context, id, response string) (*domain.Inquiry, error)

	SubmitFeedback(ctx context.Context, actor *domain.Principal, input FeedbackInput) (*domain.Feedback, error)
	ListFeedback(ctx context.Context, actor *domain.Principal) ([]*domain.Feedback, error)
	ListAllFeedback(ctx context.Context) ([]*domain.Feedback, error)
	RespondFeedback(ctx context.Context, id, response string) (*domain.Feedback, error)

	// Reconcile retroactively links anonymous submissions whose email matches
	// the principal. Idempotent: already-linked records are untouched.
	Reconcile(ctx context.Context, principalID, email string) error
}

// DashboardCounts aggregates entity totals for the admin dashboard.
type DashboardCounts struct {
	Users     int64 `json:"users"`
	Places    int64 `json:"places"`
	Bookings  int64 `json:"bookings"`
	Refunds   int64 `json:"refunds"`
	Inquiries int64 `json:"inquiries"`
	Feedback  int64 `json:"feedback"`
}

// DashboardService reports marketplace-wide totals.
type DashboardService interface {
	Counts(ctx context.Context) (*DashboardCounts, error)
}
