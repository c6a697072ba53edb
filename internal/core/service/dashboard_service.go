package service

import (
	"context"

	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// DashboardService aggregates entity totals for the admin dashboard.
type DashboardService struct {
	users     ports.UserRepository
	places    ports.PlaceRepository
	bookings  ports.BookingRepository
	refunds   ports.RefundRepository
	inquiries ports.InquiryRepository
	feedback  ports.FeedbackRepository
}

func NewDashboardService(
	users ports.UserRepository,
	places ports.PlaceRepository,
	bookings ports.BookingRepository,
	refunds ports.RefundRepository,
	inquiries ports.InquiryRepository,
	feedback ports.FeedbackRepository,
) *DashboardService {
	return &DashboardService{
		users:     users,
		places:    places,
		bookings:  bookings,
		refunds:   refunds,
		inquiries: inquiries,
		feedback:  feedback,
	}
}

func (s *DashboardService) Counts(ctx context.Context) (*ports.DashboardCounts, error) {
	counts := &ports.DashboardCounts{}
	for _, c := range []struct {
		dst   *int64
		count func(context.Context) (int64, error)
	}{
		{&counts.Users, s.users.Count},
		{&counts.Places, s.places.Count},
		{&counts.Bookings, s.bookings.Count},
		{&counts.Refunds, s.refunds.Count},
		{&counts.Inquiries, s.inquiries.Count},
		{&counts.Feedback, s.feedback.Count},
	} {
		n, err := c.count(ctx)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return counts, nil
}
