package service

import (
	"context"
	"testing"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

func TestDashboardService_Counts(t *testing.T) {
	users := newStubUserRepo()
	places := newStubPlaceRepo()
	bookings := &stubBookingRepo{}
	refunds := newStubRefundRepo()
	inquiries := newStubInquiryRepo()
	feedback := newStubFeedbackRepo()

	if _, err := users.Create(context.Background(), &domain.Principal{Email: "a@b.c"}); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	seedPlace(t, places, "u1")
	seedPlace(t, places, "u1")
	if _, err := refunds.Create(context.Background(), &domain.Refund{Reason: "x"}); err != nil {
		t.Fatalf("seed refund: %v", err)
	}

	svc := NewDashboardService(users, places, bookings, refunds, inquiries, feedback)
	counts, err := svc.Counts(context.Background())
	if err != nil {
		t.Fatalf("Counts: %v", err)
	}

	want := ports.DashboardCounts{Users: 1, Places: 2, Refunds: 1}
	if *counts != want {
		t.Fatalf("counts = %+v, want %+v", counts, want)
	}
}
