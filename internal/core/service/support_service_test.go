package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stayflow/rental-marketplace/internal/core/domain"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

type stubRefundRepo struct {
	seq     int
	refunds map[string]*domain.Refund
}

func newStubRefundRepo() *stubRefundRepo {
	return &stubRefundRepo{refunds: make(map[string]*domain.Refund)}
}

func (r *stubRefundRepo) Create(_ context.Context, ref *domain.Refund) (*domain.Refund, error) {
	r.seq++
	copy := *ref
	copy.ID = "r" + strconv.Itoa(r.seq)
	r.refunds[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubRefundRepo) FindByID(_ context.Context, id string) (*domain.Refund, error) {
	if ref, ok := r.refunds[id]; ok {
		clone := *ref
		return &clone, nil
	}
	return nil, domain.ErrRefundNotFound
}

func (r *stubRefundRepo) ListForPrincipal(_ context.Context, principalID, email string) ([]*domain.Refund, error) {
	var out []*domain.Refund
	for _, ref := range r.refunds {
		if ref.UserID == principalID || ref.CreatedBy == principalID || ref.Email == email {
			clone := *ref
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubRefundRepo) List(context.Context) ([]*domain.Refund, error) {
	out := make([]*domain.Refund, 0, len(r.refunds))
	for _, ref := range r.refunds {
		clone := *ref
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubRefundRepo) SetStatus(_ context.Context, id, status, note string) (*domain.Refund, error) {
	ref, ok := r.refunds[id]
	if !ok {
		return nil, domain.ErrRefundNotFound
	}
	ref.Status = status
	ref.AdminNote = note
	clone := *ref
	return &clone, nil
}

func (r *stubRefundRepo) LinkByEmail(_ context.Context, email, principalID string) (int64, error) {
	var n int64
	for _, ref := range r.refunds {
		if ref.Email == email && ref.UserID == "" {
			ref.UserID = principalID
			n++
		}
	}
	return n, nil
}

func (r *stubRefundRepo) Count(context.Context) (int64, error) {
	return int64(len(r.refunds)), nil
}

type stubInquiryRepo struct {
	seq       int
	inquiries map[string]*domain.Inquiry
}

func newStubInquiryRepo() *stubInquiryRepo {
	return &stubInquiryRepo{inquiries: make(map[string]*domain.Inquiry)}
}

func (r *stubInquiryRepo) Create(_ context.Context, i *domain.Inquiry) (*domain.Inquiry, error) {
	r.seq++
	copy := *i
	copy.ID = "i" + strconv.Itoa(r.seq)
	r.inquiries[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubInquiryRepo) FindByID(_ context.Context, id string) (*domain.Inquiry, error) {
	if i, ok := r.inquiries[id]; ok {
		clone := *i
		return &clone, nil
	}
	return nil, domain.ErrInquiryNotFound
}

func (r *stubInquiryRepo) ListForPrincipal(_ context.Context, principalID, email string) ([]*domain.Inquiry, error) {
	var out []*domain.Inquiry
	for _, i := range r.inquiries {
		if i.UserID == principalID || i.CreatedBy == principalID || i.Email == email {
			clone := *i
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubInquiryRepo) List(context.Context) ([]*domain.Inquiry, error) {
	out := make([]*domain.Inquiry, 0, len(r.inquiries))
	for _, i := range r.inquiries {
		clone := *i
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubInquiryRepo) Respond(_ context.Context, id, response string) (*domain.Inquiry, error) {
	i, ok := r.inquiries[id]
	if !ok {
		return nil, domain.ErrInquiryNotFound
	}
	i.Response = response
	i.Status = domain.StatusAnswered
	clone := *i
	return &clone, nil
}

func (r *stubInquiryRepo) LinkByEmail(_ context.Context, email, principalID string) (int64, error) {
	var n int64
	for _, i := range r.inquiries {
		if i.Email == email && i.UserID == "" {
			i.UserID = principalID
			n++
		}
	}
	return n, nil
}

func (r *stubInquiryRepo) Count(context.Context) (int64, error) {
	return int64(len(r.inquiries)), nil
}

type stubFeedbackRepo struct {
	seq   int
	items map[string]*domain.Feedback
}

func newStubFeedbackRepo() *stubFeedbackRepo {
	return &stubFeedbackRepo{items: make(map[string]*domain.Feedback)}
}

func (r *stubFeedbackRepo) Create(_ context.Context, f *domain.Feedback) (*domain.Feedback, error) {
	r.seq++
	copy := *f
	copy.ID = "f" + strconv.Itoa(r.seq)
	r.items[copy.ID] = &copy
	clone := copy
	return &clone, nil
}

func (r *stubFeedbackRepo) FindByID(_ context.Context, id string) (*domain.Feedback, error) {
	if f, ok := r.items[id]; ok {
		clone := *f
		return &clone, nil
	}
	return nil, domain.ErrFeedbackNotFound
}

func (r *stubFeedbackRepo) ListForPrincipal(_ context.Context, principalID, email string) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, f := range r.items {
		if f.UserID == principalID || f.CreatedBy == principalID || f.Email == email {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFeedbackRepo) List(context.Context) ([]*domain.Feedback, error) {
	out := make([]*domain.Feedback, 0, len(r.items))
	for _, f := range r.items {
		clone := *f
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubFeedbackRepo) Respond(_ context.Context, id, response string) (*domain.Feedback, error) {
	f, ok := r.items[id]
	if !ok {
		return nil, domain.ErrFeedbackNotFound
	}
	f.Response = response
	f.Status = domain.StatusAnswered
	clone := *f
	return &clone, nil
}

func (r *stubFeedbackRepo) LinkByEmail(_ context.Context, email, principalID string) (int64, error) {
	var n int64
	for _, f := range r.items {
		if f.Email == email && f.UserID == "" {
			f.UserID = principalID
			n++
		}
	}
	return n, nil
}

func (r *stubFeedbackRepo) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type stubMarker struct {
	seen    map[string]bool
	seenErr error
	checks  int
}

func newStubMarker() *stubMarker {
	return &stubMarker{seen: make(map[string]bool)}
}

func (m *stubMarker) Seen(_ context.Context, principalID string) (bool, error) {
	m.checks++
	if m.seenErr != nil {
		return false, m.seenErr
	}
	return m.seen[principalID], nil
}

func (m *stubMarker) Mark(_ context.Context, principalID string) error {
	m.seen[principalID] = true
	return nil
}

type supportFixture struct {
	svc       *SupportService
	refunds   *stubRefundRepo
	inquiries *stubInquiryRepo
	feedback  *stubFeedbackRepo
	users     *stubUserRepo
	marker    *stubMarker
}

func newSupportFixture() *supportFixture {
	f := &supportFixture{
		refunds:   newStubRefundRepo(),
		inquiries: newStubInquiryRepo(),
		feedback:  newStubFeedbackRepo(),
		users:     newStubUserRepo(),
		marker:    newStubMarker(),
	}
	f.svc = NewSupportService(f.refunds, f.inquiries, f.feedback, f.users, f.marker, zerolog.Nop())
	return f
}

func (f *supportFixture) seedUser(t *testing.T, email string) *domain.Principal {
	t.Helper()
	u, err := f.users.Create(context.Background(), &domain.Principal{
		Name: "User", Email: email, Role: domain.RoleCustomer,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestSupportService_SubmitRefund_AnonymousAutoLink(t *testing.T) {
	f := newSupportFixture()
	user := f.seedUser(t, "alice@example.com")

	refund, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{
		Email: "Alice@Example.com", BookingRef: "b1", Reason: "trip cancelled",
	})
	if err != nil {
		t.Fatalf("SubmitRefund: %v", err)
	}
	if refund.UserID != user.ID {
		t.Fatalf("UserID = %q, want auto-link to %q", refund.UserID, user.ID)
	}
	if refund.CreatedBy != "" {
		t.Fatalf("CreatedBy = %q, want empty for anonymous submit", refund.CreatedBy)
	}
	if refund.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", refund.Status)
	}
	if refund.Email != "alice@example.com" {
		t.Fatalf("email not normalised: %q", refund.Email)
	}
}

func TestSupportService_SubmitRefund_AnonymousNoMatch(t *testing.T) {
	f := newSupportFixture()

	refund, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{
		Email: "stranger@example.com", Reason: "double charge",
	})
	if err != nil {
		t.Fatalf("SubmitRefund: %v", err)
	}
	if refund.UserID != "" {
		t.Fatalf("UserID = %q, want empty when no account matches", refund.UserID)
	}
}

func TestSupportService_SubmitRefund_Authenticated(t *testing.T) {
	f := newSupportFixture()
	user := f.seedUser(t, "bob@example.com")
	actor := &domain.Principal{ID: user.ID, Email: user.Email, Role: domain.RoleCustomer}

	refund, err := f.svc.SubmitRefund(context.Background(), actor, ports.RefundInput{
		Email: "bob@example.com", Reason: "late checkout charge",
	})
	if err != nil {
		t.Fatalf("SubmitRefund: %v", err)
	}
	if refund.UserID != user.ID {
		t.Fatalf("UserID = %q, want %q", refund.UserID, user.ID)
	}
}

func TestSupportService_SubmitRefund_AdminOnBehalf(t *testing.T) {
	f := newSupportFixture()
	admin := &domain.Principal{ID: "a1", Email: "root@example.com", Role: domain.RoleAdmin}

	refund, err := f.svc.SubmitRefund(context.Background(), admin, ports.RefundInput{
		Email: "customer@example.com", Reason: "phone-in complaint",
	})
	if err != nil {
		t.Fatalf("SubmitRefund: %v", err)
	}
	if refund.UserID != "" {
		t.Fatalf("UserID = %q, want empty so reconciliation can claim it", refund.UserID)
	}
	if refund.CreatedBy != "a1" {
		t.Fatalf("CreatedBy = %q, want a1", refund.CreatedBy)
	}
}

func TestSupportService_SubmitRefund_Validation(t *testing.T) {
	f := newSupportFixture()
	if _, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{Reason: "x"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing email: got %v, want ErrInvalidInput", err)
	}
	if _, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{Email: "a@b.c"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing reason: got %v, want ErrInvalidInput", err)
	}
}

func TestSupportService_SubmitFeedback_RatingBounds(t *testing.T) {
	f := newSupportFixture()
	for _, rating := range []int{0, 6, -1} {
		if _, err := f.svc.SubmitFeedback(context.Background(), nil, ports.FeedbackInput{
			Email: "a@b.c", Rating: rating,
		}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("rating %d: got %v, want ErrInvalidInput", rating, err)
		}
	}
	if _, err := f.svc.SubmitFeedback(context.Background(), nil, ports.FeedbackInput{
		Email: "a@b.c", Rating: 5, Message: "great stay",
	}); err != nil {
		t.Fatalf("valid feedback: %v", err)
	}
}

func TestSupportService_Reconcile_Idempotent(t *testing.T) {
	f := newSupportFixture()

	if _, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{
		Email: "carol@example.com", Reason: "pre-signup refund",
	}); err != nil {
		t.Fatalf("seed refund: %v", err)
	}
	if _, err := f.svc.SubmitInquiry(context.Background(), nil, ports.InquiryInput{
		Email: "carol@example.com", Message: "pre-signup question",
	}); err != nil {
		t.Fatalf("seed inquiry: %v", err)
	}

	if err := f.svc.Reconcile(context.Background(), "u9", "Carol@Example.com"); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	refunds, _ := f.refunds.ListForPrincipal(context.Background(), "u9", "")
	if len(refunds) != 1 {
		t.Fatalf("refund not linked, got %d", len(refunds))
	}
	inquiries, _ := f.inquiries.ListForPrincipal(context.Background(), "u9", "")
	if len(inquiries) != 1 {
		t.Fatalf("inquiry not linked, got %d", len(inquiries))
	}

	// Second run touches nothing and keeps the original link.
	if err := f.svc.Reconcile(context.Background(), "u10", "carol@example.com"); err != nil {
		t.Fatalf("second Reconcile: %v", err)
	}
	refunds, _ = f.refunds.ListForPrincipal(context.Background(), "u9", "")
	if len(refunds) != 1 {
		t.Fatalf("link was overwritten on re-run")
	}
}

func TestSupportService_Reconcile_Validation(t *testing.T) {
	f := newSupportFixture()
	if err := f.svc.Reconcile(context.Background(), "", "a@b.c"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing principal: got %v, want ErrInvalidInput", err)
	}
	if err := f.svc.Reconcile(context.Background(), "u1", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("missing email: got %v, want ErrInvalidInput", err)
	}
}

func TestSupportService_ListRefunds_LazyReconcile(t *testing.T) {
	f := newSupportFixture()

	if _, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{
		Email: "dan@example.com", Reason: "pre-signup refund",
	}); err != nil {
		t.Fatalf("seed refund: %v", err)
	}

	actor := &domain.Principal{ID: "u5", Email: "dan@example.com", Role: domain.RoleCustomer}
	list, err := f.svc.ListRefunds(context.Background(), actor)
	if err != nil {
		t.Fatalf("ListRefunds: %v", err)
	}
	if len(list) != 1 || list[0].UserID != "u5" {
		t.Fatalf("lazy reconcile did not link: %+v", list)
	}
	if !f.marker.seen["u5"] {
		t.Fatalf("marker not written after reconcile")
	}

	// A second fetch is served without re-running the backfill.
	checks := f.marker.checks
	if _, err := f.svc.ListRefunds(context.Background(), actor); err != nil {
		t.Fatalf("second ListRefunds: %v", err)
	}
	if f.marker.checks != checks+1 {
		t.Fatalf("marker not consulted on second fetch")
	}

	if _, err := f.svc.ListRefunds(context.Background(), nil); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("nil actor: got %v, want ErrUnauthenticated", err)
	}
}

func TestSupportService_ListRefunds_MarkerFailureStillReconciles(t *testing.T) {
	f := newSupportFixture()
	f.marker.seenErr = errors.New("redis down")

	if _, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{
		Email: "eve@example.com", Reason: "pre-signup refund",
	}); err != nil {
		t.Fatalf("seed refund: %v", err)
	}

	actor := &domain.Principal{ID: "u6", Email: "eve@example.com", Role: domain.RoleCustomer}
	list, err := f.svc.ListRefunds(context.Background(), actor)
	if err != nil {
		t.Fatalf("ListRefunds: %v", err)
	}
	if len(list) != 1 || list[0].UserID != "u6" {
		t.Fatalf("marker failure blocked reconciliation: %+v", list)
	}
}

func TestSupportService_ProcessRefund(t *testing.T) {
	f := newSupportFixture()
	refund, err := f.svc.SubmitRefund(context.Background(), nil, ports.RefundInput{
		Email: "x@example.com", Reason: "noise complaint",
	})
	if err != nil {
		t.Fatalf("seed refund: %v", err)
	}

	processed, err := f.svc.ProcessRefund(context.Background(), refund.ID, "approved, 3-5 days")
	if err != nil {
		t.Fatalf("ProcessRefund: %v", err)
	}
	if processed.Status != domain.StatusProcessed || processed.AdminNote != "approved, 3-5 days" {
		t.Fatalf("unexpected refund after processing: %+v", processed)
	}

	if _, err := f.svc.ProcessRefund(context.Background(), "missing", ""); !errors.Is(err, domain.ErrRefundNotFound) {
		t.Fatalf("unknown id: got %v, want ErrRefundNotFound", err)
	}
}

func TestSupportService_RespondInquiryAndFeedback(t *testing.T) {
	f := newSupportFixture()

	inquiry, err := f.svc.SubmitInquiry(context.Background(), nil, ports.InquiryInput{
		Email: "x@example.com", Subject: "wifi", Message: "is there wifi?",
	})
	if err != nil {
		t.Fatalf("seed inquiry: %v", err)
	}
	answered, err := f.svc.RespondInquiry(context.Background(), inquiry.ID, "yes, fibre")
	if err != nil {
		t.Fatalf("RespondInquiry: %v", err)
	}
	if answered.Status != domain.StatusAnswered || answered.Response != "yes, fibre" {
		t.Fatalf("unexpected inquiry: %+v", answered)
	}

	if _, err := f.svc.RespondInquiry(context.Background(), inquiry.ID, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty response: got %v, want ErrInvalidInput", err)
	}

	item, err := f.svc.SubmitFeedback(context.Background(), nil, ports.FeedbackInput{
		Email: "x@example.com", Rating: 4, Message: "nice place",
	})
	if err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
	if _, err := f.svc.RespondFeedback(context.Background(), item.ID, "thanks!"); err != nil {
		t.Fatalf("RespondFeedback: %v", err)
	}
}
