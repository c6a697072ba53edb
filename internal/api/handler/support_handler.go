package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stayflow/rental-marketplace/internal/api/metrics"
	"github.com/stayflow/rental-marketplace/internal/core/ports"
)

// SupportHandler handles refund, inquiry, and feedback endpoints. Submission
// routes run under OptionalAuth: an anonymous caller's record is best-effort
// linked by email, and a stale or garbage token never blocks the write.
type SupportHandler struct {
	service ports.SupportService
}

func NewSupportHandler(service ports.SupportService) *SupportHandler {
	return &SupportHandler{service: service}
}

// --- Refunds ---

// SubmitRefund handles POST /refunds.
//
// @Summary      Submit a refund request
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        body  body      refundRequest  true  "Refund request"
// @Success      201   {object}  domain.Refund
// @Failure      400   {object}  errorResponse
// @Router       /refunds [post]
func (h *SupportHandler) SubmitRefund(c echo.Context) error {
	var req refundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	refund, err := h.service.SubmitRefund(c.Request().Context(), ctxPrincipal(c), ports.RefundInput{
		Email:      req.Email,
		BookingRef: req.BookingRef,
		Reason:     req.Reason,
	})
	if err != nil {
		return err
	}

	metrics.SubmissionsTotal.WithLabelValues("refund", strconv.FormatBool(refund.UserID != "")).Inc()
	return c.JSON(http.StatusCreated, refund)
}

// ListRefunds handles GET /refunds. It returns records linked to the caller
// by user id, created-by id, or email.
//
// @Summary      List own refund requests
// @Tags         support
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Refund
// @Failure      401  {object}  errorResponse
// @Router       /refunds [get]
func (h *SupportHandler) ListRefunds(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	refunds, err := h.service.ListRefunds(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refunds)
}

// AdminListRefunds handles GET /refunds/admin/all.
//
// @Summary      List all refund requests (admin)
// @Tags         support
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Refund
// @Router       /refunds/admin/all [get]
func (h *SupportHandler) AdminListRefunds(c echo.Context) error {
	refunds, err := h.service.ListAllRefunds(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refunds)
}

// ProcessRefund handles PUT /refunds/admin/:id/process. It marks the request
// processed with an optional note. Status and annotation only; no money moves.
//
// @Summary      Process a refund request (admin)
// @Tags         support
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Refund id"
// @Param        body  body      processRefundRequest  true  "Admin note"
// @Success      200   {object}  domain.Refund
// @Failure      404   {object}  errorResponse
// @Router       /refunds/admin/{id}/process [put]
func (h *SupportHandler) ProcessRefund(c echo.Context) error {
	var req processRefundRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	refund, err := h.service.ProcessRefund(c.Request().Context(), c.Param("id"), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, refund)
}

// --- Inquiries ---

// SubmitInquiry handles POST /inquiries.
//
// @Summary      Submit an inquiry
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        body  body      inquiryRequest  true  "Inquiry"
// @Success      201   {object}  domain.Inquiry
// @Router       /inquiries [post]
func (h *SupportHandler) SubmitInquiry(c echo.Context) error {
	var req inquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inquiry, err := h.service.SubmitInquiry(c.Request().Context(), ctxPrincipal(c), ports.InquiryInput{
		Email:   req.Email,
		Name:    req.Name,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.SubmissionsTotal.WithLabelValues("inquiry", strconv.FormatBool(inquiry.UserID != "")).Inc()
	return c.JSON(http.StatusCreated, inquiry)
}

// ListInquiries handles GET /inquiries.
//
// @Summary      List own inquiries
// @Tags         support
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Inquiry
// @Router       /inquiries [get]
func (h *SupportHandler) ListInquiries(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	inquiries, err := h.service.ListInquiries(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inquiries)
}

// AdminListInquiries handles GET /inquiries/admin/all.
//
// @Summary      List all inquiries (admin)
// @Tags         support
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Inquiry
// @Router       /inquiries/admin/all [get]
func (h *SupportHandler) AdminListInquiries(c echo.Context) error {
	inquiries, err := h.service.ListAllInquiries(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inquiries)
}

// RespondInquiry handles PUT /inquiries/admin/:id/respond.
//
// @Summary      Respond to an inquiry (admin)
// @Tags         support
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Inquiry id"
// @Param        body  body      respondRequest  true  "Response"
// @Success      200   {object}  domain.Inquiry
// @Failure      404   {object}  errorResponse
// @Router       /inquiries/admin/{id}/respond [put]
func (h *SupportHandler) RespondInquiry(c echo.Context) error {
	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inquiry, err := h.service.RespondInquiry(c.Request().Context(), c.Param("id"), req.Response)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inquiry)
}

// --- Feedback ---

// SubmitFeedback handles POST /feedback.
//
// @Summary      Submit feedback
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        body  body      feedbackRequest  true  "Feedback"
// @Success      201   {object}  domain.Feedback
// @Router       /feedback [post]
func (h *SupportHandler) SubmitFeedback(c echo.Context) error {
	var req feedbackRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.SubmitFeedback(c.Request().Context(), ctxPrincipal(c), ports.FeedbackInput{
		Email:   req.Email,
		Name:    req.Name,
		Rating:  req.Rating,
		Message: req.Message,
	})
	if err != nil {
		return err
	}

	metrics.SubmissionsTotal.WithLabelValues("feedback", strconv.FormatBool(item.UserID != "")).Inc()
	return c.JSON(http.StatusCreated, item)
}

// ListFeedback handles GET /feedback.
//
// @Summary      List own feedback
// @Tags         support
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Feedback
// @Router       /feedback [get]
func (h *SupportHandler) ListFeedback(c echo.Context) error {
	actor, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	items, err := h.service.ListFeedback(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// AdminListFeedback handles GET /feedback/admin/all.
//
// @Summary      List all feedback (admin)
// @Tags         support
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Feedback
// @Router       /feedback/admin/all [get]
func (h *SupportHandler) AdminListFeedback(c echo.Context) error {
	items, err := h.service.ListAllFeedback(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// RespondFeedback handles PUT /feedback/admin/:id/respond.
//
// @Summary      Respond to feedback (admin)
// @Tags         support
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Feedback id"
// @Param        body  body      respondRequest  true  "Response"
// @Success      200   {object}  domain.Feedback
// @Failure      404   {object}  errorResponse
// @Router       /feedback/admin/{id}/respond [put]
func (h *SupportHandler) RespondFeedback(c echo.Context) error {
	var req respondRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.service.RespondFeedback(c.Request().Context(), c.Param("id"), req.Response)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}
