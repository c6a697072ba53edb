package handler

type refundRequest struct {
	Email      string `json:"email"       validate:"required,email"`
	BookingRef string `json:"booking_ref"`
	Reason     string `json:"reason"      validate:"required"`
}

type inquiryRequest struct {
	Email   string `json:"email"   validate:"required,email"`
	Name    string `json:"name"    validate:"required"`
	Subject string `json:"subject"`
	Message string `json:"message" validate:"required"`
}

type feedbackRequest struct {
	Email   string `json:"email"  validate:"required,email"`
	Name    string `json:"name"   validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Message string `json:"message"`
}

type processRefundRequest struct {
	Note string `json:"note"`
}

type respondRequest struct {
	Response string `json:"response" validate:"required"`
}
