package domain

import "time"

// Submission statuses. Refunds move pending → processed; inquiries and
// feedback move pending → answered. No submission is ever deleted.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusAnswered  = "answered"
)

// SubmissionLink carries the three independent ways a support submission may
// reference a principal. UserID is set when the submitter was authenticated or
// when a later reconciliation matched the email; CreatedBy records an admin
// who filed the record on someone's behalf; Email is always present and is the
// reconciliation key. Ownership here is advisory, not exclusive: retrieval
// matches the union of all three.
type SubmissionLink struct {
	UserID    string `json:"user,omitempty" bson:"user,omitempty"`
	CreatedBy string `json:"created_by,omitempty" bson:"created_by,omitempty"`
	Email     string `json:"email" bson:"email"`
}

// Refund is a refund request against a booking. Processing is a status and
// annotation workflow only; no money moves.
type Refund struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	SubmissionLink `bson:",inline"`
	BookingRef string    `json:"booking_ref,omitempty" bson:"booking_ref,omitempty"`
	Reason     string    `json:"reason" bson:"reason"`
	Status     string    `json:"status" bson:"status"`
	AdminNote  string    `json:"admin_note,omitempty" bson:"admin_note,omitempty"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

// Inquiry is a general support question.
type Inquiry struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	SubmissionLink `bson:",inline"`
	Name     string `json:"name" bson:"name"`
	Subject  string `json:"subject" bson:"subject"`
	Message  string `json:"message" bson:"message"`
	Status   string `json:"status" bson:"status"`
	Response string `json:"response,omitempty" bson:"response,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// Feedback is a rating with an optional free-form message.
type Feedback struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	SubmissionLink `bson:",inline"`
	Name     string `json:"name" bson:"name"`
	Rating   int    `json:"rating" bson:"rating"`
	Message  string `json:"message" bson:"message"`
	Status   string `json:"status" bson:"status"`
	Response string `json:"response,omitempty" bson:"response,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}
