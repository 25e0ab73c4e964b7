package domain

import (
	"errors"
	"time"
)

// ErrSupervisorNotFound is returned by directory lookups for an unknown id.
var ErrSupervisorNotFound = errors.New("supervisor not found")

// Supervisor is a row of the static reference table shown in the form.
// It is loaded once at startup and never mutated.
type Supervisor struct {
	ID           int64    `json:"id" mapstructure:"id"`
	Name         string   `json:"name" mapstructure:"name"`
	Email        string   `json:"email" mapstructure:"email"`
	ProjectTitle string   `json:"projectTitle" mapstructure:"project_title"`
	Supervisees  []string `json:"supervisees" mapstructure:"supervisees"`
}

// HasSupervisee reports whether name is one of the supervisor's supervisees.
func (s Supervisor) HasSupervisee(name string) bool {
	for _, n := range s.Supervisees {
		if n == name {
			return true
		}
	}
	return false
}

// Variant discriminates the two submission shapes.
type Variant string

const (
	VariantApproval Variant = "approval"
	VariantContact  Variant = "contact"
)

// Decision is the supervisor's monthly verdict.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Label returns the Persian word used in emails and the spreadsheet.
func (d Decision) Label() string {
	if d == DecisionApproved {
		return "تایید"
	}
	return "عدم تایید"
}

// Color returns the status colour used in the HTML emails.
func (d Decision) Color() string {
	if d == DecisionApproved {
		return ColorApproved
	}
	return ColorRejected
}

const (
	ColorApproved = "#28a745"
	ColorRejected = "#dc3545"
)

// ApprovalRecord is a supervisor's approve/reject decision for one supervisee and month.
type ApprovalRecord struct {
	SupervisorName  string   `validate:"required"`
	SupervisorEmail string   `validate:"required"`
	ProjectTitle    string   // informational only
	SuperviseeName  string   `validate:"required"`
	Month           string   `validate:"required"`
	Year            string   `validate:"required"`
	MonthYear       string   `validate:"required"`
	Decision        Decision `validate:"required,oneof=approved rejected"`
}

// ContactRecord is the older free-text contact form submission.
type ContactRecord struct {
	SenderName  string `validate:"required"`
	SenderEmail string `validate:"required"`
	Phone       string
	Message     string `validate:"required"`
}

// Submission is a tagged union: exactly one of Approval or Contact is set,
// matching Variant.
type Submission struct {
	ID         string
	Variant    Variant
	Approval   *ApprovalRecord
	Contact    *ContactRecord
	ReceivedAt time.Time
}

// SubmitterName returns the name used to greet the submitter.
func (s Submission) SubmitterName() string {
	switch s.Variant {
	case VariantApproval:
		return s.Approval.SupervisorName
	case VariantContact:
		return s.Contact.SenderName
	}
	return ""
}

// SubmitterEmail returns the address that receives the acknowledgment.
func (s Submission) SubmitterEmail() string {
	switch s.Variant {
	case VariantApproval:
		return s.Approval.SupervisorEmail
	case VariantContact:
		return s.Contact.SenderEmail
	}
	return ""
}

// Field is one key/value cell pair of a flat record. Value is a string or a time.Time.
type Field struct {
	Key   string
	Value any
}

// Record is an ordered flat record, rendered as one spreadsheet row.
type Record []Field

// Keys returns the record's keys in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r))
	for i, f := range r {
		keys[i] = f.Key
	}
	return keys
}

// Attachment is a file carried by an outbound email.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Email is a fully rendered outbound message. The sender is owned by the relay.
type Email struct {
	To          string
	Subject     string
	HTMLBody    string
	TextBody    string
	Attachments []Attachment
}
