// Package webform holds the approval form's interaction state and the
// current-month clock shown beside it.
package webform

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/jalali"
	"github.com/csg33k/approval-form/internal/ports"
	"github.com/csg33k/approval-form/internal/submission"
	"github.com/csg33k/approval-form/internal/templates"
)

// Status is the submit lifecycle of the form.
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Submitting:
		return "submitting"
	case Succeeded:
		return "success"
	case Failed:
		return "error"
	}
	return "idle"
}

// User-facing messages.
const (
	MsgPickSupervisor = "❌ لطفاً استاد را انتخاب کنید"
	MsgPickSupervisee = "❌ لطفاً دانشجو را انتخاب کنید"
	MsgPickDecision   = "❌ لطفاً وضعیت تایید را مشخص کنید"
	MsgSent           = "✅ فرم با موفقیت ارسال شد!"
	MsgSendFailed     = "❌ خطا در ارسال فرم. لطفاً دوباره تلاش کنید."
)

// ErrIncomplete is returned by Submit when a required choice is missing.
var ErrIncomplete = errors.New("form incomplete")

// Form is the state of one approval form. The zero value is an empty idle form.
type Form struct {
	Supervisor *domain.Supervisor
	Email      string
	Supervisee string
	Decision   domain.Decision
	Status     Status
	Message    string
}

// touch returns the form to idle; any edit clears a previous result.
func (f *Form) touch() {
	f.Status = Idle
	f.Message = ""
}

// SelectSupervisor fills in s's email and resets the supervisee and
// decision. A nil s clears the selection.
func (f *Form) SelectSupervisor(s *domain.Supervisor) {
	f.touch()
	f.Supervisor = s
	f.Email = ""
	if s != nil {
		f.Email = s.Email
	}
	f.Supervisee = ""
	f.Decision = ""
}

// SelectSupervisee accepts only names listed under the selected supervisor.
// An empty name clears the choice.
func (f *Form) SelectSupervisee(name string) bool {
	f.touch()
	if name == "" {
		f.Supervisee = ""
		return true
	}
	if f.Supervisor == nil || !f.Supervisor.HasSupervisee(name) {
		f.Supervisee = ""
		return false
	}
	f.Supervisee = name
	return true
}

func (f *Form) SetDecision(d domain.Decision) bool {
	f.touch()
	switch d {
	case domain.DecisionApproved, domain.DecisionRejected:
		f.Decision = d
		return true
	}
	f.Decision = ""
	return false
}

// SetEmail overrides the auto-filled supervisor email.
func (f *Form) SetEmail(email string) {
	f.touch()
	f.Email = email
}

func (f *Form) CanSubmit() bool {
	return f.Status != Submitting && f.missing() == ""
}

func (f *Form) missing() string {
	switch {
	case f.Supervisor == nil:
		return MsgPickSupervisor
	case f.Supervisee == "":
		return MsgPickSupervisee
	case f.Decision == "":
		return MsgPickDecision
	}
	return ""
}

// Record builds the approval record for month, as the endpoint receives it.
func (f *Form) Record(month jalali.Date) domain.ApprovalRecord {
	r := domain.ApprovalRecord{
		SupervisorEmail: f.Email,
		SuperviseeName:  f.Supervisee,
		Month:           month.MonthName(),
		Year:            strconv.Itoa(month.Year),
		MonthYear:       month.MonthYear(),
		Decision:        f.Decision,
	}
	if f.Supervisor != nil {
		r.SupervisorName = f.Supervisor.Name
		r.ProjectTitle = f.Supervisor.ProjectTitle
	}
	return r
}

// Submit posts the form through client. When a choice is missing it sets the
// matching message, makes no call and returns ErrIncomplete. Any client
// error is returned after the generic failure message is set.
func (f *Form) Submit(ctx context.Context, client ports.SubmissionClient, month jalali.Date, at time.Time) error {
	if msg := f.missing(); msg != "" {
		f.Status = Failed
		f.Message = msg
		return ErrIncomplete
	}

	f.Status = Submitting
	f.Message = ""
	payload := submission.ApprovalPayload(f.Record(month), at.UTC().Format(time.RFC3339Nano))
	if _, err := client.Submit(ctx, payload); err != nil {
		f.Status = Failed
		f.Message = MsgSendFailed
		return err
	}
	f.Status = Succeeded
	f.Message = MsgSent
	return nil
}

// View projects the form onto the template model.
func (f *Form) View(supervisors []domain.Supervisor, monthYear string) templates.FormView {
	return templates.FormView{
		Supervisors: supervisors,
		Selected:    f.Supervisor,
		Email:       f.Email,
		Supervisee:  f.Supervisee,
		Decision:    f.Decision,
		MonthYear:   monthYear,
		Message:     f.Message,
		Success:     f.Status == Succeeded,
		CanSubmit:   f.CanSubmit(),
	}
}
