package submission

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/csg33k/approval-form/internal/domain"
)

// Payload is the JSON body accepted by the submission endpoint. It carries
// the keys of both form shapes; FormType selects which shape applies.
type Payload struct {
	FormType string `json:"formType,omitempty"`

	ProfessorName  string `json:"professorName,omitempty"`
	ProfessorEmail string `json:"professorEmail,omitempty"`
	ProjectTitle   string `json:"projectTitle,omitempty"`
	StudentName    string `json:"studentName,omitempty"`
	Month          string `json:"month,omitempty"`
	Year           Text   `json:"year,omitempty"`
	MonthYear      string `json:"monthYear,omitempty"`
	ApprovalStatus string `json:"approvalStatus,omitempty"`
	Timestamp      string `json:"timestamp,omitempty"`

	FromName  string `json:"from_name,omitempty"`
	UserEmail string `json:"user_email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Text is a string that also accepts a bare JSON number, so "year" may be
// sent as 1404 or "1404".
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

func (p *Payload) trim() {
	for _, s := range []*string{
		&p.FormType, &p.ProfessorName, &p.ProfessorEmail, &p.ProjectTitle, &p.StudentName,
		&p.Month, &p.MonthYear, &p.ApprovalStatus, &p.FromName, &p.UserEmail, &p.Phone,
	} {
		*s = strings.TrimSpace(*s)
	}
	p.Year = Text(strings.TrimSpace(string(p.Year)))
	p.Message = strings.TrimSpace(p.Message)
}

func (p Payload) hasApprovalKeys() bool {
	return p.ProfessorName != "" && p.StudentName != ""
}

func (p Payload) hasContactKeys() bool {
	return p.FromName != "" || p.UserEmail != "" || p.Message != ""
}

func (p Payload) approval() *domain.ApprovalRecord {
	return &domain.ApprovalRecord{
		SupervisorName:  p.ProfessorName,
		SupervisorEmail: p.ProfessorEmail,
		ProjectTitle:    p.ProjectTitle,
		SuperviseeName:  p.StudentName,
		Month:           p.Month,
		Year:            string(p.Year),
		MonthYear:       p.MonthYear,
		Decision:        domain.Decision(p.ApprovalStatus),
	}
}

func (p Payload) contact() *domain.ContactRecord {
	return &domain.ContactRecord{
		SenderName:  p.FromName,
		SenderEmail: p.UserEmail,
		Phone:       p.Phone,
		Message:     p.Message,
	}
}

// ApprovalPayload builds the endpoint body for an approval record, with the
// explicit form type marker set.
func ApprovalPayload(r domain.ApprovalRecord, timestamp string) Payload {
	return Payload{
		FormType:       string(domain.VariantApproval),
		ProfessorName:  r.SupervisorName,
		ProfessorEmail: r.SupervisorEmail,
		ProjectTitle:   r.ProjectTitle,
		StudentName:    r.SuperviseeName,
		Month:          r.Month,
		Year:           Text(r.Year),
		MonthYear:      r.MonthYear,
		ApprovalStatus: string(r.Decision),
		Timestamp:      timestamp,
	}
}
