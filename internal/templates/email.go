package templates

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"

	"github.com/csg33k/approval-form/internal/domain"
)

// ApprovalEmailData feeds both approval emails.
type ApprovalEmailData struct {
	Record      domain.ApprovalRecord
	SubmittedAt string
	ReferenceID string
}

// ContactEmailData feeds both legacy contact emails.
type ContactEmailData struct {
	Record      domain.ContactRecord
	SubmittedAt string
	ReferenceID string
}

const (
	ApprovalAckSubject = "✅ تایید دریافت فرم تایید کار ماهانه"
	ContactAckSubject  = "✅ تایید دریافت فرم شما"
)

// ugc allows the basic formatting a pasted message may carry and strips the rest.
var ugc = bluemonday.UGCPolicy()

var emailFuncs = template.FuncMap{
	"statusColor": func(d domain.Decision) template.CSS { return template.CSS(d.Color()) },
	"sanitize":    func(s string) template.HTML { return template.HTML(ugc.Sanitize(s)) },
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}

var emailTmpl = template.Must(template.New("email").Funcs(emailFuncs).Parse(emailTemplates))

// BuildApprovalEmails renders the admin notification and the submitter
// acknowledgment for an approval record. Recipients are set by the caller.
func BuildApprovalEmails(d ApprovalEmailData) (admin, ack domain.Email, err error) {
	admin = domain.Email{
		Subject:  fmt.Sprintf("📋 فرم تایید کار ماهانه - %s", d.Record.SuperviseeName),
		TextBody: approvalText(d),
	}
	if admin.HTMLBody, err = execute("approval-admin", d); err != nil {
		return admin, ack, err
	}
	ack = domain.Email{
		Subject:  ApprovalAckSubject,
		TextBody: approvalText(d),
	}
	ack.HTMLBody, err = execute("approval-ack", d)
	return admin, ack, err
}

// BuildContactEmails renders both emails for a legacy contact record.
func BuildContactEmails(d ContactEmailData) (admin, ack domain.Email, err error) {
	admin = domain.Email{
		Subject:  fmt.Sprintf("📋 فرم جدید از %s", d.Record.SenderName),
		TextBody: contactText(d),
	}
	if admin.HTMLBody, err = execute("contact-admin", d); err != nil {
		return admin, ack, err
	}
	ack = domain.Email{
		Subject:  ContactAckSubject,
		TextBody: contactText(d),
	}
	ack.HTMLBody, err = execute("contact-ack", d)
	return admin, ack, err
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := emailTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func approvalText(d ApprovalEmailData) string {
	var buf bytes.Buffer
	r := d.Record
	fmt.Fprintf(&buf, "فرم تایید کار ماهانه پژوهشگران\n\n")
	fmt.Fprintf(&buf, "نام استاد: %s\n", r.SupervisorName)
	fmt.Fprintf(&buf, "ایمیل استاد: %s\n", r.SupervisorEmail)
	fmt.Fprintf(&buf, "عنوان پروژه: %s\n", r.ProjectTitle)
	fmt.Fprintf(&buf, "نام دانشجو: %s\n", r.SuperviseeName)
	fmt.Fprintf(&buf, "ماه و سال: %s\n", r.MonthYear)
	fmt.Fprintf(&buf, "وضعیت تایید: %s\n", r.Decision.Label())
	fmt.Fprintf(&buf, "تاریخ ثبت: %s\n", d.SubmittedAt)
	fmt.Fprintf(&buf, "شناسه: %s\n", d.ReferenceID)
	return buf.String()
}

func contactText(d ContactEmailData) string {
	var buf bytes.Buffer
	r := d.Record
	phone := r.Phone
	if phone == "" {
		phone = "-"
	}
	fmt.Fprintf(&buf, "نام: %s\nایمیل: %s\nتلفن: %s\nتاریخ: %s\n\n", r.SenderName, r.SenderEmail, phone, d.SubmittedAt)
	fmt.Fprintf(&buf, "پیام:\n%s\n", r.Message)
	return buf.String()
}

const emailTemplates = `
{{define "frame-open"}}<div dir="rtl" style="font-family: Tahoma, Arial; padding: 20px; background: #f5f5f5;">
  <div style="background: white; padding: 30px; border-radius: 10px; box-shadow: 0 2px 10px rgba(0,0,0,0.1);">{{end}}
{{define "frame-close"}}  </div>
</div>{{end}}

{{define "footer"}}<p style="color: #999; font-size: 12px; margin-top: 20px;">
      این ایمیل به صورت خودکار ارسال شده است.
    </p>{{end}}

{{define "approval-admin"}}{{template "frame-open"}}
    <h2 style="color: #667eea; border-bottom: 3px solid #667eea; padding-bottom: 10px;">فرم تایید کار ماهانه پژوهشگران</h2>
    <p><strong>👤 نام استاد:</strong> {{.Record.SupervisorName}}</p>
    <p><strong>📧 ایمیل استاد:</strong> {{.Record.SupervisorEmail}}</p>
    <p><strong>📋 عنوان پروژه:</strong> {{.Record.ProjectTitle}}</p>
    <p><strong>👥 نام دانشجو:</strong> {{.Record.SuperviseeName}}</p>
    <p><strong>📅 ماه و سال:</strong> {{.Record.MonthYear}}</p>
    <p><strong>✅ وضعیت تایید:</strong> <span style="color: {{statusColor .Record.Decision}}; font-weight: bold;">{{.Record.Decision.Label}}</span></p>
    <p><strong>🕐 تاریخ ثبت:</strong> {{.SubmittedAt}}</p>
    <p style="color: #999; font-size: 11px;">{{.ReferenceID}}</p>
{{template "frame-close"}}{{end}}

{{define "approval-ack"}}{{template "frame-open"}}
    <h2 style="color: #4CAF50;">سلام {{.Record.SupervisorName}} عزیز،</h2>
    <p>فرم تایید کار ماهانه شما با موفقیت دریافت شد.</p>
    <hr style="margin: 20px 0;">
    <p><strong>📋 اطلاعات فرم:</strong></p>
    <div style="background: #f0f0f0; padding: 15px; border-radius: 5px;">
      <p><strong>نام دانشجو:</strong> {{.Record.SuperviseeName}}</p>
      <p><strong>ماه و سال:</strong> {{.Record.MonthYear}}</p>
      <p><strong>وضعیت:</strong> <span style="color: {{statusColor .Record.Decision}}; font-weight: bold;">{{if eq .Record.Decision "approved"}}✅{{else}}❌{{end}} {{.Record.Decision.Label}}</span></p>
    </div>
    {{template "footer"}}
{{template "frame-close"}}{{end}}

{{define "contact-admin"}}{{template "frame-open"}}
    <h2 style="color: #667eea; border-bottom: 3px solid #667eea; padding-bottom: 10px;">فرم جدیدی دریافت شد</h2>
    <p><strong>👤 نام:</strong> {{.Record.SenderName}}</p>
    <p><strong>📧 ایمیل:</strong> {{.Record.SenderEmail}}</p>
    <p><strong>📱 تلفن:</strong> {{orDash .Record.Phone}}</p>
    <p><strong>📅 تاریخ:</strong> {{.SubmittedAt}}</p>
    <hr style="margin: 20px 0; border: none; border-top: 1px solid #eee;">
    <p><strong>💬 پیام:</strong></p>
    <div style="background: #f8f9fa; padding: 20px; border-radius: 8px; border-right: 4px solid #667eea; white-space: pre-wrap;">{{sanitize .Record.Message}}</div>
    <p style="color: #999; font-size: 11px;">{{.ReferenceID}}</p>
{{template "frame-close"}}{{end}}

{{define "contact-ack"}}{{template "frame-open"}}
    <h2 style="color: #4CAF50;">سلام {{.Record.SenderName}} عزیز،</h2>
    <p>فرم شما با موفقیت دریافت شد و در اسرع وقت بررسی خواهد شد.</p>
    <hr style="margin: 20px 0;">
    <p><strong>پیام شما:</strong></p>
    <div style="background: #f0f0f0; padding: 15px; border-radius: 5px; white-space: pre-wrap;">{{sanitize .Record.Message}}</div>
    {{template "footer"}}
{{template "frame-close"}}{{end}}
`
