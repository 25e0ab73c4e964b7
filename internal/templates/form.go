package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"github.com/csg33k/approval-form/internal/domain"
)

// FormView is everything the approval form renders from.
type FormView struct {
	Supervisors []domain.Supervisor
	Selected    *domain.Supervisor
	Email       string
	Supervisee  string
	Decision    domain.Decision
	MonthYear   string
	Message     string
	Success     bool
	CanSubmit   bool
}

// Page is the full approval form document.
func Page(v FormView) templ.Component { return component("page", v) }

// Form is the #approval-form fragment swapped by every htmx interaction.
func Form(v FormView) templ.Component { return component("form", v) }

// Month is the current month label, polled hourly by the page.
func Month(monthYear string) templ.Component { return component("month", monthYear) }

func component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return formTmpl.ExecuteTemplate(w, name, data)
	})
}

var formTmpl = template.Must(template.New("form").Funcs(template.FuncMap{
	"itoa":     itoa,
	"selected": func(a, b int64) bool { return a == b },
}).Parse(formTemplates))

const formTemplates = `
{{define "page"}}<!DOCTYPE html>
<html lang="fa" dir="rtl">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>تایید کار ماهانه پژوهشگران</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<style>
  :root { --brand: #667eea; --ok: #28a745; --bad: #dc3545; --muted: #6b7280; }
  * { box-sizing: border-box; }
  body { margin: 0; min-height: 100vh; font-family: Tahoma, Arial, sans-serif; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); }
  .container { max-width: 640px; margin: 0 auto; padding: 40px 16px; }
  .wrapper { background: white; border-radius: 16px; padding: 32px; box-shadow: 0 10px 40px rgba(0,0,0,0.2); }
  .title { margin: 0 0 8px; color: var(--brand); font-size: 1.5rem; }
  .description { margin: 0 0 24px; color: var(--muted); }
  .field { margin-bottom: 18px; }
  .field label { display: block; margin-bottom: 6px; font-weight: bold; }
  .icon { margin-left: 6px; }
  select, input { width: 100%; padding: 10px 12px; border: 1px solid #d1d5db; border-radius: 8px; font: inherit; }
  .info-box { padding: 10px 12px; background: #f3f4f6; border-radius: 8px; }
  .month-section { display: flex; gap: 12px; align-items: center; flex-wrap: wrap; }
  .month-display { padding: 10px 16px; background: #eef2ff; border-radius: 8px; font-weight: bold; }
  .approval-btn { padding: 10px 18px; border-radius: 8px; border: 2px solid; background: white; cursor: pointer; font: inherit; }
  .approve-btn { border-color: var(--ok); color: var(--ok); }
  .reject-btn { border-color: var(--bad); color: var(--bad); }
  .approve-btn.active { background: var(--ok); color: white; }
  .reject-btn.active { background: var(--bad); color: white; }
  .confirmation { padding: 14px; background: #fefce8; border-radius: 8px; line-height: 1.8; }
  .submit-btn { width: 100%; padding: 14px; border: none; border-radius: 8px; background: var(--brand); color: white; font: inherit; font-weight: bold; cursor: pointer; }
  .submit-btn:disabled { opacity: 0.5; cursor: not-allowed; }
  .message { margin-top: 16px; padding: 12px; border-radius: 8px; }
  .message.success { background: #d4edda; color: #155724; }
  .message.error { background: #f8d7da; color: #721c24; }
  .htmx-indicator { display: none; }
  .htmx-request .htmx-indicator { display: inline; }
  .htmx-request .idle-label { display: none; }
</style>
</head>
<body>
<div class="container">
  <div class="wrapper">
    <h1 class="title">تایید کار ماهانه پژوهشگران</h1>
    <p class="description">لطفاً اطلاعات مورد نیاز را تکمیل کنید</p>
    {{template "form" .}}
  </div>
</div>
</body>
</html>{{end}}

{{define "month"}}{{.}}{{end}}

{{define "form"}}
<form id="approval-form" hx-post="/form/submit" hx-target="this" hx-swap="outerHTML" hx-disabled-elt="#submit-btn">
  <div class="field">
    <label for="supervisor"><span class="icon">👤</span>اسامی اساتید *</label>
    <select id="supervisor" name="supervisor" required
            hx-get="/form/supervisor" hx-trigger="change" hx-target="#approval-form" hx-swap="outerHTML" hx-include="#approval-form">
      <option value="">-- لطفاً نام خود را از لیست انتخاب کنید --</option>
      {{$sel := .Selected}}
      {{range .Supervisors}}
      <option value="{{itoa .ID}}"{{if $sel}}{{if selected $sel.ID .ID}} selected{{end}}{{end}}>{{.Name}}</option>
      {{end}}
    </select>
  </div>

  {{if .Selected}}
  <div class="field">
    <label for="email"><span class="icon">📧</span>ایمیل *</label>
    <input type="email" id="email" name="email" value="{{.Email}}" required placeholder="example@email.com"
           hx-get="/form/email" hx-trigger="change" hx-target="#approval-form" hx-swap="outerHTML" hx-include="#approval-form">
  </div>

  <div class="field">
    <label><span class="icon">📋</span>عنوان پروژه</label>
    <div class="info-box">{{.Selected.ProjectTitle}}</div>
  </div>

  <div class="field">
    <label for="supervisee"><span class="icon">👥</span>اسامی دانشجویان *</label>
    <select id="supervisee" name="supervisee" required
            hx-get="/form/supervisee" hx-trigger="change" hx-target="#approval-form" hx-swap="outerHTML" hx-include="#approval-form">
      <option value="">-- لطفاً دانشجو را انتخاب کنید --</option>
      {{$cur := .Supervisee}}
      {{range .Selected.Supervisees}}
      <option value="{{.}}"{{if eq . $cur}} selected{{end}}>{{.}}</option>
      {{end}}
    </select>
  </div>
  {{end}}

  <div class="field">
    <label><span class="icon">📅</span>ماه جاری</label>
    <div class="month-section">
      <div class="month-display" id="month-display" hx-get="/form/month" hx-trigger="every 1h" hx-swap="innerHTML">{{template "month" .MonthYear}}</div>
      <input type="hidden" name="decision" value="{{.Decision}}">
      <button type="button" class="approval-btn approve-btn{{if eq .Decision "approved"}} active{{end}}"
              hx-get="/form/decision" hx-vals='{"choose":"approved"}' hx-target="#approval-form" hx-swap="outerHTML" hx-include="#approval-form">✓ تایید</button>
      <button type="button" class="approval-btn reject-btn{{if eq .Decision "rejected"}} active{{end}}"
              hx-get="/form/decision" hx-vals='{"choose":"rejected"}' hx-target="#approval-form" hx-swap="outerHTML" hx-include="#approval-form">✗ عدم تایید</button>
    </div>
  </div>

  {{if .Selected}}
  <div class="field">
    <div class="confirmation">
      اینجانب <strong>{{.Selected.Name}}</strong> به عنوان استاد میزبان، عملکرد پژوهشگر پسادکتری تحت نظارت خود را در ماه جاری تایید می‌کنم
    </div>
  </div>
  {{end}}

  <button type="submit" id="submit-btn" class="submit-btn"{{if not .CanSubmit}} disabled{{end}}>
    <span class="htmx-indicator">در حال ارسال...</span>
    <span class="idle-label"><span class="icon">✉️</span>ارسال فرم</span>
  </button>

  {{if .Message}}
  <div class="message {{if .Success}}success{{else}}error{{end}}">{{.Message}}</div>
  {{end}}
</form>
{{end}}
`
