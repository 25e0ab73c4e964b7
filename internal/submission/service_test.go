package submission_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/submission"
)

type fakeMailer struct {
	sent   []domain.Email
	failAt int // 1-based send that fails; 0 never fails
}

func (m *fakeMailer) Send(_ context.Context, e domain.Email) error {
	m.sent = append(m.sent, e)
	if m.failAt == len(m.sent) {
		return errors.New("relay unavailable")
	}
	return nil
}

type fakeEncoder struct {
	got domain.Record
	err error
}

func (e *fakeEncoder) Encode(r domain.Record) ([]byte, error) {
	e.got = r
	return []byte("xlsx"), e.err
}

type fakeReceipts struct{ title string }

func (f *fakeReceipts) Render(title string, _ domain.Record) ([]byte, error) {
	f.title = title
	return []byte("pdf"), nil
}

var fixed = time.Date(2025, 10, 16, 10, 35, 9, 0, time.UTC)

func newService(m *fakeMailer, e *fakeEncoder, opts ...submission.Option) *submission.Service {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	opts = append([]submission.Option{
		submission.WithLocation(tehran),
		submission.WithClock(func() time.Time { return fixed }),
	}, opts...)
	return submission.NewService(m, e, "admin@example.com", opts...)
}

func approvalSubmission(d domain.Decision) domain.Submission {
	return domain.Submission{
		Variant: domain.VariantApproval,
		Approval: &domain.ApprovalRecord{
			SupervisorName:  "دکتر سارا نوری",
			SupervisorEmail: "sara.nouri@example.com",
			ProjectTitle:    "پروژه پردازش زبان طبیعی",
			SuperviseeName:  "زهرا موسوی",
			Month:           "مهر",
			Year:            "1404",
			MonthYear:       "مهر - 1404",
			Decision:        d,
		},
	}
}

func TestSubmit_ApprovalSendsAdminThenSubmitter(t *testing.T) {
	m, e := &fakeMailer{}, &fakeEncoder{}
	id, err := newService(m, e).Submit(context.Background(), approvalSubmission(domain.DecisionApproved))
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if id == "" {
		t.Error("expected a reference id")
	}
	if len(m.sent) != 2 {
		t.Fatalf("sent %d emails, want 2", len(m.sent))
	}
	admin, ack := m.sent[0], m.sent[1]
	if admin.To != "admin@example.com" || ack.To != "sara.nouri@example.com" {
		t.Errorf("recipients = %q, %q", admin.To, ack.To)
	}
	if !strings.Contains(admin.Subject, "زهرا موسوی") {
		t.Errorf("admin subject = %q", admin.Subject)
	}

	wantName := "form_" + "1760610909000" + ".xlsx"
	for _, msg := range m.sent {
		if len(msg.Attachments) != 1 {
			t.Fatalf("attachments = %d, want 1", len(msg.Attachments))
		}
		if a := msg.Attachments[0]; a.Filename != wantName || string(a.Data) != "xlsx" {
			t.Errorf("attachment = %s %q", a.Filename, a.Data)
		}
	}

	keys := e.got.Keys()
	if len(keys) != 9 || keys[0] != "نام استاد" || keys[8] != "تاریخ ثبت" {
		t.Errorf("record keys = %v", keys)
	}
	if got := e.got[8].Value; got != "۱۴۰۴/۷/۲۴، ۱۴:۰۵:۰۹" {
		t.Errorf("submitted at = %v", got)
	}
	if got := e.got[7].Value; got != "تایید" {
		t.Errorf("decision cell = %v", got)
	}
}

func TestSubmit_DecisionColour(t *testing.T) {
	cases := map[domain.Decision]string{
		domain.DecisionApproved: domain.ColorApproved,
		domain.DecisionRejected: domain.ColorRejected,
	}
	for d, colour := range cases {
		m := &fakeMailer{}
		if _, err := newService(m, &fakeEncoder{}).Submit(context.Background(), approvalSubmission(d)); err != nil {
			t.Fatalf("%s: %v", d, err)
		}
		for _, msg := range m.sent {
			if !strings.Contains(msg.HTMLBody, colour) {
				t.Errorf("%s: %q body missing %s", d, msg.Subject, colour)
			}
		}
	}
}

func TestSubmit_Contact(t *testing.T) {
	m, e := &fakeMailer{}, &fakeEncoder{}
	sub := domain.Submission{
		Variant: domain.VariantContact,
		Contact: &domain.ContactRecord{SenderName: "Ali", SenderEmail: "a@b.com", Message: "hello"},
	}
	if _, err := newService(m, e).Submit(context.Background(), sub); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("sent %d, want 2", len(m.sent))
	}
	if !strings.Contains(m.sent[0].Subject, "Ali") {
		t.Errorf("admin subject = %q", m.sent[0].Subject)
	}
	if m.sent[1].To != "a@b.com" {
		t.Errorf("ack to = %q", m.sent[1].To)
	}
	if got := e.got[2].Value; got != "-" {
		t.Errorf("phone cell = %v, want -", got)
	}
}

func TestSubmit_RelayFailure(t *testing.T) {
	for _, failAt := range []int{1, 2} {
		m := &fakeMailer{failAt: failAt}
		id, err := newService(m, &fakeEncoder{}).Submit(context.Background(), approvalSubmission(domain.DecisionApproved))
		if err == nil {
			t.Fatalf("failAt=%d: expected error", failAt)
		}
		if id == "" {
			t.Errorf("failAt=%d: id should be returned with the error", failAt)
		}
		if len(m.sent) != failAt {
			t.Errorf("failAt=%d: attempted %d sends, want %d (no retry)", failAt, len(m.sent), failAt)
		}
	}
}

func TestSubmit_EncodeFailureSendsNothing(t *testing.T) {
	m := &fakeMailer{}
	_, err := newService(m, &fakeEncoder{err: errors.New("disk full")}).Submit(context.Background(), approvalSubmission(domain.DecisionApproved))
	if err == nil {
		t.Fatal("expected error")
	}
	if len(m.sent) != 0 {
		t.Errorf("sent %d emails, want 0", len(m.sent))
	}
}

func TestSubmit_WithReceipts(t *testing.T) {
	m, r := &fakeMailer{}, &fakeReceipts{}
	if _, err := newService(m, &fakeEncoder{}, submission.WithReceipts(r)).Submit(context.Background(), approvalSubmission(domain.DecisionRejected)); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.title != submission.ReceiptTitle(domain.VariantApproval) {
		t.Errorf("receipt title = %q", r.title)
	}
	for _, msg := range m.sent {
		if len(msg.Attachments) != 2 || !strings.HasSuffix(msg.Attachments[1].Filename, ".pdf") {
			t.Errorf("attachments = %+v", msg.Attachments)
		}
	}
}
