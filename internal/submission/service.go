package submission

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/adapters/pdf"
	"github.com/csg33k/approval-form/internal/adapters/xlsx"
	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/jalali"
	"github.com/csg33k/approval-form/internal/ports"
	"github.com/csg33k/approval-form/internal/templates"
)

// Service renders a validated submission and emails it to the admin and
// then to the submitter. It keeps no state between calls.
type Service struct {
	mailer   ports.Mailer
	encoder  ports.SpreadsheetEncoder
	receipts ports.ReceiptRenderer
	admin    string
	loc      *time.Location
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Service)

// WithReceipts attaches a PDF copy of the record next to the workbook.
func WithReceipts(r ports.ReceiptRenderer) Option { return func(s *Service) { s.receipts = r } }

// WithLocation sets the zone the receipt timestamp is rendered in.
func WithLocation(loc *time.Location) Option { return func(s *Service) { s.loc = loc } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

func WithLogger(log *zap.Logger) Option { return func(s *Service) { s.log = log } }

func NewService(mailer ports.Mailer, encoder ports.SpreadsheetEncoder, adminEmail string, opts ...Option) *Service {
	s := &Service{
		mailer:  mailer,
		encoder: encoder,
		admin:   adminEmail,
		loc:     time.Local,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Submit dispatches sub and returns its reference id. The id is returned
// even on failure so the caller can correlate the logged error.
func (s *Service) Submit(ctx context.Context, sub domain.Submission) (string, error) {
	sub.ID = uuid.NewString()
	sub.ReceivedAt = s.now().In(s.loc)
	submittedAt := jalali.FormatDateTime(sub.ReceivedAt)

	admin, ack, err := s.render(sub, submittedAt)
	if err != nil {
		return sub.ID, err
	}

	attachments, err := s.attachments(sub, submittedAt)
	if err != nil {
		return sub.ID, err
	}
	admin.To, admin.Attachments = s.admin, attachments
	ack.To, ack.Attachments = sub.SubmitterEmail(), attachments

	log := s.log.With(zap.String("id", sub.ID), zap.String("variant", string(sub.Variant)))
	if err := s.mailer.Send(ctx, admin); err != nil {
		return sub.ID, fmt.Errorf("send admin email: %w", err)
	}
	log.Info("admin email sent", zap.String("to", admin.To))
	if err := s.mailer.Send(ctx, ack); err != nil {
		return sub.ID, fmt.Errorf("send acknowledgment to %s: %w", ack.To, err)
	}
	log.Info("acknowledgment sent", zap.String("to", ack.To))
	return sub.ID, nil
}

func (s *Service) render(sub domain.Submission, submittedAt string) (admin, ack domain.Email, err error) {
	switch sub.Variant {
	case domain.VariantApproval:
		admin, ack, err = templates.BuildApprovalEmails(templates.ApprovalEmailData{
			Record: *sub.Approval, SubmittedAt: submittedAt, ReferenceID: sub.ID,
		})
	case domain.VariantContact:
		admin, ack, err = templates.BuildContactEmails(templates.ContactEmailData{
			Record: *sub.Contact, SubmittedAt: submittedAt, ReferenceID: sub.ID,
		})
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownVariant, sub.Variant)
	}
	if err != nil {
		return admin, ack, fmt.Errorf("render emails: %w", err)
	}
	return admin, ack, nil
}

func (s *Service) attachments(sub domain.Submission, submittedAt string) ([]domain.Attachment, error) {
	record := BuildRecord(sub, submittedAt)
	base := fmt.Sprintf("form_%d", sub.ReceivedAt.UnixMilli())

	book, err := s.encoder.Encode(record)
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	out := []domain.Attachment{{Filename: base + ".xlsx", ContentType: xlsx.ContentType, Data: book}}

	if s.receipts != nil {
		doc, err := s.receipts.Render(ReceiptTitle(sub.Variant), record)
		if err != nil {
			return nil, fmt.Errorf("render receipt: %w", err)
		}
		out = append(out, domain.Attachment{Filename: base + ".pdf", ContentType: pdf.ContentType, Data: doc})
	}
	return out, nil
}
