package ports

import (
	"context"

	"github.com/csg33k/approval-form/internal/domain"
)

// SupervisorDirectory serves the read-only supervisor reference table.
type SupervisorDirectory interface {
	ListSupervisors(ctx context.Context) ([]domain.Supervisor, error)
	// GetSupervisor returns domain.ErrSupervisorNotFound for an unknown id.
	GetSupervisor(ctx context.Context, id int64) (*domain.Supervisor, error)
}

// Mailer dispatches one rendered email through the external relay.
type Mailer interface {
	Send(ctx context.Context, e domain.Email) error
}

// SpreadsheetEncoder turns a flat record into a single-sheet workbook.
type SpreadsheetEncoder interface {
	Encode(r domain.Record) ([]byte, error)
}

// ReceiptRenderer renders a printable copy of a record.
type ReceiptRenderer interface {
	Render(title string, r domain.Record) ([]byte, error)
}

// SubmissionClient posts a JSON payload to the submission endpoint.
type SubmissionClient interface {
	// Submit returns the endpoint's success message, or an error for
	// non-2xx replies and transport or decode failures.
	Submit(ctx context.Context, payload any) (string, error)
}
