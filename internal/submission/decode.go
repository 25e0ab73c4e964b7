// Package submission decodes, validates and dispatches form submissions.
package submission

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/domain"
)

var (
	// ErrMalformedBody means the body was not a JSON object.
	ErrMalformedBody = errors.New("malformed request body")
	// ErrUnknownVariant means formType named neither known shape.
	ErrUnknownVariant = errors.New("unknown form type")
	// ErrMissingFields means a required field of the detected shape was empty or invalid.
	ErrMissingFields = errors.New("required fields missing")
)

// Decoder turns a request body into a validated domain.Submission.
type Decoder struct {
	log      *zap.Logger
	validate *validator.Validate
}

func NewDecoder(log *zap.Logger) *Decoder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Decoder{
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Decode reads one JSON payload from r. The returned submission has no ID or
// ReceivedAt; those are assigned when it is dispatched.
func (d *Decoder) Decode(r io.Reader) (domain.Submission, error) {
	var p Payload
	dec := json.NewDecoder(r)
	if err := dec.Decode(&p); err != nil {
		return domain.Submission{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.Submission{}, fmt.Errorf("%w: trailing data after JSON object", ErrMalformedBody)
	}
	p.trim()

	variant, err := d.variant(p)
	if err != nil {
		return domain.Submission{}, err
	}

	sub := domain.Submission{Variant: variant}
	var target any
	switch variant {
	case domain.VariantApproval:
		sub.Approval = p.approval()
		target = sub.Approval
	case domain.VariantContact:
		sub.Contact = p.contact()
		target = sub.Contact
	}
	if err := d.validate.Struct(target); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return domain.Submission{}, fmt.Errorf("%w: %s", ErrMissingFields, fieldList(verrs))
		}
		return domain.Submission{}, fmt.Errorf("validate %s: %w", variant, err)
	}
	return sub, nil
}

// variant honours an explicit formType. Without one, the payload is an
// approval iff professorName and studentName are both set.
func (d *Decoder) variant(p Payload) (domain.Variant, error) {
	switch domain.Variant(p.FormType) {
	case domain.VariantApproval:
		return domain.VariantApproval, nil
	case domain.VariantContact:
		return domain.VariantContact, nil
	case "":
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVariant, p.FormType)
	}

	approval, contact := p.hasApprovalKeys(), p.hasContactKeys()
	if approval && contact {
		d.log.Warn("payload carries keys of both form types; treating as approval",
			zap.String("professor", p.ProfessorName),
			zap.String("from_name", p.FromName))
	}
	v := domain.VariantContact
	if approval {
		v = domain.VariantApproval
	}
	d.log.Debug("form type inferred from fields", zap.String("variant", string(v)))
	return v, nil
}

func fieldList(verrs validator.ValidationErrors) string {
	names := make([]string, len(verrs))
	for i, fe := range verrs {
		names[i] = fe.Field() + "(" + fe.Tag() + ")"
	}
	return fmt.Sprint(names)
}
