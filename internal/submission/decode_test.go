package submission_test

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/submission"
)

const approvalBody = `{
	"professorName": "دکتر سارا نوری",
	"professorEmail": "sara.nouri@example.com",
	"projectTitle": "پروژه پردازش زبان طبیعی",
	"studentName": "زهرا موسوی",
	"month": "مهر",
	"year": 1404,
	"monthYear": "مهر - 1404",
	"approvalStatus": "approved",
	"timestamp": "2025-10-16T10:35:09.000Z"
}`

func decode(t *testing.T, body string) (domain.Submission, error) {
	t.Helper()
	return submission.NewDecoder(zap.NewNop()).Decode(strings.NewReader(body))
}

func TestDecode_Approval(t *testing.T) {
	sub, err := decode(t, approvalBody)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sub.Variant != domain.VariantApproval || sub.Approval == nil || sub.Contact != nil {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if sub.Approval.Year != "1404" {
		t.Errorf("Year = %q, want 1404", sub.Approval.Year)
	}
	if sub.Approval.Decision != domain.DecisionApproved {
		t.Errorf("Decision = %q", sub.Approval.Decision)
	}
	if sub.SubmitterEmail() != "sara.nouri@example.com" {
		t.Errorf("SubmitterEmail() = %q", sub.SubmitterEmail())
	}
}

func TestDecode_YearAsString(t *testing.T) {
	body := strings.Replace(approvalBody, `"year": 1404`, `"year": "1404"`, 1)
	sub, err := decode(t, body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sub.Approval.Year != "1404" {
		t.Errorf("Year = %q", sub.Approval.Year)
	}
}

func TestDecode_ApprovalMissingField(t *testing.T) {
	for _, key := range []string{"professorEmail", "studentName", "approvalStatus", "monthYear", "month", "year"} {
		t.Run(key, func(t *testing.T) {
			body := blank(approvalBody, key)
			if _, err := decode(t, `{"formType":"approval",`+body[1:]); !errors.Is(err, submission.ErrMissingFields) {
				t.Errorf("err = %v, want ErrMissingFields", err)
			}
		})
	}
}

func TestDecode_ProjectTitleOptional(t *testing.T) {
	if _, err := decode(t, blank(approvalBody, "projectTitle")); err != nil {
		t.Errorf("Decode: %v", err)
	}
}

func TestDecode_InvalidDecision(t *testing.T) {
	body := strings.Replace(approvalBody, `"approved"`, `"maybe"`, 1)
	if _, err := decode(t, body); !errors.Is(err, submission.ErrMissingFields) {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}
}

// Only presence is checked; the relay is the judge of the address.
func TestDecode_EmailSyntaxNotChecked(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"approval", strings.Replace(approvalBody, "sara.nouri@example.com", "sara@uni", 1)},
		{"contact", `{"from_name":"Ali","user_email":"a@b","message":"hello"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decode(t, tc.body); err != nil {
				t.Errorf("Decode: %v", err)
			}
		})
	}
}

func TestDecode_Contact(t *testing.T) {
	sub, err := decode(t, `{"from_name":"Ali","user_email":"a@b.com","message":"hello"}`)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sub.Variant != domain.VariantContact || sub.Contact == nil {
		t.Fatalf("unexpected submission %+v", sub)
	}
	if sub.SubmitterName() != "Ali" || sub.Contact.Phone != "" {
		t.Errorf("unexpected contact %+v", sub.Contact)
	}
}

func TestDecode_ContactMissingMessage(t *testing.T) {
	_, err := decode(t, `{"from_name":"Ali","user_email":"a@b.com"}`)
	if !errors.Is(err, submission.ErrMissingFields) {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}
}

func TestDecode_WhitespaceOnlyIsMissing(t *testing.T) {
	_, err := decode(t, `{"from_name":"  ","user_email":"a@b.com","message":"hi"}`)
	if !errors.Is(err, submission.ErrMissingFields) {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}
}

func TestDecode_PartialApprovalFallsBackToContact(t *testing.T) {
	// professorName without studentName is not an approval without a marker.
	_, err := decode(t, `{"professorName":"X","professorEmail":"x@y.com"}`)
	if !errors.Is(err, submission.ErrMissingFields) {
		t.Errorf("err = %v, want ErrMissingFields", err)
	}
}

func TestDecode_ExplicitMarkerWins(t *testing.T) {
	body := `{"formType":"contact","professorName":"X","studentName":"Y","from_name":"Ali","user_email":"a@b.com","message":"hi"}`
	sub, err := decode(t, body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sub.Variant != domain.VariantContact {
		t.Errorf("Variant = %q, want contact", sub.Variant)
	}
}

func TestDecode_BothShapesWithoutMarker(t *testing.T) {
	body := strings.Replace(approvalBody, "{", `{"from_name":"Ali","user_email":"a@b.com","message":"hi",`, 1)
	sub, err := decode(t, body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if sub.Variant != domain.VariantApproval {
		t.Errorf("Variant = %q, want approval", sub.Variant)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"not json", "from_name=Ali", submission.ErrMalformedBody},
		{"empty", "", submission.ErrMalformedBody},
		{"array", "[]", submission.ErrMalformedBody},
		{"trailing garbage", `{"from_name":"Ali","user_email":"a@b.com","message":"hello"} garbage`, submission.ErrMalformedBody},
		{"two objects", `{"from_name":"Ali","user_email":"a@b.com","message":"hello"}{}`, submission.ErrMalformedBody},
		{"bad year", strings.Replace(approvalBody, "1404,", "true,", 1), submission.ErrMalformedBody},
		{"unknown marker", `{"formType":"survey"}`, submission.ErrUnknownVariant},
		{"empty object", "{}", submission.ErrMissingFields},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := decode(t, tc.body); !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

// blank sets the string or number value of key to "".
func blank(body, key string) string {
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		if strings.Contains(l, `"`+key+`"`) {
			suffix := ""
			if strings.HasSuffix(strings.TrimSpace(l), ",") {
				suffix = ","
			}
			lines[i] = `"` + key + `": ""` + suffix
		}
	}
	return strings.Join(lines, "\n")
}
