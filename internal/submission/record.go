package submission

import "github.com/csg33k/approval-form/internal/domain"

// BuildRecord flattens a submission into the ordered spreadsheet row.
// submittedAt is the already formatted receipt time.
func BuildRecord(s domain.Submission, submittedAt string) domain.Record {
	switch s.Variant {
	case domain.VariantApproval:
		a := s.Approval
		return domain.Record{
			{Key: "نام استاد", Value: a.SupervisorName},
			{Key: "ایمیل استاد", Value: a.SupervisorEmail},
			{Key: "عنوان پروژه", Value: a.ProjectTitle},
			{Key: "نام دانشجو", Value: a.SuperviseeName},
			{Key: "ماه", Value: a.Month},
			{Key: "سال", Value: a.Year},
			{Key: "ماه و سال", Value: a.MonthYear},
			{Key: "وضعیت تایید", Value: a.Decision.Label()},
			{Key: "تاریخ ثبت", Value: submittedAt},
		}
	case domain.VariantContact:
		c := s.Contact
		phone := c.Phone
		if phone == "" {
			phone = "-"
		}
		return domain.Record{
			{Key: "نام", Value: c.SenderName},
			{Key: "ایمیل", Value: c.SenderEmail},
			{Key: "تلفن", Value: phone},
			{Key: "پیام", Value: c.Message},
			{Key: "تاریخ", Value: submittedAt},
		}
	}
	return nil
}

// ReceiptTitle is the heading printed on the PDF copy of a submission.
func ReceiptTitle(v domain.Variant) string {
	if v == domain.VariantApproval {
		return "فرم تایید کار ماهانه پژوهشگران"
	}
	return "فرم تماس"
}
