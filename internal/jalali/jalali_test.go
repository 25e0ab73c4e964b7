package jalali_test

import (
	"testing"
	"time"

	"github.com/csg33k/approval-form/internal/jalali"
)

func TestToJalali_KnownDates(t *testing.T) {
	cases := []struct {
		name       string
		gy, gm, gd int
		want       jalali.Date
	}{
		{"nowruz 1403", 2024, 3, 20, jalali.Date{Year: 1403, Month: 1, Day: 1}},
		{"mehr 1404", 2025, 10, 16, jalali.Date{Year: 1404, Month: 7, Day: 24}},
		{"bahman 1357", 1979, 2, 11, jalali.Date{Year: 1357, Month: 11, Day: 22}},
		{"last day of 1402", 2024, 3, 19, jalali.Date{Year: 1402, Month: 12, Day: 29}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := jalali.ToJalali(tc.gy, tc.gm, tc.gd)
			if got != tc.want {
				t.Errorf("ToJalali(%d,%d,%d) = %v, want %v", tc.gy, tc.gm, tc.gd, got, tc.want)
			}
		})
	}
}

// Walks every day from 1900 to 2100 and checks ranges and day-to-day continuity.
func TestToJalali_RangeAndContinuity(t *testing.T) {
	day := time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC)
	end := time.Date(2100, 12, 31, 12, 0, 0, 0, time.UTC)

	prev := jalali.FromTime(day)
	for day = day.AddDate(0, 0, 1); !day.After(end); day = day.AddDate(0, 0, 1) {
		d := jalali.FromTime(day)

		if d.Month < 1 || d.Month > 12 {
			t.Fatalf("%s: month %d out of range", day.Format("2006-01-02"), d.Month)
		}
		if jalali.MonthName(d.Month) == "" {
			t.Fatalf("%s: no name for month %d", day.Format("2006-01-02"), d.Month)
		}
		maxDay := 31
		if d.Month > 6 {
			maxDay = 30
		}
		if d.Day < 1 || d.Day > maxDay {
			t.Fatalf("%s: day %d out of range for month %d", day.Format("2006-01-02"), d.Day, d.Month)
		}

		switch {
		case d.Year == prev.Year && d.Month == prev.Month && d.Day == prev.Day+1:
		case d.Year == prev.Year && d.Month == prev.Month+1 && d.Day == 1:
		case d.Year == prev.Year+1 && d.Month == 1 && d.Day == 1 && prev.Month == 12:
		default:
			t.Fatalf("%s: %v does not follow %v", day.Format("2006-01-02"), d, prev)
		}
		prev = d
	}
}

func TestMonthName(t *testing.T) {
	if got := jalali.MonthName(1); got != "فروردین" {
		t.Errorf("MonthName(1) = %q", got)
	}
	if got := jalali.MonthName(12); got != "اسفند" {
		t.Errorf("MonthName(12) = %q", got)
	}
	for _, m := range []int{0, 13, -1} {
		if got := jalali.MonthName(m); got != "" {
			t.Errorf("MonthName(%d) = %q, want empty", m, got)
		}
	}
}

func TestDate_MonthYear(t *testing.T) {
	d := jalali.Date{Year: 1404, Month: 7, Day: 24}
	if got, want := d.MonthYear(), "مهر - 1404"; got != want {
		t.Errorf("MonthYear() = %q, want %q", got, want)
	}
}

func TestPersianDigits(t *testing.T) {
	if got, want := jalali.PersianDigits("1404/7/24 ab"), "۱۴۰۴/۷/۲۴ ab"; got != want {
		t.Errorf("PersianDigits() = %q, want %q", got, want)
	}
}

func TestFormatDateTime(t *testing.T) {
	tehran := time.FixedZone("IRST", 3*3600+1800)
	ts := time.Date(2025, 10, 16, 14, 5, 9, 0, tehran)
	if got, want := jalali.FormatDateTime(ts), "۱۴۰۴/۷/۲۴، ۱۴:۰۵:۰۹"; got != want {
		t.Errorf("FormatDateTime() = %q, want %q", got, want)
	}
}
