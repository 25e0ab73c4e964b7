// Package jalali converts Gregorian dates to the Persian (Jalali) solar
// calendar and formats them the way the fa-IR locale displays them.
package jalali

import (
	"fmt"
	"strings"
	"time"
)

// Months are the twelve Jalali month names, Farvardin first.
var Months = [12]string{
	"فروردین", "اردیبهشت", "خرداد", "تیر", "مرداد", "شهریور",
	"مهر", "آبان", "آذر", "دی", "بهمن", "اسفند",
}

// cumulative day-of-year at the start of each Gregorian month (non-leap)
var gregorianDaysBefore = [12]int{0, 31, 59, 90, 120, 151, 181, 212, 243, 273, 304, 334}

// Date is a Jalali calendar date. Month is 1-indexed.
type Date struct {
	Year  int
	Month int
	Day   int
}

// ToJalali converts a Gregorian date (1-indexed month) to its Jalali date.
//
// Results for impossible Gregorian dates such as April 31 are whatever the
// day arithmetic yields; no validation is performed.
func ToJalali(gy, gm, gd int) Date {
	var jy int
	if gy > 1600 {
		jy = 979
		gy -= 1600
	} else {
		jy = 0
		gy -= 621
	}

	gy2 := gy
	if gm > 2 {
		gy2 = gy + 1
	}
	days := 365*gy + (gy2+3)/4 - (gy2+99)/100 + (gy2+399)/400 - 80 + gd + gregorianDaysBefore[gm-1]

	jy += 33 * (days / 12053)
	days %= 12053
	jy += 4 * (days / 1461)
	days %= 1461
	if days > 365 {
		jy += (days - 1) / 365
		days = (days - 1) % 365
	}

	var jm, jd int
	if days < 186 {
		jm = 1 + days/31
		jd = 1 + days%31
	} else {
		jm = 7 + (days-186)/30
		jd = 1 + (days-186)%30
	}
	return Date{Year: jy, Month: jm, Day: jd}
}

// FromTime converts the calendar date of t, in t's location.
func FromTime(t time.Time) Date {
	return ToJalali(t.Year(), int(t.Month()), t.Day())
}

// MonthName returns the name of Jalali month m (1-12), or "" when out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return Months[m-1]
}

// MonthName returns the name of d's month.
func (d Date) MonthName() string { return MonthName(d.Month) }

// MonthYear is the "<month> - <year>" label shown on the form.
func (d Date) MonthYear() string {
	return fmt.Sprintf("%s - %d", d.MonthName(), d.Year)
}

func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Year, d.Month, d.Day)
}

var digits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// PersianDigits replaces ASCII digits in s with Extended Arabic-Indic digits.
func PersianDigits(s string) string {
	return digits.Replace(s)
}

// FormatDateTime renders t like fa-IR toLocaleString: "۱۴۰۴/۷/۲۴، ۱۴:۰۵:۰۹".
func FormatDateTime(t time.Time) string {
	d := FromTime(t)
	return PersianDigits(fmt.Sprintf("%s، %02d:%02d:%02d", d, t.Hour(), t.Minute(), t.Second()))
}
