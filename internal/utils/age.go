package utils

import (
	"fmt"
	"time"
)

// monthNames holds the Indonesian month names used for Drive folder paths,
// spreadsheet sheets and roster grouping.  Index 0 is January.
var monthNames = [12]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// MonthName returns the localized name for a 1-based month number.  An
// out-of-range month yields an empty string so callers can validate first.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month-1]
}

// BulanFromDate returns the localized month name for a date.
func BulanFromDate(t time.Time) string {
	return monthNames[int(t.Month())-1]
}

// TanggalFromDate returns the zero-padded day of month ("01".."31").
func TanggalFromDate(t time.Time) string {
	return fmt.Sprintf("%02d", t.Day())
}

// AgeAt computes age in whole years at the given reference date.  The year
// difference is decremented while the reference month/day still precedes the
// birthday, so the age ticks over exactly on the birthday itself.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}

// FormatTanggalLahir renders a birth date the way the exported rosters print
// it (day/month/year).
func FormatTanggalLahir(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}
