package payroll

import (
	"time"

	"go-bossboard/internal/company"

	"github.com/google/uuid"
)

// ShouldRun reports whether now falls inside the company's one-minute payroll
// window. The date is compared in now's location; seconds are ignored.
func ShouldRun(c company.Company, now time.Time) bool {
	if c.PayrollDate == nil || c.PayrollTime == nil {
		return false
	}

	y, m, d := now.Date()
	py, pm, pd := c.PayrollDate.Date()
	if y != py || m != pm || d != pd {
		return false
	}

	hour, minute, err := company.ParseClock(*c.PayrollTime)
	if err != nil {
		return false
	}
	return now.Hour() == hour && now.Minute() == minute
}

// PeriodFor returns [first day of now's month, now's date] as calendar dates.
func PeriodFor(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC), time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOfDay is local midnight of now's day.
func StartOfDay(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func LockKey(companyID uuid.UUID) string {
	return "payroll:run:" + companyID.String()
}
