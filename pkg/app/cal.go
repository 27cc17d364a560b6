package app

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	calendar = cal.NewBusinessCalendar()
)

func init() {
	calendar.AddHoliday(
		us.NewYear,
		us.MemorialDay,
		us.IndependenceDay,
		us.Juneteenth,
		us.DayAfterThanksgivingDay,
		us.LaborDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
}

// holidayNote names the public holiday a time falls on, or "" when it is
// an ordinary day. Useful to know before planning a museum visit.
func holidayNote(t time.Time) string {
	actual, observed, holiday := calendar.IsHoliday(t)
	if actual || observed {
		return holiday.Name
	}
	return ""
}
