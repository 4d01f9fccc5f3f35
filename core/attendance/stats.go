package attendance

import (
	"math"
	"time"

	"github.com/trezcool/darasa/core/calendar"
)

// DayTally counts the statuses recorded on one day.
type DayTally struct {
	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
}

func Tally(records []Record, day time.Time) DayTally {
	var t DayTally
	for _, r := range OnDay(records, day) {
		switch r.Status {
		case StatusPresent:
			t.Present++
		case StatusLate:
			t.Late++
		case StatusAbsent:
			t.Absent++
		}
	}
	return t
}

// DailyRate is the percentage of the cohort marked present on day.
// It is 0 when there are no active students.
func DailyRate(records []Record, day time.Time, activeCount int) int {
	if activeCount <= 0 {
		return 0
	}
	return percent(Tally(records, day).Present, activeCount)
}

// MonthlyRate is the number of present records in ref's month over the cohort size,
// as a percentage. The cohort size is floored at 1.
func MonthlyRate(records []Record, ref time.Time, activeCount int) int {
	var present int
	for _, r := range records {
		if r.Status == StatusPresent && calendar.SameMonth(r.Date, ref) {
			present++
		}
	}
	if activeCount < 1 {
		activeCount = 1
	}
	return percent(present, activeCount)
}

func percent(n, d int) int {
	return int(math.Round(float64(n) / float64(d) * 100))
}
