package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRates(t *testing.T) {
	mar4 := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	mar5 := mar4.AddDate(0, 0, 1)
	apr1 := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	records := []Record{
		{StudentID: 1, Date: mar4, Status: StatusPresent},
		{StudentID: 2, Date: mar4, Status: StatusPresent},
		{StudentID: 3, Date: mar4, Status: StatusLate},
		{StudentID: 1, Date: mar5, Status: StatusAbsent},
		{StudentID: 2, Date: mar5, Status: StatusPresent},
		{StudentID: 1, Date: apr1, Status: StatusPresent},
		{StudentID: 1, Date: time.Date(2023, time.March, 6, 0, 0, 0, 0, time.UTC), Status: StatusPresent},
	}

	assert.Equal(t, DayTally{Present: 2, Late: 1}, Tally(records, mar4))
	assert.Equal(t, DayTally{Present: 1, Absent: 1}, Tally(records, mar5.Add(10*time.Hour)))

	tests := []struct {
		name string
		got  int
		want int
	}{
		{name: "daily", got: DailyRate(records, mar4, 3), want: 67},
		{name: "daily without active students", got: DailyRate(records, mar4, 0), want: 0},
		{name: "monthly", got: MonthlyRate(records, mar4, 4), want: 75},
		{name: "monthly ignores other years", got: MonthlyRate(records, apr1, 1), want: 100},
		{name: "monthly without active students", got: MonthlyRate(nil, mar4, 0), want: 0},
		{name: "monthly floors the cohort at one", got: MonthlyRate(records, mar4, 0), want: 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}
