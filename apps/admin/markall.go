package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/darasa/core/calendar"
)

// markAll marks the cohort present on date. Failed students are listed; the command then fails.
func (cli *commandLine) markAll(date string) error {
	day := calendar.Day(time.Now())
	if date != "" {
		d, err := calendar.ParseDay(date)
		if err != nil {
			return err
		}
		day = calendar.Day(d)
	}

	ctx := context.Background()
	cohort, err := cli.students.QueryActive(ctx)
	if err != nil {
		return err
	}
	ids := make([]int, 0, len(cohort))
	for _, s := range cohort {
		ids = append(ids, s.ID)
	}

	res, err := cli.attendance.MarkAllPresent(ctx, ids, day)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %d created, %d updated, %d unchanged\n",
		day.Format(calendar.DayLayout), res.Created, res.Updated, res.Unchanged)
	for _, f := range res.Failures {
		fmt.Fprintf(cli.out, "  student %d: %v\n", f.ID, f.Err)
	}
	return res.Err()
}
