package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/darasa/core/calendar"
	"github.com/trezcool/darasa/core/sheet"
)

// report emails month's summary to recipients and waits for the delivery.
func (cli *commandLine) report(month string, recipients []string) error {
	ref := calendar.Day(time.Now())
	if month != "" {
		m, err := calendar.ParseMonth(month)
		if err != nil {
			return err
		}
		ref = m
	}
	to, err := sheet.ParseRecipients(recipients)
	if err != nil {
		return err
	}

	r, err := cli.sheets.SendMonthlyReport(context.Background(), cli.mailer, ref, to)
	if err != nil {
		return err
	}
	cli.mailer.Wait()
	fmt.Fprintf(cli.out, "%s: report sent to %d recipient(s)\n", r.Month, len(to))
	return nil
}
