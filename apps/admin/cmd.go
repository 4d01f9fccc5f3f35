package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/sheet"
	"github.com/trezcool/darasa/core/student"
)

var (
	errHelp  = errors.New("help provided")
	errNoSQL = errors.New("migrations need a SQL database engine (postgres or sqlite3)")
)

type commandLine struct {
	db         *sqlx.DB // nil for the in-memory engine
	students   *student.Service
	attendance *attendance.Service
	sheets     *sheet.Builder
	mailer     core.EmailService
	recipients []string
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]            - run a goose migration command (up, down, status, version...)")
	fmt.Fprintln(cli.out, "  markall [-date YYYY-MM-DD]        - mark every active student present (defaults to today)")
	fmt.Fprintln(cli.out, "  report [-month YYYY-MM] [-to ...] - email the monthly summary with the sheets attached")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	markAllCmd := flag.NewFlagSet("markall", flag.ContinueOnError)
	markAllCmd.SetOutput(cli.out)
	markAllDate := markAllCmd.String("date", "", "The day to mark, as YYYY-MM-DD. Defaults to today.")

	reportCmd := flag.NewFlagSet("report", flag.ContinueOnError)
	reportCmd.SetOutput(cli.out)
	reportMonth := reportCmd.String("month", "", "The month to summarise, as YYYY-MM. Defaults to the current month.")
	reportTo := reportCmd.String("to", "", "Comma or space separated recipients. Defaults to the configured report recipients.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "markall":
		if err := markAllCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.markAll(*markAllDate)
	case "report":
		if err := reportCmd.Parse(args[2:]); err != nil {
			return err
		}
		recipients := cli.recipients
		if *reportTo != "" {
			recipients = strings.FieldsFunc(*reportTo, func(r rune) bool { return r == ',' || unicode.IsSpace(r) })
		}
		return cli.report(*reportMonth, recipients)
	default:
		cli.printUsage()
		return errHelp
	}
}
