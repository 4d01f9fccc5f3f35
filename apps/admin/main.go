package main

import (
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/sheet"
	"github.com/trezcool/darasa/core/student"
	emailsvc "github.com/trezcool/darasa/services/email"
	logsvc "github.com/trezcool/darasa/services/logger"
	"github.com/trezcool/darasa/storage"
)

var logger core.Logger

func main() {
	conf := core.Conf
	logger = logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up DB
	stores, err := storage.Open(conf)
	errAndDie(err)

	// set up services
	studentSvc := student.NewService(stores.Students)
	assignmentSvc := assignment.NewService(stores.Assignments, grade.NewScores(stores.Grades))
	attendanceSvc := attendance.NewService(stores.Attendance, logger)
	gradeSvc := grade.NewService(stores.Grades, assignmentSvc)

	// start CLI
	cli := commandLine{
		db:         stores.DB,
		students:   studentSvc,
		attendance: attendanceSvc,
		sheets:     sheet.NewBuilder(studentSvc, assignmentSvc, gradeSvc, attendanceSvc),
		mailer:     emailsvc.NewService(conf, logger),
		recipients: conf.Report.Recipients,
		out:        os.Stdout,
	}
	err = cli.run(os.Args)
	if cerr := stores.Close(); cerr != nil {
		logger.Error("closing database", cerr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("admin command failed: "+err.Error(), err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error(), err)
	}
}
