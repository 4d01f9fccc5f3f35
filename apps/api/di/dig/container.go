package dig_container

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/darasa/apps/api/echo"
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

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// Repositories splits the opened stores into one dependency per entity.
type Repositories struct {
	dig.Out
	Students    student.Repository
	Assignments assignment.Repository
	Grades      grade.Repository
	Attendance  attendance.Repository
}

func newConfig() *core.Config {
	return core.Conf
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	return logsvc.NewRollbarLogger(stdLogger, conf)
}

func newStores(conf *core.Config, loggerParam DBLoggerParam) *storage.Stores {
	stores, err := storage.Open(conf)
	if err != nil {
		loggerParam.Logger.Fatal("setting up database: "+err.Error(), err)
	}
	return stores
}

func newRepositories(stores *storage.Stores) Repositories {
	return Repositories{
		Students:    stores.Students,
		Assignments: stores.Assignments,
		Grades:      stores.Grades,
		Attendance:  stores.Attendance,
	}
}

func newAssignmentService(repo assignment.Repository, grades grade.Repository) *assignment.Service {
	return assignment.NewService(repo, grade.NewScores(grades))
}

func newGradeService(repo grade.Repository, assignments *assignment.Service) *grade.Service {
	return grade.NewService(repo, assignments)
}

func newServerOptions(
	conf *core.Config,
	logger core.Logger,
	students *student.Service,
	assignments *assignment.Service,
	attendanceSvc *attendance.Service,
	grades *grade.Service,
	sheets *sheet.Builder,
	mailer core.EmailService,
) *echoapi.Options {
	return &echoapi.Options{
		Address:       conf.Server.Address,
		AppName:       conf.AppName,
		Debug:         conf.Debug,
		Logger:        logger,
		StudentSvc:    students,
		AssignmentSvc: assignments,
		AttendanceSvc: attendanceSvc,
		GradeSvc:      grades,
		Sheets:        sheets,

		Mailer:           mailer,
		ReportRecipients: conf.Report.Recipients,
	}
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(newConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newStores))
	must(c.Provide(newRepositories))
	must(c.Provide(emailsvc.NewService))
	must(c.Provide(student.NewService))
	must(c.Provide(newAssignmentService))
	must(c.Provide(attendance.NewService))
	must(c.Provide(newGradeService))
	must(c.Provide(sheet.NewBuilder))
	must(c.Provide(newServerOptions))
	must(c.Provide(echoapi.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
