// Package storage opens the Entity Store selected by the configuration.
package storage

import (
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/storage/database"
	"github.com/trezcool/darasa/storage/database/dummy"
	"github.com/trezcool/darasa/storage/database/sqlx"
)

// Stores holds one repository per entity, all backed by the same database.
type Stores struct {
	DB          *sqlx.DB // nil for the in-memory engine
	Students    student.Repository
	Assignments assignment.Repository
	Grades      grade.Repository
	Attendance  attendance.Repository
}

// Open sets up the configured engine. SQL databases are created if needed and migrated up.
func Open(conf *core.Config) (*Stores, error) {
	if conf.Database.Engine == database.EngineMemory {
		db, err := dummydb.Open()
		if err != nil {
			return nil, err
		}
		return &Stores{
			Students:    dummydb.NewStudentRepository(db),
			Assignments: dummydb.NewAssignmentRepository(db),
			Grades:      dummydb.NewGradeRepository(db),
			Attendance:  dummydb.NewAttendanceRepository(db),
		}, nil
	}

	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}
	if err = database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Stores{
		DB:          db,
		Students:    sqlxrepos.NewStudentRepository(db),
		Assignments: sqlxrepos.NewAssignmentRepository(db),
		Grades:      sqlxrepos.NewGradeRepository(db),
		Attendance:  sqlxrepos.NewAttendanceRepository(db),
	}, nil
}

func (s *Stores) Close() error {
	if s.DB == nil {
		return nil
	}
	return s.DB.Close()
}
