package dummydb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/calendar"
)

type attendanceRepository struct {
	db *table[attendance.Record]
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db.attendance}
}

func (repo *attendanceRepository) QueryAllRecords(_ context.Context) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.all(), nil
}

func (repo *attendanceRepository) GetRecordByID(_ context.Context, id int) (attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if r, ok := repo.db.rows[id]; ok {
		return r, nil
	}
	return attendance.Record{}, core.NewNotFoundError(attendance.Entity, id)
}

// checkUnique enforces one record per (student, day). The caller holds the lock.
func (repo *attendanceRepository) checkUnique(r attendance.Record) error {
	_, dup := repo.db.findOther(r.ID, func(other attendance.Record) bool {
		return other.StudentID == r.StudentID && calendar.SameDay(other.Date, r.Date)
	})
	if dup {
		return errors.Wrapf(ErrDuplicateKey, "attendance record (student %d, %s)", r.StudentID, r.Date.Format(calendar.DayLayout))
	}
	return nil
}

func (repo *attendanceRepository) CreateRecord(_ context.Context, r attendance.Record) (attendance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	r.ID = 0
	if err := repo.checkUnique(r); err != nil {
		return attendance.Record{}, err
	}
	r.ID = repo.db.nextID()
	repo.db.rows[r.ID] = r
	return r, nil
}

func (repo *attendanceRepository) UpdateRecord(_ context.Context, r attendance.Record) (attendance.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[r.ID]; !ok {
		return attendance.Record{}, core.NewNotFoundError(attendance.Entity, r.ID)
	}
	if err := repo.checkUnique(r); err != nil {
		return attendance.Record{}, err
	}
	repo.db.rows[r.ID] = r
	return r, nil
}

func (repo *attendanceRepository) DeleteRecord(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return false, core.NewNotFoundError(attendance.Entity, id)
	}
	delete(repo.db.rows, id)
	return true, nil
}
