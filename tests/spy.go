package testutil

import (
	"context"
	"sync"

	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/grade"
)

// Call is one store call seen by a spy.
type Call struct {
	Op string // query | get | create | update | delete
	ID int
}

type spy struct {
	mu    sync.Mutex
	calls []Call
}

func (s *spy) record(op string, id int) {
	s.mu.Lock()
	s.calls = append(s.calls, Call{Op: op, ID: id})
	s.mu.Unlock()
}

// Calls returns the calls seen so far, in order.
func (s *spy) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	calls := make([]Call, len(s.calls))
	copy(calls, s.calls)
	return calls
}

// Count returns the number of calls of op.
func (s *spy) Count(op string) int {
	var n int
	for _, c := range s.Calls() {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Mutations returns the number of create, update and delete calls.
func (s *spy) Mutations() int {
	return s.Count("create") + s.Count("update") + s.Count("delete")
}

// AttendanceSpy wraps an attendance.Repository, counting calls and failing the ones Fail
// returns an error for.
type AttendanceSpy struct {
	spy
	Repo attendance.Repository
	Fail func(op string, r attendance.Record) error
}

var _ attendance.Repository = (*AttendanceSpy)(nil) // interface compliance check

func (s *AttendanceSpy) fail(op string, r attendance.Record) error {
	s.record(op, r.ID)
	if s.Fail == nil {
		return nil
	}
	return s.Fail(op, r)
}

func (s *AttendanceSpy) QueryAllRecords(ctx context.Context) ([]attendance.Record, error) {
	if err := s.fail("query", attendance.Record{}); err != nil {
		return nil, err
	}
	return s.Repo.QueryAllRecords(ctx)
}

func (s *AttendanceSpy) GetRecordByID(ctx context.Context, id int) (attendance.Record, error) {
	if err := s.fail("get", attendance.Record{ID: id}); err != nil {
		return attendance.Record{}, err
	}
	return s.Repo.GetRecordByID(ctx, id)
}

func (s *AttendanceSpy) CreateRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	if err := s.fail("create", r); err != nil {
		return attendance.Record{}, err
	}
	return s.Repo.CreateRecord(ctx, r)
}

func (s *AttendanceSpy) UpdateRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	if err := s.fail("update", r); err != nil {
		return attendance.Record{}, err
	}
	return s.Repo.UpdateRecord(ctx, r)
}

func (s *AttendanceSpy) DeleteRecord(ctx context.Context, id int) (bool, error) {
	if err := s.fail("delete", attendance.Record{ID: id}); err != nil {
		return false, err
	}
	return s.Repo.DeleteRecord(ctx, id)
}

// GradeSpy wraps a grade.Repository, counting calls and failing the ones Fail returns an
// error for.
type GradeSpy struct {
	spy
	Repo grade.Repository
	Fail func(op string, g grade.Grade) error
}

var _ grade.Repository = (*GradeSpy)(nil) // interface compliance check

func (s *GradeSpy) fail(op string, g grade.Grade) error {
	s.record(op, g.ID)
	if s.Fail == nil {
		return nil
	}
	return s.Fail(op, g)
}

func (s *GradeSpy) QueryAllGrades(ctx context.Context) ([]grade.Grade, error) {
	if err := s.fail("query", grade.Grade{}); err != nil {
		return nil, err
	}
	return s.Repo.QueryAllGrades(ctx)
}

func (s *GradeSpy) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	if err := s.fail("get", grade.Grade{ID: id}); err != nil {
		return grade.Grade{}, err
	}
	return s.Repo.GetGradeByID(ctx, id)
}

func (s *GradeSpy) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	if err := s.fail("create", g); err != nil {
		return grade.Grade{}, err
	}
	return s.Repo.CreateGrade(ctx, g)
}

func (s *GradeSpy) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	if err := s.fail("update", g); err != nil {
		return grade.Grade{}, err
	}
	return s.Repo.UpdateGrade(ctx, g)
}

func (s *GradeSpy) DeleteGrade(ctx context.Context, id int) (bool, error) {
	if err := s.fail("delete", grade.Grade{ID: id}); err != nil {
		return false, err
	}
	return s.Repo.DeleteGrade(ctx, id)
}
