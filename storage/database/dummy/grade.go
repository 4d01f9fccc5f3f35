package dummydb

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/grade"
)

type gradeRepository struct {
	db *table[grade.Grade]
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grade}
}

// copyScore keeps callers from mutating stored scores through the shared pointer.
func copyScore(g grade.Grade) grade.Grade {
	if g.Score != nil {
		v := *g.Score
		g.Score = &v
	}
	return g
}

// checkUnique enforces one grade per (student, assignment). The caller holds the lock.
func (repo *gradeRepository) checkUnique(g grade.Grade) error {
	_, dup := repo.db.findOther(g.ID, func(other grade.Grade) bool {
		return other.StudentID == g.StudentID && other.AssignmentID == g.AssignmentID
	})
	if dup {
		return errors.Wrapf(ErrDuplicateKey, "grade (student %d, assignment %d)", g.StudentID, g.AssignmentID)
	}
	return nil
}

func (repo *gradeRepository) QueryAllGrades(_ context.Context) ([]grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	grades := repo.db.all()
	for i := range grades {
		grades[i] = copyScore(grades[i])
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(_ context.Context, id int) (grade.Grade, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if g, ok := repo.db.rows[id]; ok {
		return copyScore(g), nil
	}
	return grade.Grade{}, core.NewNotFoundError(grade.Entity, id)
}

func (repo *gradeRepository) CreateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	g.ID = 0
	if err := repo.checkUnique(g); err != nil {
		return grade.Grade{}, err
	}
	g = copyScore(g)
	g.ID = repo.db.nextID()
	repo.db.rows[g.ID] = g
	return copyScore(g), nil
}

func (repo *gradeRepository) UpdateGrade(_ context.Context, g grade.Grade) (grade.Grade, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[g.ID]; !ok {
		return grade.Grade{}, core.NewNotFoundError(grade.Entity, g.ID)
	}
	if err := repo.checkUnique(g); err != nil {
		return grade.Grade{}, err
	}
	g = copyScore(g)
	repo.db.rows[g.ID] = g
	return copyScore(g), nil
}

func (repo *gradeRepository) DeleteGrade(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return false, core.NewNotFoundError(grade.Entity, id)
	}
	delete(repo.db.rows, id)
	return true, nil
}
