package dummydb

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
)

type studentRepository struct {
	db *table[student.Student]
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db.student}
}

func (repo *studentRepository) QueryAllStudents(_ context.Context) ([]student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.all(), nil
}

func (repo *studentRepository) GetStudentByID(_ context.Context, id int) (student.Student, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if s, ok := repo.db.rows[id]; ok {
		return s, nil
	}
	return student.Student{}, core.NewNotFoundError(student.Entity, id)
}

func (repo *studentRepository) CreateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	s.ID = repo.db.nextID()
	repo.db.rows[s.ID] = s
	return s, nil
}

func (repo *studentRepository) UpdateStudent(_ context.Context, s student.Student) (student.Student, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[s.ID]; !ok {
		return student.Student{}, core.NewNotFoundError(student.Entity, s.ID)
	}
	repo.db.rows[s.ID] = s
	return s, nil
}

func (repo *studentRepository) DeleteStudent(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return false, core.NewNotFoundError(student.Entity, id)
	}
	delete(repo.db.rows, id)
	return true, nil
}
