package dummydb

import (
	"context"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
)

type assignmentRepository struct {
	db *table[assignment.Assignment]
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment}
}

func (repo *assignmentRepository) QueryAllAssignments(_ context.Context) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.db.all(), nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id int) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.rows[id]; ok {
		return a, nil
	}
	return assignment.Assignment{}, core.NewNotFoundError(assignment.Entity, id)
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	a.ID = repo.db.nextID()
	repo.db.rows[a.ID] = a
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[a.ID]; !ok {
		return assignment.Assignment{}, core.NewNotFoundError(assignment.Entity, a.ID)
	}
	repo.db.rows[a.ID] = a
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(_ context.Context, id int) (bool, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.rows[id]; !ok {
		return false, core.NewNotFoundError(assignment.Entity, id)
	}
	delete(repo.db.rows, id)
	return true, nil
}
