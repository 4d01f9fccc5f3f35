package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/assignment"
)

const assignmentColumns = `id, title, category, total_points, due_date, description`

type assignmentRow struct {
	ID          int         `db:"id"`
	Title       string      `db:"title"`
	Category    string      `db:"category"`
	TotalPoints float64     `db:"total_points"`
	DueDate     sqlDate     `db:"due_date"`
	Description null.String `db:"description"`
}

func toAssignmentRow(a assignment.Assignment) assignmentRow {
	return assignmentRow{
		ID:          a.ID,
		Title:       a.Title,
		Category:    string(a.Category),
		TotalPoints: a.TotalPoints,
		DueDate:     sqlDate(a.DueDate),
		Description: null.NewString(a.Description, a.Description != ""),
	}
}

func (r assignmentRow) assignment() assignment.Assignment {
	return assignment.Assignment{
		ID:          r.ID,
		Title:       r.Title,
		Category:    assignment.Category(r.Category),
		TotalPoints: r.TotalPoints,
		DueDate:     r.DueDate.Time(),
		Description: r.Description.String,
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(db *sqlx.DB) assignment.Repository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) QueryAllAssignments(ctx context.Context) ([]assignment.Assignment, error) {
	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+assignmentColumns+` FROM assignments ORDER BY due_date, id`); err != nil {
		return nil, err
	}
	assignments := make([]assignment.Assignment, 0, len(rows))
	for _, r := range rows {
		assignments = append(assignments, r.assignment())
	}
	return assignments, nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	if err := get(ctx, repo.db, &row, assignment.Entity, `SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id); err != nil {
		return assignment.Assignment{}, err
	}
	return row.assignment(), nil
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO assignments (title, category, total_points, due_date, description)
		VALUES (:title, :category, :total_points, :due_date, :description)
		RETURNING id`, toAssignmentRow(a))
	if err != nil {
		return assignment.Assignment{}, err
	}
	a.ID = id
	return a, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	err := update(ctx, repo.db, assignment.Entity, a.ID, `
		UPDATE assignments SET
			title = :title, category = :category, total_points = :total_points,
			due_date = :due_date, description = :description
		WHERE id = :id`, toAssignmentRow(a))
	if err != nil {
		return assignment.Assignment{}, err
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) (bool, error) {
	return remove(ctx, repo.db, assignment.Entity, "assignments", id)
}
