package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/grade"
)

const gradeColumns = `id, student_id, assignment_id, score, submitted_date, comments`

type gradeRow struct {
	ID            int          `db:"id"`
	StudentID     int          `db:"student_id"`
	AssignmentID  int          `db:"assignment_id"`
	Score         null.Float64 `db:"score"`
	SubmittedDate sqlDate      `db:"submitted_date"`
	Comments      null.String  `db:"comments"`
}

func toGradeRow(g grade.Grade) gradeRow {
	return gradeRow{
		ID:            g.ID,
		StudentID:     g.StudentID,
		AssignmentID:  g.AssignmentID,
		Score:         null.Float64FromPtr(g.Score),
		SubmittedDate: sqlDate(g.SubmittedDate),
		Comments:      null.NewString(g.Comments, g.Comments != ""),
	}
}

func (r gradeRow) grade() grade.Grade {
	return grade.Grade{
		ID:            r.ID,
		StudentID:     r.StudentID,
		AssignmentID:  r.AssignmentID,
		Score:         r.Score.Ptr(),
		SubmittedDate: r.SubmittedDate.Time(),
		Comments:      r.Comments.String,
	}
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) grade.Repository {
	return &gradeRepository{db: db}
}

func (repo *gradeRepository) QueryAllGrades(ctx context.Context) ([]grade.Grade, error) {
	var rows []gradeRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+gradeColumns+` FROM grades ORDER BY id`); err != nil {
		return nil, err
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.grade())
	}
	return grades, nil
}

func (repo *gradeRepository) GetGradeByID(ctx context.Context, id int) (grade.Grade, error) {
	var row gradeRow
	if err := get(ctx, repo.db, &row, grade.Entity, `SELECT `+gradeColumns+` FROM grades WHERE id = ?`, id); err != nil {
		return grade.Grade{}, err
	}
	return row.grade(), nil
}

func (repo *gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO grades (student_id, assignment_id, score, submitted_date, comments)
		VALUES (:student_id, :assignment_id, :score, :submitted_date, :comments)
		RETURNING id`, toGradeRow(g))
	if err != nil {
		return grade.Grade{}, err
	}
	g.ID = id
	return g, nil
}

func (repo *gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	err := update(ctx, repo.db, grade.Entity, g.ID, `
		UPDATE grades SET
			student_id = :student_id, assignment_id = :assignment_id, score = :score,
			submitted_date = :submitted_date, comments = :comments
		WHERE id = :id`, toGradeRow(g))
	if err != nil {
		return grade.Grade{}, err
	}
	return g, nil
}

func (repo *gradeRepository) DeleteGrade(ctx context.Context, id int) (bool, error) {
	return remove(ctx, repo.db, grade.Entity, "grades", id)
}
