package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core/student"
)

const studentColumns = `id, first_name, last_name, email, phone, date_of_birth, grade_level, academic_year, enrollment_date, status`

type studentRow struct {
	ID             int     `db:"id"`
	FirstName      string  `db:"first_name"`
	LastName       string  `db:"last_name"`
	Email          string  `db:"email"`
	Phone          string  `db:"phone"`
	DateOfBirth    sqlDate `db:"date_of_birth"`
	GradeLevel     string  `db:"grade_level"`
	AcademicYear   string  `db:"academic_year"`
	EnrollmentDate sqlDate `db:"enrollment_date"`
	Status         string  `db:"status"`
}

func toStudentRow(s student.Student) studentRow {
	return studentRow{
		ID:             s.ID,
		FirstName:      s.FirstName,
		LastName:       s.LastName,
		Email:          s.Email,
		Phone:          s.Phone,
		DateOfBirth:    sqlDate(s.DateOfBirth),
		GradeLevel:     s.GradeLevel,
		AcademicYear:   s.AcademicYear,
		EnrollmentDate: sqlDate(s.EnrollmentDate),
		Status:         string(s.Status),
	}
}

func (r studentRow) student() student.Student {
	return student.Student{
		ID:             r.ID,
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		DateOfBirth:    r.DateOfBirth.Time(),
		GradeLevel:     r.GradeLevel,
		AcademicYear:   r.AcademicYear,
		EnrollmentDate: r.EnrollmentDate.Time(),
		Status:         student.Status(r.Status),
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	var rows []studentRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+studentColumns+` FROM students ORDER BY id`); err != nil {
		return nil, err
	}
	students := make([]student.Student, 0, len(rows))
	for _, r := range rows {
		students = append(students, r.student())
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id int) (student.Student, error) {
	var row studentRow
	if err := get(ctx, repo.db, &row, student.Entity, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id); err != nil {
		return student.Student{}, err
	}
	return row.student(), nil
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO students (first_name, last_name, email, phone, date_of_birth, grade_level, academic_year, enrollment_date, status)
		VALUES (:first_name, :last_name, :email, :phone, :date_of_birth, :grade_level, :academic_year, :enrollment_date, :status)
		RETURNING id`, toStudentRow(s))
	if err != nil {
		return student.Student{}, err
	}
	s.ID = id
	return s, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	err := update(ctx, repo.db, student.Entity, s.ID, `
		UPDATE students SET
			first_name = :first_name, last_name = :last_name, email = :email, phone = :phone,
			date_of_birth = :date_of_birth, grade_level = :grade_level, academic_year = :academic_year,
			enrollment_date = :enrollment_date, status = :status
		WHERE id = :id`, toStudentRow(s))
	if err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id int) (bool, error) {
	return remove(ctx, repo.db, student.Entity, "students", id)
}
