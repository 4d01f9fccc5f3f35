package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core/attendance"
)

const attendanceColumns = `id, student_id, date, status, notes`

type attendanceRow struct {
	ID        int         `db:"id"`
	StudentID int         `db:"student_id"`
	Date      sqlDate     `db:"date"`
	Status    string      `db:"status"`
	Notes     null.String `db:"notes"`
}

func toAttendanceRow(r attendance.Record) attendanceRow {
	return attendanceRow{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      sqlDate(r.Date),
		Status:    string(r.Status),
		Notes:     null.NewString(r.Notes, r.Notes != ""),
	}
}

func (r attendanceRow) record() attendance.Record {
	return attendance.Record{
		ID:        r.ID,
		StudentID: r.StudentID,
		Date:      r.Date.Time(),
		Status:    attendance.Status(r.Status),
		Notes:     r.Notes.String,
	}
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) QueryAllRecords(ctx context.Context) ([]attendance.Record, error) {
	var rows []attendanceRow
	if err := repo.db.SelectContext(ctx, &rows, `SELECT `+attendanceColumns+` FROM attendance_records ORDER BY id`); err != nil {
		return nil, err
	}
	records := make([]attendance.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

func (repo *attendanceRepository) GetRecordByID(ctx context.Context, id int) (attendance.Record, error) {
	var row attendanceRow
	if err := get(ctx, repo.db, &row, attendance.Entity, `SELECT `+attendanceColumns+` FROM attendance_records WHERE id = ?`, id); err != nil {
		return attendance.Record{}, err
	}
	return row.record(), nil
}

func (repo *attendanceRepository) CreateRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	id, err := insert(ctx, repo.db, `
		INSERT INTO attendance_records (student_id, date, status, notes)
		VALUES (:student_id, :date, :status, :notes)
		RETURNING id`, toAttendanceRow(r))
	if err != nil {
		return attendance.Record{}, err
	}
	r.ID = id
	return r, nil
}

func (repo *attendanceRepository) UpdateRecord(ctx context.Context, r attendance.Record) (attendance.Record, error) {
	err := update(ctx, repo.db, attendance.Entity, r.ID, `
		UPDATE attendance_records SET
			student_id = :student_id, date = :date, status = :status, notes = :notes
		WHERE id = :id`, toAttendanceRow(r))
	if err != nil {
		return attendance.Record{}, err
	}
	return r, nil
}

func (repo *attendanceRepository) DeleteRecord(ctx context.Context, id int) (bool, error) {
	return remove(ctx, repo.db, attendance.Entity, "attendance_records", id)
}
