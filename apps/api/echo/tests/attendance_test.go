package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/darasa/apps/api/echo"
	"github.com/trezcool/darasa/core/attendance"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/tests"
)

func cellBody(studentID int, date, status string) []byte {
	return []byte(fmt.Sprintf(`{"student_id": %d, "date": %q, "status": %q}`, studentID, date, status))
}

func Test_attendanceApi_mark(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.studentRepo, "Amani", "Juma", student.StatusActive)

	steps := []struct {
		name       string
		status     string
		wantAction string
		wantStatus string
		wantCalls  []testutil.Call
	}{
		{"clear an empty cell", "unmarked", "none", "unmarked", []testutil.Call{{Op: "query"}}},
		{"first mark creates", "present", "create", "present", []testutil.Call{{Op: "query"}, {Op: "create"}}},
		{"same status is a no-op", "Present", "none", "present", []testutil.Call{{Op: "query"}}},
		{"new status updates", "late", "update", "late", []testutil.Call{{Op: "query"}, {Op: "update", ID: 1}}},
		{"unmarked deletes", "unmarked", "delete", "unmarked", []testutil.Call{{Op: "query"}, {Op: "delete", ID: 1}}},
	}
	for _, st := range steps {
		t.Run(st.name, func(t *testing.T) {
			before := len(e.attendance.Calls())
			rec := e.do(http.MethodPut, "/v1/attendance/cell", cellBody(s.ID, "2024-03-04", st.status))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			var res AttendanceCellResponse
			decode(t, rec, &res)
			assert.Equal(t, st.wantAction, res.Action)
			assert.Equal(t, st.wantStatus, res.Status)
			assert.Equal(t, st.wantCalls, e.attendance.Calls()[before:])
		})
	}

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		tests := []httpTest{
			{name: "bad status", body: cellBody(s.ID, "2024-03-04", "sick"), wantCode: http.StatusBadRequest},
			{name: "bad date", body: cellBody(s.ID, "4 March", "present"), wantCode: http.StatusBadRequest},
			{name: "no date", body: cellBody(s.ID, "", "present"), wantCode: http.StatusBadRequest},
			{name: "no student", body: cellBody(0, "2024-03-04", "present"), wantCode: http.StatusBadRequest},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				before := len(e.attendance.Calls())
				rec := e.do(http.MethodPut, "/v1/attendance/cell", tt.body)
				checkCodeAndData(t, tt, rec)
				assert.Len(t, e.attendance.Calls(), before)
			})
		}
	})

	t.Run("store failure", func(t *testing.T) {
		e.attendance.Fail = func(op string, _ attendance.Record) error {
			if op == "create" {
				return errors.New("connection reset")
			}
			return nil
		}
		defer func() { e.attendance.Fail = nil }()

		rec := e.do(http.MethodPut, "/v1/attendance/cell", cellBody(s.ID, "2024-03-05", "absent"))
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusServiceUnavailable,
			wantData: marshalObj(t, httpErr{Error: "the store is unavailable, please try again"}),
		}, rec)

		rec = e.do(http.MethodGet, "/v1/attendance?date=2024-03-05")
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshalList(t)}, rec)
	})
}

func Test_attendanceApi_cycle(t *testing.T) {
	e := setup(t)
	s := testutil.CreateStudent(t, e.studentRepo, "Amani", "Juma", student.StatusActive)
	body := []byte(fmt.Sprintf(`{"student_id": %d, "date": "2024-03-04"}`, s.ID))

	for _, want := range []string{"present", "late", "absent", "unmarked", "present"} {
		rec := e.do(http.MethodPost, "/v1/attendance/cycle", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var res AttendanceCellResponse
		decode(t, rec, &res)
		assert.Equal(t, want, res.Status)
	}
}

func Test_attendanceApi_markAllPresent(t *testing.T) {
	e := setup(t)
	day := testutil.Day(2024, time.March, 4)

	var ids []int
	for i := 0; i < 10; i++ {
		s := testutil.CreateStudent(t, e.studentRepo, fmt.Sprintf("S%02d", i), "Test", student.StatusActive)
		ids = append(ids, s.ID)
	}
	testutil.CreateStudent(t, e.studentRepo, "Gone", "Away", student.StatusInactive)
	for _, id := range ids[:3] {
		testutil.CreateRecord(t, e.attendance.Repo, id, day, attendance.StatusAbsent)
	}

	t.Run("partial failure", func(t *testing.T) {
		e.attendance.Fail = func(op string, r attendance.Record) error {
			if op == "create" && r.StudentID == ids[5] {
				return errors.New("timeout")
			}
			return nil
		}
		defer func() { e.attendance.Fail = nil }()

		rec := e.do(http.MethodPost, "/v1/attendance/mark-all-present", []byte(`{"date": "2024-03-04"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res BatchResponse
		decode(t, rec, &res)
		assert.False(t, res.Success)
		assert.Equal(t, 6, res.Created)
		assert.Equal(t, 3, res.Updated)
		require.Len(t, res.Failures, 1)
		assert.Equal(t, ids[5], res.Failures[0].StudentID)
	})

	t.Run("retry completes the cohort", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/v1/attendance/mark-all-present", []byte(`{"date": "2024-03-04"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var res BatchResponse
		decode(t, rec, &res)
		assert.True(t, res.Success)
		assert.Equal(t, 1, res.Created)
		assert.Equal(t, 9, res.Unchanged)
		assert.Empty(t, res.Failures)

		rec = e.do(http.MethodGet, "/v1/attendance?date=2024-03-04")
		var records []attendance.Record
		decode(t, rec, &records)
		assert.Len(t, records, 10)
		for _, r := range records {
			assert.Equal(t, attendance.StatusPresent, r.Status)
		}
	})

	t.Run("explicit students", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/v1/attendance/mark-all-present", []byte(`{"date": "2024-03-05", "student_ids": [1, 2]}`))
		var res BatchResponse
		decode(t, rec, &res)
		assert.Equal(t, 2, res.Created)

		rec = e.do(http.MethodGet, "/v1/attendance?month=2024-03")
		var records []attendance.Record
		decode(t, rec, &records)
		assert.Len(t, records, 12)
	})
}
