package tests

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/tests"
)

func Test_studentApi_query(t *testing.T) {
	e := setup(t)

	path := func(search string, statuses ...student.Status) string {
		v := make(url.Values)
		if search != "" {
			v.Add("search", search)
		}
		for _, s := range statuses {
			v.Add("status", string(s))
		}
		return "/v1/students?" + v.Encode()
	}

	amani := testutil.CreateStudent(t, e.studentRepo, "Amani", "Juma", student.StatusActive)
	baraka := testutil.CreateStudent(t, e.studentRepo, "Baraka", "Mushi", student.StatusInactive)
	neema := testutil.CreateStudent(t, e.studentRepo, "Neema", "Juma", student.StatusOnHold)

	tests := []httpTest{
		{name: "all", path: path(""), wantData: marshalList(t, amani, baraka, neema)},
		{name: "search last name", path: path("juma"), wantData: marshalList(t, amani, neema)},
		{name: "search first name", path: path("BARAKA"), wantData: marshalList(t, baraka)},
		{name: "status", path: path("", student.StatusActive), wantData: marshalList(t, amani)},
		{name: "statuses", path: path("", student.StatusActive, student.StatusOnHold), wantData: marshalList(t, amani, neema)},
		{name: "search and status", path: path("juma", student.StatusOnHold), wantData: marshalList(t, neema)},
		{name: "no match", path: path("zzz"), wantData: marshalList(t)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.wantCode = http.StatusOK
			rec := e.do(http.MethodGet, tt.path)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_create(t *testing.T) {
	e := setup(t)

	t.Run("valid", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/v1/students", []byte(`{
			"first_name": " Amani ",
			"last_name": "Juma",
			"email": "AMANI@example.com",
			"phone": "+255 700 000 001",
			"date_of_birth": "2010-05-04",
			"grade_level": "7",
			"academic_year": "2024"
		}`))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var s student.Student
		decode(t, rec, &s)
		assert.Equal(t, "Amani", s.FirstName)
		assert.Equal(t, "amani@example.com", s.Email)
		assert.Equal(t, student.StatusActive, s.Status)
		assert.Equal(t, testutil.Day(2010, time.May, 4), s.DateOfBirth)
		assert.False(t, s.EnrollmentDate.IsZero())
	})

	tests := []httpTest{
		{
			name:     "missing fields",
			body:     []byte(`{"first_name": "Amani"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad status",
			body:     []byte(`{"first_name": "A", "last_name": "B", "email": "a@b.cd", "phone": "1", "date_of_birth": "2010-05-04", "grade_level": "7", "academic_year": "2024", "status": "Graduated"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "bad date",
			body:     []byte(`{"first_name": "A", "date_of_birth": "04/05/2010"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(http.MethodPost, "/v1/students", tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("missing fields are reported by name", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/v1/students", []byte(`{"first_name": "Amani"}`))
		var fields map[string]string
		decode(t, rec, &fields)
		assert.Equal(t, "this field is required", fields["last_name"])
		assert.Contains(t, fields, "email")
		assert.NotContains(t, fields, "first_name")
	})
}

func Test_studentApi_detail(t *testing.T) {
	e := setup(t)
	amani := testutil.CreateStudent(t, e.studentRepo, "Amani", "Juma", student.StatusActive)
	notFound := marshalObj(t, httpErr{Error: "not found"})

	t.Run("retrieve", func(t *testing.T) {
		rec := e.do(http.MethodGet, "/v1/students/1")
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshalObj(t, amani)}, rec)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		for _, p := range []string{"/v1/students/99", "/v1/students/abc", "/v1/students/0"} {
			rec := e.do(http.MethodGet, p)
			checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: notFound}, rec)
		}
	})

	t.Run("update keeps unset fields", func(t *testing.T) {
		rec := e.do(http.MethodPut, "/v1/students/1", []byte(`{"status": "OnHold", "grade_level": "8"}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		want := amani
		want.Status = student.StatusOnHold
		want.GradeLevel = "8"
		checkCodeAndData(t, httpTest{wantCode: http.StatusOK, wantData: marshalObj(t, want)}, rec)
	})

	t.Run("update rejects a bad email", func(t *testing.T) {
		rec := e.do(http.MethodPut, "/v1/students/1", []byte(`{"email": "nope"}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := e.do(http.MethodDelete, "/v1/students/1")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = e.do(http.MethodGet, "/v1/students/1")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_assignmentApi(t *testing.T) {
	e := setup(t)

	rec := e.do(http.MethodPost, "/v1/assignments", []byte(`{
		"title": "Fractions",
		"category": "Quiz",
		"total_points": 20,
		"due_date": "2024-03-04"
	}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/v1/assignments", []byte(`{"title": "Essay", "category": "Homework", "total_points": 50, "due_date": "2024-02-01"}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	t.Run("ordered by due date", func(t *testing.T) {
		rec := e.do(http.MethodGet, "/v1/assignments")
		var got []struct {
			ID    int    `json:"id"`
			Title string `json:"title"`
		}
		decode(t, rec, &got)
		require.Len(t, got, 2)
		assert.Equal(t, "Essay", got[0].Title)
		assert.Equal(t, "Fractions", got[1].Title)
	})

	tests := []httpTest{
		{
			name:     "bad category",
			body:     []byte(`{"title": "X", "category": "Exam", "total_points": 10, "due_date": "2024-03-04"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no points",
			body:     []byte(`{"title": "X", "category": "Quiz", "total_points": 0, "due_date": "2024-03-04"}`),
			wantCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := e.do(http.MethodPost, "/v1/assignments", tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}

	t.Run("update and delete", func(t *testing.T) {
		rec := e.do(http.MethodPut, "/v1/assignments/1", []byte(`{"total_points": 25}`))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var a struct {
			Title       string  `json:"title"`
			TotalPoints float64 `json:"total_points"`
		}
		decode(t, rec, &a)
		assert.Equal(t, "Fractions", a.Title)
		assert.Equal(t, 25.0, a.TotalPoints)

		rec = e.do(http.MethodDelete, "/v1/assignments/1")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		rec = e.do(http.MethodGet, "/v1/assignments/1")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("categories", func(t *testing.T) {
		rec := e.do(http.MethodGet, "/v1/assignments/categories")
		checkCodeAndData(t, httpTest{
			wantCode: http.StatusOK,
			wantData: []byte(`["Homework", "Quiz", "Test", "Project", "Participation", "Extra Credit"]`),
		}, rec)
	})
}
