package student_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/student"
	"github.com/trezcool/darasa/storage/database/dummy"
	"github.com/trezcool/darasa/tests"
)

func setup(t *testing.T) (*student.Service, student.Repository) {
	t.Helper()
	db, err := dummydb.Open()
	require.NoError(t, err)
	repo := dummydb.NewStudentRepository(db)
	return student.NewService(repo), repo
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	valid := student.NewStudent{
		FirstName:    "  Amani ",
		LastName:     "Juma",
		Email:        "Amani.Juma@Example.com",
		Phone:        "+255 700 000 001",
		DateOfBirth:  time.Date(2010, time.May, 4, 15, 30, 0, 0, time.UTC),
		GradeLevel:   "7",
		AcademicYear: "2024",
	}

	s, err := svc.Create(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, 1, s.ID)
	assert.Equal(t, "Amani", s.FirstName)
	assert.Equal(t, "amani.juma@example.com", s.Email)
	assert.Equal(t, student.StatusActive, s.Status)
	assert.Equal(t, testutil.Day(2010, time.May, 4), s.DateOfBirth)
	assert.Equal(t, "AJ", s.Initials())

	tests := []struct {
		name       string
		edit       func(ns *student.NewStudent)
		wantFields []string
	}{
		{name: "missing first name", edit: func(ns *student.NewStudent) { ns.FirstName = " " }, wantFields: []string{"first_name"}},
		{name: "bad email", edit: func(ns *student.NewStudent) { ns.Email = "amani" }, wantFields: []string{"email"}},
		{name: "bad status", edit: func(ns *student.NewStudent) { ns.Status = "Graduated" }, wantFields: []string{"status"}},
		{name: "no birth date", edit: func(ns *student.NewStudent) { ns.DateOfBirth = time.Time{} }, wantFields: []string{"date_of_birth"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := valid
			tt.edit(&ns)
			_, err := svc.Create(ctx, ns)
			require.True(t, core.IsValidationError(err), "err = %v", err)

			vErr := err.(*core.ValidationError)
			fields := make([]string, 0, len(vErr.Fields))
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestService_Filter(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()

	amani := testutil.CreateStudent(t, repo, "Amani", "Juma", student.StatusActive)
	baraka := testutil.CreateStudent(t, repo, "Baraka", "Mushi", student.StatusInactive)
	neema := testutil.CreateStudent(t, repo, "Neema", "Juma", student.StatusOnHold)

	tests := []struct {
		name   string
		filter student.QueryFilter
		want   []student.Student
	}{
		{name: "empty", want: []student.Student{amani, baraka, neema}},
		{name: "blank search", filter: student.QueryFilter{Search: "   "}, want: []student.Student{amani, baraka, neema}},
		{name: "last name", filter: student.QueryFilter{Search: "JUMA"}, want: []student.Student{amani, neema}},
		{name: "email", filter: student.QueryFilter{Search: "baraka.mushi@"}, want: []student.Student{baraka}},
		{name: "phone", filter: student.QueryFilter{Search: "+255 700"}, want: []student.Student{amani, baraka, neema}},
		{name: "status", filter: student.QueryFilter{Statuses: []student.Status{student.StatusOnHold}}, want: []student.Student{neema}},
		{name: "search and status", filter: student.QueryFilter{Search: "juma", Statuses: []student.Status{student.StatusInactive}}, want: []student.Student{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.Filter(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	active, err := svc.QueryActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []student.Student{amani}, active)
}

func TestService_Update(t *testing.T) {
	svc, repo := setup(t)
	ctx := context.Background()
	orig := testutil.CreateStudent(t, repo, "Amani", "Juma", student.StatusActive)

	s, err := svc.SetStatus(ctx, orig.ID, student.StatusInactive)
	require.NoError(t, err)
	want := orig
	want.Status = student.StatusInactive
	assert.Equal(t, want, s)

	_, err = svc.Update(ctx, 42, student.UpdateStudent{GradeLevel: "8"})
	assert.True(t, core.IsNotFound(err))

	_, err = svc.Update(ctx, orig.ID, student.UpdateStudent{Status: "Expelled"})
	assert.True(t, core.IsValidationError(err))

	require.NoError(t, svc.Delete(ctx, orig.ID))
	assert.True(t, core.IsNotFound(svc.Delete(ctx, orig.ID)))
}

func TestRecent(t *testing.T) {
	day := func(d int) time.Time { return testutil.Day(2024, time.January, d) }
	var students []student.Student
	for i, d := range []int{3, 9, 1, 7, 5, 8, 2} {
		students = append(students, student.Student{ID: i + 1, EnrollmentDate: day(d)})
	}

	got := student.Recent(students, 5)
	ids := make([]int, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{2, 6, 4, 5, 1}, ids)
	assert.Len(t, student.Recent(students[:2], 5), 2)
	assert.Equal(t, 1, students[0].ID, "input left untouched")
}
