package student

import (
	"context"
	"sort"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

const Entity = "student"

type (
	// Repository is the Entity Store for students.
	// GetStudentByID, UpdateStudent and DeleteStudent fail with a *core.NotFoundError for unknown ids.
	Repository interface {
		QueryAllStudents(ctx context.Context) ([]Student, error)
		GetStudentByID(ctx context.Context, id int) (Student, error)
		CreateStudent(ctx context.Context, s Student) (Student, error)
		UpdateStudent(ctx context.Context, s Student) (Student, error)
		DeleteStudent(ctx context.Context, id int) (bool, error)
	}

	Service struct {
		repo    Repository
		nowFunc func() time.Time
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, nowFunc: time.Now}
}

// Create enrolls a new student; the enrollment date is today.
func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	if err := ns.Validate(); err != nil {
		return Student{}, err
	}
	s := Student{
		FirstName:      ns.FirstName,
		LastName:       ns.LastName,
		Email:          ns.Email,
		Phone:          ns.Phone,
		DateOfBirth:    calendar.Day(ns.DateOfBirth),
		GradeLevel:     ns.GradeLevel,
		AcademicYear:   ns.AcademicYear,
		EnrollmentDate: calendar.Day(svc.nowFunc()),
		Status:         ns.Status,
	}
	created, err := svc.repo.CreateStudent(ctx, s)
	return created, core.NewStoreError("creating student", err)
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	students, err := svc.repo.QueryAllStudents(ctx)
	if err != nil {
		return nil, core.NewStoreError("querying students", err)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

// QueryActive returns the cohort ordered by id.
func (svc *Service) QueryActive(ctx context.Context) ([]Student, error) {
	students, err := svc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	return ActiveOnly(students), nil
}

func (svc *Service) Filter(ctx context.Context, filter QueryFilter) ([]Student, error) {
	students, err := svc.QueryAll(ctx)
	if err != nil {
		return nil, err
	}
	filter.Clean()
	if filter.IsEmpty() {
		return students, nil
	}
	return Filter(students, filter), nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Student, error) {
	s, err := svc.repo.GetStudentByID(ctx, id)
	return s, core.NewStoreError("getting student", err)
}

// Update merges the set fields of us into the stored student.
func (svc *Service) Update(ctx context.Context, id int, us UpdateStudent) (Student, error) {
	if err := us.Validate(); err != nil {
		return Student{}, err
	}
	orig, err := svc.GetByID(ctx, id)
	if err != nil {
		return Student{}, err
	}
	s := us.apply(orig)
	s.DateOfBirth = calendar.Day(s.DateOfBirth)
	updated, err := svc.repo.UpdateStudent(ctx, s)
	return updated, core.NewStoreError("updating student", err)
}

func (svc *Service) SetStatus(ctx context.Context, id int, status Status) (Student, error) {
	return svc.Update(ctx, id, UpdateStudent{Status: status})
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	_, err := svc.repo.DeleteStudent(ctx, id)
	return core.NewStoreError("deleting student", err)
}

// Recent returns the n most recently enrolled students.
func Recent(students []Student, n int) []Student {
	sorted := make([]Student, len(students))
	copy(sorted, students)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EnrollmentDate.After(sorted[j].EnrollmentDate)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
