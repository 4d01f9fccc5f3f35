package student

import (
	"strings"
	"time"

	"github.com/trezcool/darasa/core"
)

type Status string

// Statuses
const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusOnHold   Status = "OnHold"
)

var Statuses = []Status{StatusActive, StatusInactive, StatusOnHold}

func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

type Student struct {
	ID             int       `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	GradeLevel     string    `json:"grade_level"`
	AcademicYear   string    `json:"academic_year"`
	EnrollmentDate time.Time `json:"enrollment_date"`
	Status         Status    `json:"status"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s Student) Initials() string {
	var b strings.Builder
	for _, n := range []string{s.FirstName, s.LastName} {
		if r := []rune(strings.TrimSpace(n)); len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.ToUpper(b.String())
}

func (s Student) IsActive() bool { return s.Status == StatusActive }

// NewStudent contains information needed to enroll a new Student.
type NewStudent struct {
	FirstName    string    `json:"first_name" validate:"required"`
	LastName     string    `json:"last_name" validate:"required"`
	Email        string    `json:"email" validate:"required,email"`
	Phone        string    `json:"phone" validate:"required"`
	DateOfBirth  time.Time `json:"date_of_birth" validate:"required"`
	GradeLevel   string    `json:"grade_level" validate:"required"`
	AcademicYear string    `json:"academic_year" validate:"required"`
	Status       Status    `json:"status" validate:"omitempty,student_status"`
}

func (ns *NewStudent) Validate() error {
	ns.FirstName = core.CleanString(ns.FirstName)
	ns.LastName = core.CleanString(ns.LastName)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.Phone = core.CleanString(ns.Phone)
	ns.GradeLevel = core.CleanString(ns.GradeLevel)
	ns.AcademicYear = core.CleanString(ns.AcademicYear)
	if ns.Status == "" {
		ns.Status = StatusActive
	}
	return core.ValidateStruct(ns)
}

// UpdateStudent defines what information may be provided to modify an existing Student.
// Empty fields keep their current value.
type UpdateStudent struct {
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email" validate:"omitempty,email"`
	Phone        string    `json:"phone"`
	DateOfBirth  time.Time `json:"date_of_birth"`
	GradeLevel   string    `json:"grade_level"`
	AcademicYear string    `json:"academic_year"`
	Status       Status    `json:"status" validate:"omitempty,student_status"`
}

func (us *UpdateStudent) Validate() error {
	us.FirstName = core.CleanString(us.FirstName)
	us.LastName = core.CleanString(us.LastName)
	us.Email = core.CleanString(us.Email, true /* lower */)
	us.Phone = core.CleanString(us.Phone)
	us.GradeLevel = core.CleanString(us.GradeLevel)
	us.AcademicYear = core.CleanString(us.AcademicYear)
	return core.ValidateStruct(us)
}

// apply merges the set fields of us into s.
func (us UpdateStudent) apply(s Student) Student {
	if us.FirstName != "" {
		s.FirstName = us.FirstName
	}
	if us.LastName != "" {
		s.LastName = us.LastName
	}
	if us.Email != "" {
		s.Email = us.Email
	}
	if us.Phone != "" {
		s.Phone = us.Phone
	}
	if !us.DateOfBirth.IsZero() {
		s.DateOfBirth = us.DateOfBirth
	}
	if us.GradeLevel != "" {
		s.GradeLevel = us.GradeLevel
	}
	if us.AcademicYear != "" {
		s.AcademicYear = us.AcademicYear
	}
	if us.Status != "" {
		s.Status = us.Status
	}
	return s
}

type QueryFilter struct {
	Search   string   `query:"search"`
	Statuses []Status `query:"status"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && len(qf.Statuses) == 0
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}

// Matches applies AND on the set fields.
// Search does a case-insensitive match on first name, last name, email or grade level,
// and a verbatim match on phone.
func (qf QueryFilter) Matches(s Student) bool {
	if len(qf.Statuses) > 0 {
		var found bool
		for _, st := range qf.Statuses {
			if s.Status == st {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if qf.Search == "" {
		return true
	}
	q := strings.ToLower(qf.Search)
	return strings.Contains(strings.ToLower(s.FirstName), q) ||
		strings.Contains(strings.ToLower(s.LastName), q) ||
		strings.Contains(strings.ToLower(s.Email), q) ||
		strings.Contains(s.Phone, qf.Search) ||
		strings.Contains(strings.ToLower(s.GradeLevel), q)
}

// Filter returns the students matching qf, in their original order.
func Filter(students []Student, qf QueryFilter) []Student {
	filtered := make([]Student, 0, len(students))
	for _, s := range students {
		if qf.Matches(s) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// ActiveOnly returns the cohort: students whose status is Active.
func ActiveOnly(students []Student) []Student {
	return Filter(students, QueryFilter{Statuses: []Status{StatusActive}})
}
