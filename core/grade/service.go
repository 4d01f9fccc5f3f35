package grade

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/calendar"
)

const Entity = "grade"

type (
	// Repository is the Entity Store for grades.
	// UpdateGrade and DeleteGrade fail with a *core.NotFoundError for unknown ids.
	Repository interface {
		QueryAllGrades(ctx context.Context) ([]Grade, error)
		GetGradeByID(ctx context.Context, id int) (Grade, error)
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGrade(ctx context.Context, id int) (bool, error)
	}

	// AssignmentGetter resolves the assignment a score is checked against.
	AssignmentGetter interface {
		GetByID(ctx context.Context, id int) (assignment.Assignment, error)
	}

	Service struct {
		repo        Repository
		assignments AssignmentGetter
		nowFunc     func() time.Time
	}

	// Result is the outcome of one cell write.
	Result struct {
		Action core.Action
		Cell   Cell
	}
)

func NewService(repo Repository, assignments AssignmentGetter) *Service {
	return &Service{repo: repo, assignments: assignments, nowFunc: time.Now}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Grade, error) {
	grades, err := svc.repo.QueryAllGrades(ctx)
	return grades, core.NewStoreError("querying grades", err)
}

// Submit writes the raw score typed in the (studentID, assignmentID) cell.
// The score is validated against the assignment's total points before any store call.
// An empty score clears the cell, deleting the grade if one exists.
func (svc *Service) Submit(ctx context.Context, studentID, assignmentID int, raw string) (Result, error) {
	fail := func(err error) (Result, error) {
		return Result{Cell: Failed{Err: err}}, err
	}

	if studentID <= 0 {
		return fail(core.NewValidationError(nil, core.FieldError{Field: "student_id", Error: "this field is required"}))
	}
	a, err := svc.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		return fail(err)
	}
	score, err := ParseScore(raw, a.TotalPoints)
	if err != nil {
		return fail(err)
	}

	grades, err := svc.QueryAll(ctx)
	if err != nil {
		return fail(err)
	}
	existing, found := Find(grades, studentID, assignmentID)
	changed := found && !sameScore(existing.Score, score)

	var g Grade
	action := core.Reconcile(found, score == nil, changed)
	switch action {
	case core.ActionNone:
		return Result{Action: action, Cell: CellOf(existing, found)}, nil
	case core.ActionCreate:
		g, err = svc.repo.CreateGrade(ctx, Grade{
			StudentID:     studentID,
			AssignmentID:  assignmentID,
			Score:         score,
			SubmittedDate: calendar.Day(svc.nowFunc()),
		})
		err = core.NewStoreError("creating grade", err)
	case core.ActionUpdate:
		upd := existing
		upd.Score = score
		upd.SubmittedDate = calendar.Day(svc.nowFunc())
		g, err = svc.repo.UpdateGrade(ctx, upd)
		err = core.NewStoreError("updating grade", err)
	case core.ActionDelete:
		_, err = svc.repo.DeleteGrade(ctx, existing.ID)
		err = core.NewStoreError("deleting grade", err)
	}
	if err != nil {
		return fail(errors.Wrap(err, "submitting grade"))
	}

	if action == core.ActionDelete {
		return Result{Action: action, Cell: Ungraded{}}, nil
	}
	return Result{Action: action, Cell: Graded{Grade: g}}, nil
}

func sameScore(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Scores reads recorded scores straight from the grade store.
type Scores struct {
	repo Repository
}

var _ assignment.GradeLister = (*Scores)(nil)

func NewScores(repo Repository) *Scores {
	return &Scores{repo: repo}
}

func (s *Scores) ScoresOf(ctx context.Context, assignmentID int) ([]float64, error) {
	grades, err := s.repo.QueryAllGrades(ctx)
	if err != nil {
		return nil, core.NewStoreError("querying grades", err)
	}
	var scores []float64
	for _, g := range grades {
		if g.AssignmentID == assignmentID && g.IsGraded() {
			scores = append(scores, *g.Score)
		}
	}
	return scores, nil
}
