package assignment

import (
	"context"
	"sort"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/calendar"
)

const Entity = "assignment"

var (
	categoryTag  = "assignment_category"
	categoryText = "category must be one of Homework, Quiz, Test, Project, Participation or Extra Credit"
)

func init() {
	_ = core.Validate.RegisterValidation(categoryTag, func(fl validator.FieldLevel) bool {
		return Category(fl.Field().String()).Valid()
	})
	core.RegisterCustomTranslation(categoryTag, categoryText)
}

type (
	// Repository is the Entity Store for assignments.
	Repository interface {
		QueryAllAssignments(ctx context.Context) ([]Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		DeleteAssignment(ctx context.Context, id int) (bool, error)
	}

	// GradeLister reads the scores recorded against an assignment. Ungraded cells are left out.
	GradeLister interface {
		ScoresOf(ctx context.Context, assignmentID int) ([]float64, error)
	}

	Service struct {
		repo   Repository
		grades GradeLister
	}
)

func NewService(repo Repository, grades GradeLister) *Service {
	return &Service{repo: repo, grades: grades}
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	if err := na.Validate(); err != nil {
		return Assignment{}, err
	}
	a, err := svc.repo.CreateAssignment(ctx, Assignment{
		Title:       na.Title,
		Category:    na.Category,
		TotalPoints: na.TotalPoints,
		DueDate:     calendar.Day(na.DueDate),
		Description: na.Description,
	})
	return a, core.NewStoreError("creating assignment", err)
}

// QueryAll returns the gradebook axis: every assignment, ordered by due date then id.
func (svc *Service) QueryAll(ctx context.Context) ([]Assignment, error) {
	assignments, err := svc.repo.QueryAllAssignments(ctx)
	if err != nil {
		return nil, core.NewStoreError("querying assignments", err)
	}
	sort.SliceStable(assignments, func(i, j int) bool {
		if !assignments[i].DueDate.Equal(assignments[j].DueDate) {
			return assignments[i].DueDate.Before(assignments[j].DueDate)
		}
		return assignments[i].ID < assignments[j].ID
	})
	return assignments, nil
}

func (svc *Service) GetByID(ctx context.Context, id int) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, id)
	return a, core.NewStoreError("getting assignment", err)
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	if err := ua.Validate(); err != nil {
		return Assignment{}, err
	}
	orig, err := svc.GetByID(ctx, id)
	if err != nil {
		return Assignment{}, err
	}
	a := ua.apply(orig)
	a.DueDate = calendar.Day(a.DueDate)
	if a.TotalPoints < orig.TotalPoints {
		if err = svc.checkScores(ctx, a); err != nil {
			return Assignment{}, err
		}
	}
	updated, err := svc.repo.UpdateAssignment(ctx, a)
	return updated, core.NewStoreError("updating assignment", err)
}

// checkScores fails when a recorded score of a exceeds its total points.
func (svc *Service) checkScores(ctx context.Context, a Assignment) error {
	scores, err := svc.grades.ScoresOf(ctx, a.ID)
	if err != nil {
		return core.NewStoreError("querying scores", err)
	}
	var highest float64
	for _, v := range scores {
		if v > highest {
			highest = v
		}
	}
	if highest > a.TotalPoints {
		return core.NewValidationError(nil, core.FieldError{
			Field: "total_points",
			Error: "total_points cannot be lower than the highest recorded score (" + strconv.FormatFloat(highest, 'f', -1, 64) + ")",
		})
	}
	return nil
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	_, err := svc.repo.DeleteAssignment(ctx, id)
	return core.NewStoreError("deleting assignment", err)
}
