package assignment

import (
	"time"

	"github.com/trezcool/darasa/core"
)

type Category string

// Categories
const (
	CategoryHomework      Category = "Homework"
	CategoryQuiz          Category = "Quiz"
	CategoryTest          Category = "Test"
	CategoryProject       Category = "Project"
	CategoryParticipation Category = "Participation"
	CategoryExtraCredit   Category = "Extra Credit"
)

var Categories = []Category{
	CategoryHomework,
	CategoryQuiz,
	CategoryTest,
	CategoryProject,
	CategoryParticipation,
	CategoryExtraCredit,
}

func (c Category) Valid() bool {
	for _, cat := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

type Assignment struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Category    Category  `json:"category"`
	TotalPoints float64   `json:"total_points"`
	DueDate     time.Time `json:"due_date"`
	Description string    `json:"description,omitempty"`
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string    `json:"title" validate:"required"`
	Category    Category  `json:"category" validate:"required,assignment_category"`
	TotalPoints float64   `json:"total_points" validate:"gt=0"`
	DueDate     time.Time `json:"due_date" validate:"required"`
	Description string    `json:"description"`
}

func (na *NewAssignment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Description = core.CleanString(na.Description)
	return core.ValidateStruct(na)
}

// UpdateAssignment defines what information may be provided to modify an existing Assignment.
// Zero fields keep their current value.
type UpdateAssignment struct {
	Title       string    `json:"title"`
	Category    Category  `json:"category" validate:"omitempty,assignment_category"`
	TotalPoints float64   `json:"total_points" validate:"gte=0"`
	DueDate     time.Time `json:"due_date"`
	Description *string   `json:"description"`
}

func (ua *UpdateAssignment) Validate() error {
	ua.Title = core.CleanString(ua.Title)
	if ua.Description != nil {
		desc := core.CleanString(*ua.Description)
		ua.Description = &desc
	}
	return core.ValidateStruct(ua)
}

func (ua UpdateAssignment) apply(a Assignment) Assignment {
	if ua.Title != "" {
		a.Title = ua.Title
	}
	if ua.Category != "" {
		a.Category = ua.Category
	}
	if ua.TotalPoints > 0 {
		a.TotalPoints = ua.TotalPoints
	}
	if !ua.DueDate.IsZero() {
		a.DueDate = ua.DueDate
	}
	if ua.Description != nil {
		a.Description = *ua.Description
	}
	return a
}

// Find returns the assignment with the given id.
func Find(assignments []Assignment, id int) (Assignment, bool) {
	for _, a := range assignments {
		if a.ID == id {
			return a, true
		}
	}
	return Assignment{}, false
}
