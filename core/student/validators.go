package student

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

var (
	statusTag  = "student_status"
	statusText = "status must be one of Active, Inactive or OnHold"
)

func init() {
	_ = core.Validate.RegisterValidation(statusTag, statusValidation)
	core.RegisterCustomTranslation(statusTag, statusText)
}

// statusValidation checks that the status is one of Statuses
func statusValidation(fl validator.FieldLevel) bool {
	if st, ok := fl.Field().Interface().(Status); ok {
		return st.Valid()
	}
	return Status(fl.Field().String()).Valid()
}
