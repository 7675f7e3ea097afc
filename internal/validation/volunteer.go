package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// VolunteerInput is the untrusted creation payload. Unknown fields in the
// request body are dropped at bind time; only these five are accepted.
type VolunteerInput struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,phone"`
	Interest string `json:"interest" validate:"required,oneof=healthcare education environment community admin events"`
	Message  string `json:"message" validate:"max=1000"`
}

// FieldError names one offending field and a human-readable reason.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Optional leading +, nonzero first digit, then up to 15 further digits.
var phonePattern = regexp.MustCompile(`^[+]?[1-9][0-9]{0,15}$`)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report errors under the JSON field name rather than the Go field name
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
}

// ValidateVolunteer normalizes in (trims the name) and checks every field
// rule. It returns nil when the payload is acceptable, otherwise one
// FieldError per offending field so the caller can fix every problem in a
// single round trip.
func ValidateVolunteer(in *VolunteerInput) []FieldError {
	in.Name = strings.TrimSpace(in.Name)

	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	fieldErrs := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrs = append(fieldErrs, FieldError{
			Field:   fe.Field(),
			Message: messageFor(fe.Field(), fe.Tag()),
		})
	}
	return fieldErrs
}

func messageFor(field, tag string) string {
	switch field {
	case "name":
		switch tag {
		case "required":
			return "Name is required"
		case "min":
			return "Name must be at least 2 characters long"
		case "max":
			return "Name cannot exceed 255 characters"
		}
	case "email":
		switch tag {
		case "required":
			return "Email is required"
		case "email":
			return "Please provide a valid email address"
		}
	case "phone":
		switch tag {
		case "required":
			return "Phone number is required"
		case "phone":
			return "Please provide a valid phone number"
		}
	case "interest":
		switch tag {
		case "required":
			return "Area of interest is required"
		case "oneof":
			return "Please select a valid area of interest"
		}
	case "message":
		if tag == "max" {
			return "Message cannot exceed 1000 characters"
		}
	}
	return "Invalid value for " + field
}
