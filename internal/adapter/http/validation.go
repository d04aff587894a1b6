package http

import (
	"regexp"

	"equipmart-backend/internal/domain/approval"
	"equipmart-backend/internal/domain/directory"
	"equipmart-backend/internal/domain/policy"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// entity ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("tier", func(fl validator.FieldLevel) bool {
		return policy.ServiceTier(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("decision", func(fl validator.FieldLevel) bool {
		return approval.ValidDecision(approval.Status(fl.Field().String()))
	})
	_ = v.RegisterValidation("teamrole", func(fl validator.FieldLevel) bool {
		return directory.TeamRole(fl.Field().String()).Valid()
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "tier":
			out = append(out, FieldError{Field: field, Message: "must be standard, priority or enterprise"})
		case "decision":
			out = append(out, FieldError{Field: field, Message: "must be approved or rejected"})
		case "teamrole":
			out = append(out, FieldError{Field: field, Message: "must be approver, manager or owner"})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
