package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yukta/symposium/internal/common"
)

// bcrypt ignores anything past 72 bytes, so passwords are limited in bytes
// with maxbytes rather than in runes with max.
type signUpRequest struct {
	Email    string `json:"email" validate:"required,max=254,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Name     string `json:"name" validate:"required,max=200"`
}

func (r *signUpRequest) validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	return validateRequest(r)
}

type signInRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *signInRequest) validate() error {
	r.Email = strings.TrimSpace(r.Email)
	return validateRequest(r)
}

type registerRequest struct {
	EventID string `json:"eventId" validate:"required,max=128"`
}

func (r *registerRequest) validate() error {
	r.EventID = strings.TrimSpace(r.EventID)
	return validateRequest(r)
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	if err := v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	}); err != nil {
		panic(err)
	}

	return v
}

// validateRequest runs the struct's validate tags and turns the first
// failure into a common.ErrValidation with a short message.
func validateRequest(r any) error {
	err := requestValidator.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return invalid("request is invalid")
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return invalid(fe.Field() + " is required")
	case "max", "maxbytes":
		return invalid(fe.Field() + " is too long")
	default:
		return invalid(fe.Field() + " is invalid")
	}
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}
