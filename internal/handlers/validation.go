package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/models"
)

// Egyptian mobile numbers, local or international prefix
var mobilePattern = regexp.MustCompile(`^(00201|\+201|01)[0-25][0-9]{8}$`)

const passwordSpecials = "#?!@$%^&*-"

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(fieldName)
		must(v.RegisterValidation("role", enumValidator(func(s string) bool { return models.Role(s).Valid() })))
		must(v.RegisterValidation("joblocation", enumValidator(func(s string) bool { return models.JobLocation(s).Valid() })))
		must(v.RegisterValidation("workingtime", enumValidator(func(s string) bool { return models.WorkingTime(s).Valid() })))
		must(v.RegisterValidation("seniority", enumValidator(func(s string) bool { return models.SeniorityLevel(s).Valid() })))
		must(v.RegisterValidation("employees", enumValidator(func(s string) bool { return models.EmployeeRange(s).Valid() })))
		must(v.RegisterValidation("mobile", enumValidator(mobilePattern.MatchString)))
		must(v.RegisterValidation("strongpassword", enumValidator(StrongPassword)))
		must(v.RegisterValidation("notblank", validators.NotBlank))
	})
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func enumValidator(ok func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	}
}

// StrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and one of #?!@$%^&*-.
func StrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// bindError turns a binding failure into a 400 with one readable line per
// failed field.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid request body").Wrap(err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperr.Validation(strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notblank":
		return field + " must not be blank"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long", field, fe.Param())
	case "numeric":
		return field + " must be numeric"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datetime":
		return field + " must be a date formatted YYYY-MM-DD"
	case "mobile":
		return field + " must be a valid mobile number"
	case "strongpassword":
		return field + " must be at least 8 characters with upper and lower case letters, a digit and one of " + passwordSpecials
	case "role", "joblocation", "workingtime", "seniority", "employees":
		return fmt.Sprintf("%s has an invalid value %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}
