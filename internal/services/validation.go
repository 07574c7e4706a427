package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/contactbook/engine/internal/models"
	appErr "github.com/contactbook/engine/pkg/errors"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

// SystemClock is UTC wall time at the microsecond precision PostgreSQL keeps.
func SystemClock() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationError flattens validator failures into a single CodeInvalid error.
func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return appErr.Wrap(err, appErr.CodeInvalid, "validation failed")
	}
	msgs := make([]string, 0, len(ves))
	for _, fe := range ves {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "email":
			msgs = append(msgs, fe.Field()+" must be a valid email address")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fe.Field()+" is invalid")
		}
	}
	return appErr.New(appErr.CodeInvalid, strings.Join(msgs, "; "))
}

// checkEmails reports the first malformed address in the list.
func checkEmails(emails []models.EmailAddress) error {
	for i, e := range emails {
		if err := validate.Var(e.Email, "required,email"); err != nil {
			return fmt.Errorf("emails[%d].email must be a valid email address", i)
		}
	}
	return nil
}

// stagger spaces out rows written in one batch so creation order survives
// the database's timestamp precision.
func stagger(base time.Time, i int) time.Time {
	return base.Add(time.Duration(i) * time.Microsecond)
}
