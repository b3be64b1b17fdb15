// Package validate performs structural validation of action payloads.
// Rules are declared with validator/v10 struct tags; the human message
// for a field lives in its `msg` tag. Violations surface as a
// VALIDATION_ERROR whose message is the first violated field's text,
// in struct declaration order (first-error-wins).
package validate

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/yeyclub/platform/internal/action"
)

// MsgInvalid is the fallback message for fields without a msg tag.
const MsgInvalid = "Geçersiz veri."

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Input checks target against its declared schema. Returns nil on
// success; otherwise an action.Error with code VALIDATION_ERROR and
// the first violation's message.
func Input(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var violations validator.ValidationErrors
	if !errors.As(err, &violations) || len(violations) == 0 {
		return action.NewError(MsgInvalid, action.CodeValidation, http.StatusBadRequest)
	}
	return action.NewError(messageFor(target, violations[0]), action.CodeValidation, http.StatusBadRequest)
}

// messageFor resolves the msg tag of the violated field, walking
// nested structs when necessary.
func messageFor(target any, fe validator.FieldError) string {
	t := reflect.TypeOf(target)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return MsgInvalid
	}
	if field, ok := fieldByName(t, fe.StructField()); ok {
		if msg := field.Tag.Get("msg"); msg != "" {
			return msg
		}
	}
	return MsgInvalid
}

func fieldByName(t reflect.Type, name string) (reflect.StructField, bool) {
	if f, ok := t.FieldByName(name); ok {
		return f, true
	}
	for i := 0; i < t.NumField(); i++ {
		ft := t.Field(i).Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			if f, ok := fieldByName(ft, name); ok {
				return f, true
			}
		}
	}
	return reflect.StructField{}, false
}
