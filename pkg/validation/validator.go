package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Init configures the global validator used by Gin's binding to report
// JSON tag names instead of Go field names.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// fieldMessages carries per-field wording for the tags this API binds.
// Violations are collected for every field at once, never short-circuited
// to the first failure.
var fieldMessages = map[string]map[string]string{
	"email": {
		"required": "Email is required.",
		"email":    "Please enter a valid email address.",
	},
	"password": {
		"required": "Password is required.",
		"min":      "Password must be at least 8 characters long.",
	},
	"password_confirm": {
		"required": "Password confirmation is required.",
		"eqfield":  "Passwords do not match.",
	},
}

// ToDetails converts binding errors into a map[field]message suitable as
// a 400 response body.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "Invalid request body."}
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = messageFor(fe.Field(), fe.Tag())
		}
		return out
	}

	return map[string]string{"payload": "Invalid request body."}
}

func messageFor(field, tag string) string {
	if byTag, ok := fieldMessages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	switch tag {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	default:
		return "This field is invalid."
	}
}
