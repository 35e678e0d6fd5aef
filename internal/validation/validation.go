// Package validation checks customer booking forms and admin service forms.
// Results are ordered field errors; an empty result means the form is valid.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldError reports a single invalid form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BookingForm is the contact and selection data a customer submits.
type BookingForm struct {
	CustomerName  string `json:"customerName" validate:"notblank,trimmed_min=2"`
	CustomerEmail string `json:"customerEmail" validate:"notblank,email_shape"`
	CustomerPhone string `json:"customerPhone" validate:"notblank,nanp_phone"`
	ServiceID     string `json:"serviceId" validate:"notblank"`
	Date          string `json:"date" validate:"notblank,datetime=2006-01-02"`
	TimeSlot      string `json:"timeSlot" validate:"notblank,datetime=15:04"`
}

// ServiceForm is the data an administrator submits for a service.
type ServiceForm struct {
	Name        string  `json:"name" validate:"notblank"`
	Description string  `json:"description" validate:"notblank"`
	Duration    int     `json:"duration" validate:"gt=0"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"notblank"`
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[+]?[(]?\d{3}[)]?[\s.-]?\d{3}[\s.-]?\d{4}$`)
)

// messages maps a field and the failing tag to the text shown to the user.
var messages = map[string]map[string]string{
	"customerName": {
		"notblank":    "Name is required",
		"trimmed_min": "Name must be at least 2 characters",
	},
	"customerEmail": {
		"notblank":    "Email is required",
		"email_shape": "Invalid email format",
	},
	"customerPhone": {
		"notblank":   "Phone number is required",
		"nanp_phone": "Invalid phone number format",
	},
	"serviceId": {"notblank": "Please select a service"},
	"date": {
		"notblank": "Please select a date",
		"datetime": "Invalid date format",
	},
	"timeSlot": {
		"notblank": "Please select a time slot",
		"datetime": "Invalid time format",
	},
	"name":        {"notblank": "Service name is required"},
	"description": {"notblank": "Description is required"},
	"duration":    {"gt": "Duration must be greater than 0"},
	"price":       {"gte": "Price cannot be negative"},
	"category":    {"notblank": "Category is required"},
}

var (
	once     sync.Once
	instance *validator.Validate
)

func validate() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		mustRegister(v, "notblank", validators.NotBlank)
		mustRegister(v, "trimmed_min", trimmedMin)
		mustRegister(v, "email_shape", func(fl validator.FieldLevel) bool {
			return isValidEmail(fl.Field().String())
		})
		mustRegister(v, "nanp_phone", func(fl validator.FieldLevel) bool {
			return isValidPhone(fl.Field().String())
		})
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// trimmedMin requires at least Param characters once surrounding whitespace is removed.
func trimmedMin(fl validator.FieldLevel) bool {
	minLen, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= minLen
}

// ValidateBooking checks a booking form. Errors follow the form's field order
// and each field reports at most one problem.
func ValidateBooking(form BookingForm) []FieldError {
	return run(form)
}

// ValidateService checks a service form.
func ValidateService(form ServiceForm) []FieldError {
	return run(form)
}

// isValidEmail reports whether value has the shape of an email address.
func isValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// isValidPhone reports whether value looks like a ten digit phone number.
func isValidPhone(value string) bool {
	return phonePattern.MatchString(value)
}

func run(form any) []FieldError {
	out := make([]FieldError, 0)

	err := validate().Struct(form)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return append(out, FieldError{Field: "", Message: err.Error()})
	}
	for _, fe := range fieldErrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	if byTag, ok := messages[fe.Field()]; ok {
		if msg, ok := byTag[fe.Tag()]; ok {
			return msg
		}
	}
	return fe.Field() + " is invalid"
}
