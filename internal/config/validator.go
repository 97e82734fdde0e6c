package config

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	semverPattern = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?(?:\+[0-9A-Za-z-.]+)?$`)
)

// validatorInstance configures and returns the shared validator instance used across the config package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("calendar_date", func(fl validator.FieldLevel) bool {
			_, err := calendar.ParseDate(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("calendar_month", func(fl validator.FieldLevel) bool {
			_, err := calendar.ParseMonth(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			_, err := calendar.ParseWeekday(fl.Field().String())
			return err == nil
		})

		_ = v.RegisterValidation("locale", func(fl validator.FieldLevel) bool {
			return calendar.IsSupportedLocale(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// GetValidator returns the configured validator for use outside the config package.
func GetValidator() *validator.Validate {
	return validatorInstance()
}

// ValidateConfig performs schema and cross-field validation on the configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return calerrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	cal := cfg.Calendar
	if cal.MinDate != "" && cal.MaxDate != "" {
		minDate := calendar.MustParseDate(cal.MinDate)
		maxDate := calendar.MustParseDate(cal.MaxDate)
		if minDate.After(maxDate) {
			return calerrors.NewValidationError("calendar.min_date", fmt.Sprintf("min_date %s is after max_date %s", minDate, maxDate), nil)
		}
	}

	for i, r := range cal.Disabled.Ranges {
		from := calendar.MustParseDate(r.From)
		to := calendar.MustParseDate(r.To)
		if from.After(to) {
			return calerrors.NewValidationError(fieldForRange(i), fmt.Sprintf("from %s is after to %s", from, to), nil)
		}
	}

	return nil
}

// ValidateStruct validates any tagged struct with the shared validator, such as an API request body.
func ValidateStruct(value any) error {
	if err := validatorInstance().Struct(value); err != nil {
		return convertValidationError(err)
	}
	return nil
}

func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return calerrors.NewValidationError(field, msg, err)
	}

	return calerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName drops the root struct name, so Config.calendar.min_date reads calendar.min_date.
func yamlishFieldName(fe validator.FieldError) string {
	parts := strings.Split(fe.Namespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.Join(parts, ".")
}

func fieldForRange(index int) string {
	return fmt.Sprintf("calendar.disabled.ranges[%d]", index)
}
