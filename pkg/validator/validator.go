package validator

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-StudioBooking/pkg/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// В ошибках используем имена полей из json тегов
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations()
}

func registerCustomValidations() {
	// Дата в формате YYYY-MM-DD
	_ = validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})

	// Время в формате "h:mm AM|PM"
	_ = validate.RegisterValidation("timelabel", func(fl validator.FieldLevel) bool {
		_, err := types.ParseTimeLabel(fl.Field().String())
		return err == nil
	})
}

// Validate проверяет структуру и возвращает ошибки по полям (nil, если ошибок нет)
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	result := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			result[field] = "This field is required"
		case "email":
			result[field] = "Invalid email format"
		case "min":
			result[field] = "Value is too short (min: " + fe.Param() + ")"
		case "max":
			result[field] = "Value is too long (max: " + fe.Param() + ")"
		case "gte":
			result[field] = "Value must be at least " + fe.Param()
		case "lte":
			result[field] = "Value must be at most " + fe.Param()
		case "url":
			result[field] = "Invalid URL format"
		case "uuid":
			result[field] = "Invalid UUID"
		case "isodate":
			result[field] = "Invalid date, expected YYYY-MM-DD"
		case "timelabel":
			result[field] = "Invalid time, expected h:mm AM|PM"
		default:
			result[field] = "Invalid value"
		}
	}

	return result
}

// ValidateVar проверяет одиночное значение
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
