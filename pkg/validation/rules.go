package validation

import (
	"github.com/go-playground/validator/v10"

	"service-tracker/pkg/constants"
)

// registerRules регистрирует теги, которые мы используем в struct tags
func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("service_status", isServiceStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("palette_color", isPaletteColor); err != nil {
		return err
	}
	return nil
}

// isServiceStatus - ongoing, workshop или completed
func isServiceStatus(fl validator.FieldLevel) bool {
	return constants.IsKnownStatus(fl.Field().String())
}

// isPaletteColor - один из пяти цветов карточки
func isPaletteColor(fl validator.FieldLevel) bool {
	return constants.IsPaletteColor(fl.Field().String())
}
