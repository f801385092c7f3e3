package serverutils

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation on a parsed request body.
func ValidateRequest(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		return NewAppError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
