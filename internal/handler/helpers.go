package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/hfoxfagundes/social-media-dashboard/internal/middleware"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		logger = middleware.RequestLogger(base, c)
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationDetails maps each failing field to a short human message.
func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		name := strings.ToLower(fieldErr.Field())
		switch fieldErr.Tag() {
		case "oneof":
			details[name] = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fieldErr.Param(), " ", ", "))
		case "min":
			details[name] = fmt.Sprintf("must be at least %s", fieldErr.Param())
		case "max":
			details[name] = fmt.Sprintf("must be at most %s", fieldErr.Param())
		case "required":
			details[name] = "is required"
		default:
			details[name] = fmt.Sprintf("failed %s validation", fieldErr.Tag())
		}
	}
	return details
}
