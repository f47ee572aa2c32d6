package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindJSON decodes the request body into a typed struct and answers 400 on
// failure. Empty required fields get the "Missing fields" message the API
// contract promises; anything else (bad JSON, wrong types) is a generic
// invalid body.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	if onlyRequiredFailures(err) {
		RespondBadRequest(ctx, "Missing fields")
		return false
	}

	RespondBadRequest(ctx, "Invalid request body")

	return false
}

func onlyRequiredFailures(err error) bool {
	var validatorErrs validator.ValidationErrors

	if !errors.As(err, &validatorErrs) {
		return false
	}

	for _, fieldErr := range validatorErrs {
		if fieldErr.Tag() != "required" {
			return false
		}
	}

	return len(validatorErrs) > 0
}
