package rekuest

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/pkg/lberr"
	"github.com/zineb3103/LabLens-Interactive-Blood-Work-Explorer/internal/util"
)

var Validate = util.NewValidator()

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Field(),
			Violation: fe.Tag(),
			Message:   fe.Error(),
		})
	}
	return trans
}

// ValidBody parses the request body into dest and validates it, returning a
// violations-annotated invalid request error on failure.
func ValidBody(ctx *fiber.Ctx, dest interface{}) error {
	if err := ctx.BodyParser(dest); err != nil {
		return lberr.ErrInvalidReq
	}
	if err := Validate.Struct(dest); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			return lberr.NewInvalidViolations(translate(ve))
		}
		return lberr.ErrInvalidReq
	}
	return nil
}
