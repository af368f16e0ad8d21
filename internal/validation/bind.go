package validation

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/imrishuroy/go-orders-appointments-api/internal/response"
)

// ErrorInvalidQuery is the envelope error category for rejected query strings.
const ErrorInvalidQuery = "Invalid query parameters"

// BindQueryAndValidate binds the query string into `out` and runs validation.
// If either step fails, it writes a 400 envelope and returns an error for the handler to short-circuit.
func BindQueryAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindQuery(out); err != nil {
		response.Write(c, http.StatusBadRequest, response.Fail(ErrorInvalidQuery, err.Error()))
		return err
	}

	if err := v.Struct(out); err != nil {
		response.Write(c, http.StatusBadRequest, response.Fail(ErrorInvalidQuery, validationMessage(err)))
		return err
	}
	return nil
}

// validationMessage flattens validator errors into one stable, human-readable line.
func validationMessage(err error) string {
	var ve validatorv10.ValidationErrors
	if !errors.As(err, &ve) {
		return err.Error()
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
