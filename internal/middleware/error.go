package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/RogansDev/romedicals-api/pkg/apperror"
)

// abortError writes the error envelope for failures raised inside the
// middleware chain and stops further handlers. Handler-level failures go
// through the handler package's responder instead; both produce the same
// envelope.
func abortError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	message := "internal server error"
	if kind != apperror.KindInternal {
		message = err.Error()
	}
	c.AbortWithStatusJSON(kind.HTTPStatus(), gin.H{
		"status": "error",
		"error": gin.H{
			"code":    kind.String(),
			"message": message,
		},
	})
}
