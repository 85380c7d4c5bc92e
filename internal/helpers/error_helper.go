package helpers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondInternalError logs the underlying error server-side and returns a
// generic message, so internals never leak to clients.
func RespondInternalError(c *gin.Context, err error) {
	log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	RespondWithError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
