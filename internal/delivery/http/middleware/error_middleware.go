package middleware

import (
	"errors"
	"net/http"

	"go-jobmatch-bot/internal/delivery/http/response"
	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"
	"go-jobmatch-bot/pkg/logger"
	"go-jobmatch-bot/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(c, http.StatusBadRequest, "Validation failed", validation.FormatValidationErrors(err))
			return
		}

		appErr := apperror.FromDomain(err)
		if appErr.Code >= http.StatusInternalServerError {
			// Internal details stay in the log.
			logger.Log.Error("Request failed",
				zap.String("request_id", c.GetString(string(domain.KeyRequestID))),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
			response.Error(c, appErr.Code, "An unexpected error occurred. Please try again later.", nil)
			return
		}
		response.Error(c, appErr.Code, appErr.Message, nil)
	}
}
