package handlers

import (
	"errors"
	"strconv"

	"gator-threads/internal/middleware"
	"gator-threads/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError writes {"error": message} with the status for the error's code.
// The message carries the underlying driver error unless store errors are
// hidden.
func (s *Server) respondError(c *gin.Context, err error) {
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		appErr = utils.NewAppError(utils.ErrInternal, "internal server error", err)
	}

	status := utils.AppErrorToHTTPStatus(appErr.Code)
	message := appErr.Error()
	if s.HideStoreErrors && isStoreError(appErr.Code) {
		message = appErr.Message
	}

	logrus.WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c),
		"code":       appErr.Code,
		"status":     status,
	}).WithError(err).Debug("responding with error")

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}

func isStoreError(code string) bool {
	switch code {
	case utils.ErrDatabase, utils.ErrConstraint, utils.ErrUnavailable, utils.ErrInternal:
		return true
	}
	return false
}

// bindJSON decodes the request body into dest.
func bindJSON(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindJSON(dest); err != nil {
		return utils.NewInvalidInputError("invalid request body", err)
	}
	return nil
}

// pathID parses an integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, utils.NewInvalidInputError("invalid "+name+": "+strconv.Quote(raw), err)
	}
	return id, nil
}
