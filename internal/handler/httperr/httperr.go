package httperr

import (
	"github.com/gin-gonic/gin"
)

type ErrorBody struct {
	Message string `json:"message"`
	Detail  any    `json:"detail,omitempty"`
}

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
}

// AbortWithError keeps the original error on the context for logging and
// writes the public error envelope.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{
		Status: status,
		Error:  ErrorBody{Message: msg, Detail: detail},
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
