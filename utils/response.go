package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the uniform envelope returned by every endpoint, success and
// error alike. Status repeats the HTTP status code inside the body; Message
// is an object so validation failures can carry per-field detail.
type Response struct {
	Data    interface{}       `json:"data,omitempty"`
	Message map[string]string `json:"message,omitempty"`
	Status  int               `json:"status"`
}

func JSON(c *gin.Context, status int, data interface{}, message map[string]string) {
	c.JSON(status, &Response{
		Data:    data,
		Message: message,
		Status:  status,
	})
}

func Success(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, nil)
}

func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data, nil)
}

func SuccessMessage(c *gin.Context, message string) {
	JSON(c, http.StatusOK, nil, map[string]string{"success": message})
}

// BadRequest reports validation failures; fields maps each offending field
// to its reason.
func BadRequest(c *gin.Context, fields map[string]string) {
	JSON(c, http.StatusBadRequest, nil, fields)
}

func NotFound(c *gin.Context, message string) {
	JSON(c, http.StatusNotFound, nil, map[string]string{"error": message})
}

func Unauthorized(c *gin.Context, message string) {
	JSON(c, http.StatusUnauthorized, nil, map[string]string{"error": message})
}

func Conflict(c *gin.Context, message string) {
	JSON(c, http.StatusConflict, nil, map[string]string{"error": message})
}

func InternalError(c *gin.Context, message string) {
	JSON(c, http.StatusInternalServerError, nil, map[string]string{"error": message})
}
