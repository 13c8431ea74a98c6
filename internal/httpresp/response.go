package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Warned answers {key: data} plus a "warning" entry when a best-effort side
// effect of a successful write did not go through.
func Warned(c *gin.Context, status int, key string, data any, warning string) {
	body := gin.H{key: data}
	if warning != "" {
		body["warning"] = warning
	}
	c.JSON(status, body)
}

func List[T any](c *gin.Context, data []T) {
	if data == nil {
		data = []T{}
	}
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
