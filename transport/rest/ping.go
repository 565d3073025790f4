package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (that *handler) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
