package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func getHello(c *gin.Context) {
	c.String(http.StatusOK, "Greetings from the currency app!")
}

func getHealth(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// registerHomeRoutes registers the greeting route
func registerHomeRoutes(group *gin.RouterGroup) {
	group.GET("/hello", getHello)
}
