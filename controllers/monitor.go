package controllers

import (
	"net/http"
	"water-gardens/environment"

	"github.com/gin-gonic/gin"
)

// CountRequests returns how many clients are currently tracked
func CountRequests(c *gin.Context) {
	c.JSON(http.StatusOK, environment.Env.Requests.Count())
}

// DumpRequests returns the last accessed item per client
func DumpRequests(c *gin.Context) {
	c.JSON(http.StatusOK, environment.Env.Requests.Dump(50))
}

// FlushRequests trims the request registry on demand
func FlushRequests(c *gin.Context) {
	environment.Env.Requests.Flush()
	c.Status(http.StatusOK)
}
