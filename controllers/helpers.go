package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// default result size of the top-N listings
const defaultTopN = 3

// Created is the standard response for new items
type Created struct {
	ID string `json:"id"`
}

// Test is a plain reachability probe
func Test(c *gin.Context) {
	c.String(http.StatusOK, "Water-Gardens API up")
}

// queryInt reads an integer query parameter; an absent or unparsable value
// falls back to the default silently (bad query input is never a 4xx here)
func queryInt(c *gin.Context, name string, def int) int {
	i, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return i
}

// queryStartDate reads the startDT parameter (YYYY-MM-DD); absent or
// unparsable input defaults to 7 days back, starting at midnight UTC
func queryStartDate(c *gin.Context) time.Time {
	if t, err := time.Parse("2006-01-02", c.Query("startDT")); err == nil {
		return t
	}

	startDT := time.Now().AddDate(0, 0, -7)
	return time.Date(startDT.Year(), startDT.Month(), startDT.Day(), 0, 0, 0, 0, time.UTC)
}
