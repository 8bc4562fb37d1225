package controllers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(url string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestQueryIntParses(t *testing.T) {
	c := testContext("/plants/top?n=5&likes=-10")
	assert.Equal(t, 5, queryInt(c, "n", defaultTopN))
	assert.Equal(t, -10, queryInt(c, "likes", 0))
}

func TestQueryIntFallsBackSilently(t *testing.T) {
	// absent and unparsable parameters both yield the default, never an error
	c := testContext("/plants/top?n=lots")
	assert.Equal(t, defaultTopN, queryInt(c, "n", defaultTopN))
	assert.Equal(t, 0, queryInt(c, "likes", 0))
}

func TestQueryStartDateParses(t *testing.T) {
	c := testContext("/plant/abc/visits?startDT=2021-03-20")
	assert.Equal(t, time.Date(2021, 3, 20, 0, 0, 0, 0, time.UTC), queryStartDate(c))
}

func TestQueryStartDateDefaultsToSevenDaysBack(t *testing.T) {
	c := testContext("/plant/abc/visits")

	got := queryStartDate(c)
	want := time.Now().AddDate(0, 0, -7)

	assert.Equal(t, want.Year(), got.Year())
	assert.Equal(t, want.YearDay(), got.YearDay())
	assert.Equal(t, 0, got.Hour())
}
