package controllers

import (
	"net/http"
	"water-gardens/lookups"

	"github.com/gin-gonic/gin"
)

// ListLookups returns the fixed value sets of the domain
// (selection options for client forms)
func ListLookups(c *gin.Context) {

	res := struct {
		ComplexityLevels []string `json:"complexityLevels"`
		RatingLevels     []int32  `json:"ratingLevels"`
		CareEasy         string   `json:"careEasy"`
	}{
		lookups.FeaturedComplexityLevels,
		lookups.FeaturedRatingLevels,
		lookups.CareEasy,
	}

	c.JSON(http.StatusOK, res)
}
