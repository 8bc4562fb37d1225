package controllers

import (
	"net/http"
	"water-gardens/analytics"
	"water-gardens/environment"
	"water-gardens/models"

	"github.com/gin-gonic/gin"
)

// AddGarden creates a new garden
func AddGarden(c *gin.Context) {

	var (
		data     models.Garden
		apiError ErrorResponse
	)

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	id, err := environment.Env.GardenModel.Create(&data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, Created{id})
}

// GetGarden returns the specified garden
func GetGarden(c *gin.Context) {

	var id = c.Param("id")

	data, err := environment.Env.GardenModel.Get(id)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	environment.Env.Tracker.SaveVisit(analytics.DomainGardens, id, c.ClientIP())

	c.JSON(http.StatusOK, data)
}

// ListGardens lists or searches gardens
// format => http://localhost:3000/gardens?complexity=professional&aquascaper=amano
func ListGardens(c *gin.Context) {

	search := new(models.GardenSearch)
	search.Name = c.Query("name")
	search.Desc = c.Query("desc")
	search.Complexity = c.Query("complexity")
	search.Aquascaper = c.Query("aquascaper")
	search.Term = c.Query("search")

	gardens, err := environment.Env.GardenModel.Search(search)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, gardens)
}

// UpdateGarden replaces every mutable field of the specified garden
func UpdateGarden(c *gin.Context) {

	var (
		data     models.Garden
		apiError ErrorResponse
	)

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	res, err := environment.Env.GardenModel.Update(c.Param("id"), &data)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DeleteGarden removes the specified garden
func DeleteGarden(c *gin.Context) {

	res, err := environment.Env.GardenModel.Delete(c.Param("id"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// AttachPlant embeds a snapshot of a plant into a garden;
// 404 when the plant does not exist, 400 when it is already attached
func AttachPlant(c *gin.Context) {

	res, err := environment.Env.GardenModel.AttachPlant(c.Param("id"), c.Param("pid"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// DetachPlant removes a plant reference; detaching twice is a no-op success
func DetachPlant(c *gin.Context) {

	res, err := environment.Env.GardenModel.DetachPlant(c.Param("id"), c.Param("pid"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// AddRating appends a rating and returns the updated garden. The route is
// registered as /garden/:id/rating/:rid because the router rejects a static
// "add" segment next to the :rid wildcard; only "add" is valid here.
func AddRating(c *gin.Context) {

	if c.Param("rid") != "add" {
		c.Status(http.StatusNotFound)
		return
	}

	var apiError ErrorResponse

	data := struct {
		Level   int32  `json:"level" binding:"required"`
		Comment string `json:"comment"`
	}{}

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	garden, err := environment.Env.GardenModel.AddRating(c.Param("id"), data.Level, data.Comment)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, garden)
}

// RemoveRating pulls a rating and returns the updated garden
func RemoveRating(c *gin.Context) {

	garden, err := environment.Env.GardenModel.RemoveRating(c.Param("id"), c.Param("rid"))
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, garden)
}

// EditRating updates level and comment of one embedded rating.
// The garden id of the route is not part of the match (see the model).
func EditRating(c *gin.Context) {

	var apiError ErrorResponse

	data := struct {
		Level   int32  `json:"level" binding:"required"`
		Comment string `json:"comment"`
	}{}

	if err := c.ShouldBindJSON(&data); err != nil {
		apiError.Code = InvalidJSON
		apiError.Message = apiError.String(apiError.Code)
		c.JSON(http.StatusUnprocessableEntity, apiError)
		return
	}

	res, err := environment.Env.GardenModel.EditRating(c.Param("rid"), data.Level, data.Comment)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, res)
}

// TopGardens returns the ranked garden listing
// format => http://localhost:3000/gardens/top?n=5&rating=4&complexity=professional
func TopGardens(c *gin.Context) {

	search := new(models.GardenTopSearch)
	search.MinRating = queryInt(c, "rating", 0)
	search.Complexity = c.Query("complexity")
	search.Aquascaper = c.Query("aquascaper")
	search.Limit = int64(queryInt(c, "n", defaultTopN))

	gardens, err := environment.Env.GardenModel.TopByRating(search)
	if err != nil {
		status, apiError := HandleError(err)
		c.JSON(status, apiError)
		return
	}

	c.JSON(http.StatusOK, gardens)
}
