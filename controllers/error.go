package controllers

import (
	"fmt"
	"net/http"
	"water-gardens/apperror"
)

// ErrorResponse is the standardized error structure which may be returned by any API
type ErrorResponse struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
}

// HandleError maps model errors to an HTTP status and the std ErrorResponse.
// Any error that is not one of the semantically checked cases reports as a
// plain internal server error; writes that matched nothing are NOT errors
// and never reach this function.
func HandleError(err error) (httpStatus int, apiError ErrorResponse) {

	if err == nil {
		return 0, apiError
	}

	fmt.Println(err)
	switch err {
	case apperror.ErrNoData:
		apiError.Code = ItemNotFound
		httpStatus = http.StatusNotFound
	case apperror.ErrPlantUnknown:
		apiError.Code = PlantNotFound
		httpStatus = http.StatusNotFound
	case apperror.ErrPlantAttached:
		apiError.Code = PlantAlreadyAttached
		httpStatus = http.StatusBadRequest
	default:
		apiError.Code = SystemError
		httpStatus = http.StatusInternalServerError
	}
	apiError.Message = apiError.String(apiError.Code)

	return httpStatus, apiError
}

// Application Error Codes (API Errors)
const (
	// client/api
	InvalidJSON int32 = (10000 + iota)
	InvalidRequest
	// catalog
	ItemNotFound
	PlantNotFound
	PlantAlreadyAttached
	SystemError = 99999
)

func (er ErrorResponse) String(code int32) string {
	msg := ""
	switch code {
	case InvalidJSON:
		msg = "Invalid JSON"
	case InvalidRequest:
		msg = "Invalid Request" // JSON was correct, data was not
	case ItemNotFound:
		msg = "no such catalog item"
	case PlantNotFound:
		msg = "plant does not exist"
	case PlantAlreadyAttached:
		msg = "plant is already attached to this garden"
	case SystemError:
		msg = "Unexpected internal server error"
	}

	return msg
}
