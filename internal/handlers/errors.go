package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/naveenreddy007/raju-course--sub000/pkg/common"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto HTTP responses. Input problems get
// their specific message back; configuration and infrastructure failures are
// logged in full and reported generically.
func respondError(c *gin.Context, err error) {
	var validationErr *common.ValidationError
	var balanceErr *common.InsufficientBalanceError
	var notFoundErr *common.NotFoundError
	var configErr *common.ConfigurationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(validationErr.Error(), nil, http.StatusBadRequest))
	case errors.As(err, &balanceErr):
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(balanceErr.Error(), nil, http.StatusBadRequest))
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, common.NewErrorResponse(notFoundErr.Error(), nil, http.StatusNotFound))
	case errors.As(err, &configErr):
		log.Printf("Configuration error: %v", err)
		c.JSON(http.StatusUnprocessableEntity, common.NewErrorResponse("Request could not be processed, please try again later", nil, http.StatusUnprocessableEntity))
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse("Request could not be processed, please try again later", nil, http.StatusInternalServerError))
	}
}
