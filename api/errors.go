package api

import (
	"github.com/Domenick1991/seatbooking/internal/apierr"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, err error) {
	c.JSON(apierr.HTTPStatus(err), gin.H{"error": apierr.Message(err)})
}
