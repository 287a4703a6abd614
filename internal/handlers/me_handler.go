package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/httpresp"
	"github.com/BruksfildServices01/wedding-vendors/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		httperr.Respond(c, httperr.ErrUnauthenticated("Authentication required"))
		return
	}

	httpresp.OK(c, gin.H{"user": user})
}
