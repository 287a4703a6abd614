package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/httpresp"
	"github.com/BruksfildServices01/wedding-vendors/internal/middleware"
	"github.com/BruksfildServices01/wedding-vendors/internal/upload"
	ucVendor "github.com/BruksfildServices01/wedding-vendors/internal/usecase/vendor"
)

type PhotographerHandler struct {
	uploads  *upload.Handler
	register *ucVendor.RegisterPhotographer
	list     *ucVendor.ListPhotographers
}

func NewPhotographerHandler(
	uploads *upload.Handler,
	register *ucVendor.RegisterPhotographer,
	list *ucVendor.ListPhotographers,
) *PhotographerHandler {
	return &PhotographerHandler{
		uploads:  uploads,
		register: register,
		list:     list,
	}
}

// Register expects the profile as a JSON document in the "data" form
// field, next to the image files.
func (h *PhotographerHandler) Register(c *gin.Context) {
	form, err := h.uploads.ReadForm(c.Writer, c.Request)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	batch, err := h.uploads.Prepare(form, ucVendor.PhotographerFiles...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	var raw string
	if v := form.Value["data"]; len(v) > 0 {
		raw = v[0]
	}
	in, err := ucVendor.ParsePhotographerData(raw)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	photographer, err := h.register.Execute(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		in,
		batch,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"message":      "Photographer registered successfully",
		"photographer": photographer,
	})
}

func (h *PhotographerHandler) List(c *gin.Context) {
	resolve, _ := strconv.ParseBool(c.Query("resolve"))

	photographers, err := h.list.Execute(c.Request.Context(), resolve)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, photographers)
}
