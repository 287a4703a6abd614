package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/httpresp"
	"github.com/BruksfildServices01/wedding-vendors/internal/middleware"
	"github.com/BruksfildServices01/wedding-vendors/internal/upload"
	ucVendor "github.com/BruksfildServices01/wedding-vendors/internal/usecase/vendor"
)

// ======================================================
// HANDLER
// ======================================================

type CatererHandler struct {
	uploads  *upload.Handler
	register *ucVendor.RegisterCaterer
	list     *ucVendor.ListApprovedCaterers
	approve  *ucVendor.ApproveCaterer
}

func NewCatererHandler(
	uploads *upload.Handler,
	register *ucVendor.RegisterCaterer,
	list *ucVendor.ListApprovedCaterers,
	approve *ucVendor.ApproveCaterer,
) *CatererHandler {
	return &CatererHandler{
		uploads:  uploads,
		register: register,
		list:     list,
		approve:  approve,
	}
}

// ======================================================
// REGISTER
// ======================================================

func (h *CatererHandler) Register(c *gin.Context) {
	form, err := h.uploads.ReadForm(c.Writer, c.Request)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	batch, err := h.uploads.Prepare(form, ucVendor.CatererFiles...)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	in, err := ucVendor.ParseCatererForm(form.Value)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	caterer, err := h.register.Execute(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		in,
		batch,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, caterer)
}

// ======================================================
// LIST (approved only)
// ======================================================

func (h *CatererHandler) List(c *gin.Context) {
	caterers, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, caterers)
}

// ======================================================
// APPROVE (admin)
// ======================================================

func (h *CatererHandler) Approve(c *gin.Context) {
	caterer, err := h.approve.Execute(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		c.Param("id"),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, caterer)
}
