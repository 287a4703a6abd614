package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/wedding-vendors/internal/audit"
	"github.com/BruksfildServices01/wedding-vendors/internal/httperr"
	"github.com/BruksfildServices01/wedding-vendors/internal/httpresp"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs audit.Reader
}

func NewAuditLogsHandler(logs audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List supports ?action=, ?entity=, ?from=YYYY-MM-DD, ?to=YYYY-MM-DD
// (inclusive), ?page= and ?limit=.
func (h *AuditLogsHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultPageSize)))

	filter := audit.Filter{
		Action: c.Query("action"),
		Entity: c.Query("entity"),
		Page:   page,
		Limit:  limit,
	}.Normalize()

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse(time.DateOnly, fromStr)
		if err != nil {
			httperr.Respond(c, httperr.ErrMalformed("from must be YYYY-MM-DD", err))
			return
		}
		filter.From = from
	}

	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse(time.DateOnly, toStr)
		if err != nil {
			httperr.Respond(c, httperr.ErrMalformed("to must be YYYY-MM-DD", err))
			return
		}
		filter.To = to.Add(24*time.Hour - time.Nanosecond)
	}

	logs, total, err := h.logs.ListAuditLogs(c.Request.Context(), filter)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"page":  filter.Page,
		"limit": filter.Limit,
		"total": total,
		"logs":  logs,
	})
}
