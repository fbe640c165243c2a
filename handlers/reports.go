package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"wellness-admin/models"
)

const reportSize = 50

type reportsView struct {
	Events     []models.ActivityEvent
	Configured bool
}

// Reports lists the most recent admin activity from the search index.
func (h *Handler) Reports(c *gin.Context) {
	if h.search == nil {
		h.render(c, http.StatusOK, "reports", "Reports",
			&Alert{Severity: "info", Message: "Activity reporting is not configured."}, reportsView{})
		return
	}

	query := map[string]interface{}{
		"size": reportSize,
		"sort": []map[string]interface{}{
			{"at": map[string]interface{}{"order": "desc", "unmapped_type": "date"}},
		},
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
	}

	hits, err := h.search.Search(c.Request.Context(), h.opts.ActivityIndex, query)
	if err != nil {
		h.logger.Printf("Activity search failed: %v", err)
		_ = c.Error(err)
		h.render(c, http.StatusOK, "reports", "Reports",
			&Alert{Severity: "error", Message: "Could not load recent activity."}, reportsView{Configured: true})
		return
	}

	view := reportsView{Configured: true, Events: make([]models.ActivityEvent, 0, len(hits))}
	for _, hit := range hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var ev models.ActivityEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			h.logger.Printf("Skipping malformed activity document: %v", err)
			continue
		}
		view.Events = append(view.Events, ev)
	}
	h.render(c, http.StatusOK, "reports", "Reports", nil, view)
}
