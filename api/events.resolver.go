package api

import (
	"assetgraph/internal/domain"
	"assetgraph/internal/logger"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

type createEventRequest struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	EffectiveDate string   `json:"effectiveDate"`
	ImpactScore   float64  `json:"impactScore"`
	Classes       []string `json:"classes"`
	Sectors       []string `json:"sectors"`
}

type createEventResponse struct {
	Event                domain.RegulatoryEvent `json:"event"`
	RelationshipsCreated int                    `json:"relationshipsCreated"`
}

func (m ApiHandler) createEvent(c *gin.Context) {
	var requestBody createEventRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}

	effectiveDate, err := time.Parse("2006-01-02", requestBody.EffectiveDate)
	if err != nil {
		returnErrorJson(fmt.Errorf("%w: invalid effective date: %s", domain.ErrInvalidAttribute, err.Error()), c)
		return
	}

	classes := []domain.AssetClass{}
	for _, s := range requestBody.Classes {
		class, err := domain.ParseAssetClass(s)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		classes = append(classes, class)
	}

	event := domain.RegulatoryEvent{
		ID:            requestBody.ID,
		Description:   requestBody.Description,
		EffectiveDate: effectiveDate,
		ImpactScore:   requestBody.ImpactScore,
		Classes:       classes,
		Sectors:       requestBody.Sectors,
	}

	created, err := m.Graph.AddEvent(event)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	logger.FromContext(c.Request.Context()).Infow("created event",
		"id", event.ID,
		"relationshipsCreated", created,
	)

	c.JSON(200, createEventResponse{
		Event:                event,
		RelationshipsCreated: created,
	})
}

func (m ApiHandler) deleteEvent(c *gin.Context) {
	if err := m.Graph.RemoveEvent(c.Param("id")); err != nil {
		returnErrorJson(err, c)
		return
	}
	logger.FromContext(c.Request.Context()).Infow("removed event", "id", c.Param("id"))
	c.JSON(200, m.Graph.Counts())
}
