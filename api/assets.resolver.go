package api

import (
	"assetgraph/internal/domain"
	"assetgraph/internal/logger"
	"fmt"

	"github.com/gin-gonic/gin"
)

type createAssetResponse struct {
	Asset                domain.Asset `json:"asset"`
	RelationshipsCreated int          `json:"relationshipsCreated"`
}

func (m ApiHandler) createAsset(c *gin.Context) {
	var asset domain.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		returnErrorJson(fmt.Errorf("failed to read request body: %w", err), c)
		return
	}

	created, err := m.Graph.AddAsset(asset)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	logger.FromContext(c.Request.Context()).Infow("created asset",
		"id", asset.ID,
		"class", asset.Class,
		"relationshipsCreated", created,
	)

	c.JSON(200, createAssetResponse{
		Asset:                asset,
		RelationshipsCreated: created,
	})
}

func (m ApiHandler) listAssets(c *gin.Context) {
	c.JSON(200, gin.H{
		"assets": m.Graph.AllAssets(),
		"events": m.Graph.AllEvents(),
	})
}

func (m ApiHandler) getAsset(c *gin.Context) {
	asset, err := m.Graph.GetAsset(c.Param("id"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, asset)
}

func (m ApiHandler) deleteAsset(c *gin.Context) {
	if err := m.Graph.RemoveAsset(c.Param("id")); err != nil {
		returnErrorJson(err, c)
		return
	}
	logger.FromContext(c.Request.Context()).Infow("removed asset", "id", c.Param("id"))
	c.JSON(200, m.Graph.Counts())
}
