package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) listRelationships(c *gin.Context) {
	c.JSON(200, gin.H{
		"relationships": m.Graph.AllRelationships(),
	})
}

func (m ApiHandler) getAssetRelationships(c *gin.Context) {
	relationships, err := m.Graph.GetRelationships(c.Param("id"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	c.JSON(200, gin.H{
		"id":            c.Param("id"),
		"relationships": relationships,
	})
}
