package distribution

import (
	"net/http"

	"github.com/gin-gonic/gin"

	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	"github.com/alanyang/tailor-flow/internal/transport/respond"
)

func Register(rg *gin.RouterGroup, svc *distsvc.Service) {
	rg.POST("/", distribute(svc))
	rg.POST("/export", exportText(svc))
}

func distribute(svc *distsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req distsvc.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := svc.Distribute(c.Request.Context(), req)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// exportText runs the same distribution and answers with the chat-ready text only.
func exportText(svc *distsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req distsvc.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := svc.Distribute(c.Request.Context(), req)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.String(http.StatusOK, res.Message)
	}
}
