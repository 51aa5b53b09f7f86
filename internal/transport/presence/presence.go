package presence

import (
	"net/http"

	"github.com/gin-gonic/gin"

	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"
	"github.com/alanyang/tailor-flow/internal/transport/respond"
)

func Register(rg *gin.RouterGroup, svc *presencesvc.Service) {
	rg.GET("/", listOnline(svc))
	rg.POST("/heartbeat", heartbeat(svc))
	rg.DELETE("/:name", leave(svc))
}

type heartbeatReq struct {
	Name string `json:"name" binding:"required"`
}

func heartbeat(svc *presencesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req heartbeatReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := svc.Heartbeat(c.Request.Context(), req.Name); err != nil {
			respond.Error(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func leave(svc *presencesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Leave(c.Request.Context(), c.Param("name")); err != nil {
			respond.Error(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listOnline(svc *presencesvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		online, err := svc.Online(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"window_seconds": int(svc.Window().Seconds()),
			"workers":        online,
		})
	}
}
