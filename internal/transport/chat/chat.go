package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	chatsvc "github.com/alanyang/tailor-flow/internal/service/chat"
	"github.com/alanyang/tailor-flow/internal/transport/respond"
)

func Register(rg *gin.RouterGroup, svc *chatsvc.Service) {
	rg.GET("/messages", listMessages(svc))
	rg.POST("/messages", postMessage(svc))
}

type postMessageReq struct {
	Sender string `json:"sender" binding:"required"`
	Text   string `json:"text"`
	Image  string `json:"image"`
}

func postMessage(svc *chatsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req postMessageReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		m, err := svc.Post(c.Request.Context(), req.Sender, req.Text, req.Image)
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, m)
	}
}

func listMessages(svc *chatsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := svc.Recent(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}
