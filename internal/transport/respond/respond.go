// Package respond maps service errors onto HTTP responses for the gin handlers.
package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	chatsvc "github.com/alanyang/tailor-flow/internal/service/chat"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"
)

var badRequest = []error{
	ordersvc.ErrInvalidOrder,
	distribution.ErrMalformedOrder,
	distribution.ErrInvalidRoster,
	distsvc.ErrEmptyRequest,
	distsvc.ErrDuplicateOrder,
	chatsvc.ErrEmptyMessage,
	chatsvc.ErrNoSender,
	presencesvc.ErrNoName,
}

// Status picks the HTTP status for a service error.
func Status(err error) int {
	if errors.Is(err, domainorder.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func Error(c *gin.Context, err error) {
	c.JSON(Status(err), gin.H{"error": err.Error()})
}
