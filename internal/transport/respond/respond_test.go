package respond

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("get order: %w", domainorder.ErrNotFound), http.StatusNotFound},
		{"typed roster error", fmt.Errorf("allocate: %w", &distribution.InvalidRosterError{Reason: "empty"}), http.StatusBadRequest},
		{"typed order error", &distribution.MalformedOrderError{Reason: "negative count"}, http.StatusBadRequest},
		{"duplicate", distsvc.ErrDuplicateOrder, http.StatusBadRequest},
		{"other", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}
