package distribution_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alanyang/tailor-flow/internal/mocks"
	portdist "github.com/alanyang/tailor-flow/internal/port/distributor"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	transportdist "github.com/alanyang/tailor-flow/internal/transport/distribution"
)

func init() { gin.SetMode(gin.TestMode) }

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockEventBus) {
	t.Helper()
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	bus := mocks.NewMockEventBus(ctrl)
	svc := distsvc.NewService(orders, portdist.StaticRoster{"Alice", "Bob", "Carl"}, bus, nil)

	r := gin.New()
	transportdist.Register(r.Group("/distributions"), svc)
	return r, bus
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestDistribute(t *testing.T) {
	r, bus := newRouter(t)
	bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	w := post(r, "/distributions/", `{"orders":[{"order_code":"A","model":"PDH","sizes":[
		{"size":"S","count":10},{"size":"M","count":10},{"size":"L","count":10}]}]}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res distsvc.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, 30, res.Report.Total)
	assert.Equal(t, 0, res.Report.Splits)
	require.Len(t, res.Report.Allocations, 3)
	assert.Equal(t, "S", res.Report.Allocations[0].Items[0].Size)
	assert.Equal(t, "M", res.Report.Allocations[1].Items[0].Size)
	assert.Equal(t, "L", res.Report.Allocations[2].Items[0].Size)
}

func TestDistribute_BadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "empty request", body: `{}`},
		{name: "negative count", body: `{"orders":[{"order_code":"A","sizes":[{"size":"S","count":-1}]}]}`},
		{name: "duplicate roster", body: `{"orders":[{"order_code":"A","sizes":[{"size":"S","count":1}]}],"roster":["X","X"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newRouter(t)
			w := post(r, "/distributions/", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestExportText(t *testing.T) {
	r, bus := newRouter(t)
	bus.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	w := post(r, "/distributions/export", `{"orders":[{"order_code":"A","model":"PDH","sizes":[{"size":"S","count":3}]}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, w.Body.String(), "*Alice:* S (1pcs)")
}
