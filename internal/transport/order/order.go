package order

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	"github.com/alanyang/tailor-flow/internal/transport/respond"
)

func Register(rg *gin.RouterGroup, svc *ordersvc.Service) {
	rg.POST("/", upsertOrder(svc))
	rg.GET("/", listOrders(svc))
	rg.GET("/search", searchOrders(svc))
	rg.GET("/duplicates", checkDuplicate(svc))
	rg.GET("/reports/monthly", monthlyReport(svc))
	rg.GET("/:code", getOrder(svc))
	rg.DELETE("/:code", deleteOrder(svc))
}

type upsertOrderReq struct {
	Code        string                   `json:"code" binding:"required"`
	Tailor      string                   `json:"tailor"`
	Model       string                   `json:"model"`
	Color       string                   `json:"color"`
	Customer    string                   `json:"customer"`
	CS          string                   `json:"cs"`
	OrderDate   string                   `json:"order_date"`
	DueDate     string                   `json:"due_date"`
	Sizes       []domainorder.SizeDetail `json:"sizes"`
	Status      domainorder.Status       `json:"status"`
	Priority    domainorder.Priority     `json:"priority"`
	Description string                   `json:"description"`
}

func (r upsertOrderReq) toOrder() domainorder.Order {
	return domainorder.Order{
		Code:        r.Code,
		Tailor:      r.Tailor,
		Model:       r.Model,
		Color:       r.Color,
		Customer:    r.Customer,
		CS:          r.CS,
		OrderDate:   r.OrderDate,
		DueDate:     r.DueDate,
		Sizes:       r.Sizes,
		Status:      r.Status,
		Priority:    r.Priority,
		Description: r.Description,
	}
}

func upsertOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertOrderReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := svc.Upsert(c.Request.Context(), req.toOrder())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func listOrders(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := domainorder.ListFilters{
			Code:   c.Query("code"),
			Tailor: c.Query("tailor"),
		}
		if v := c.Query("status"); v != "" {
			s := domainorder.Status(v)
			if s != domainorder.StatusDone && s != domainorder.StatusInProgress {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			filters.Status = &s
		}

		orders, err := svc.List(c.Request.Context(), filters)
		if err != nil {
			respond.Error(c, err)
			return
		}
		if orders == nil {
			orders = []domainorder.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func searchOrders(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.Search(c.Request.Context(), c.Query("q"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func checkDuplicate(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := strings.TrimSpace(c.Query("code"))
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
			return
		}

		d, err := svc.CheckDuplicate(c.Request.Context(), code, c.Query("tailor"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

func monthlyReport(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.MonthlyReport(c.Request.Context())
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func getOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.GetByCode(c.Request.Context(), c.Param("code"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func deleteOrder(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("code")); err != nil {
			respond.Error(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
