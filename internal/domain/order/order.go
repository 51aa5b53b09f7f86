package order

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alanyang/tailor-flow/internal/domain/distribution"
)

type Status string

const (
	StatusDone       Status = "Beres"
	StatusInProgress Status = "Proses"
)

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

type Gender string

const (
	GenderMale   Gender = "Pria"
	GenderFemale Gender = "Wanita"
)

type Sleeve string

const (
	SleeveLong  Sleeve = "Panjang"
	SleeveShort Sleeve = "Pendek"
)

type SizeDetail struct {
	Size   string `json:"size"`
	Count  int    `json:"count"`
	Gender Gender `json:"gender,omitempty"`
	Sleeve Sleeve `json:"sleeve,omitempty"`
	Name   string `json:"name,omitempty"` // per-piece name print, when the order has one
}

type Order struct {
	ID          uuid.UUID    `json:"id"`
	Code        string       `json:"code"`
	Tailor      string       `json:"tailor"`
	Model       string       `json:"model"`
	Color       string       `json:"color,omitempty"`
	Customer    string       `json:"customer,omitempty"`
	CS          string       `json:"cs,omitempty"`
	OrderDate   string       `json:"order_date,omitempty"`
	DueDate     string       `json:"due_date,omitempty"`
	Quantity    int          `json:"quantity"`
	Sizes       []SizeDetail `json:"sizes"`
	Status      Status       `json:"status"`
	Priority    Priority     `json:"priority"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
}

func New(code, tailor, model string, sizes []SizeDetail) Order {
	now := time.Now().UTC()
	o := Order{
		ID:        uuid.New(),
		Code:      code,
		Tailor:    tailor,
		Model:     model,
		Sizes:     sizes,
		Status:    StatusInProgress,
		Priority:  PriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.RecountQuantity()
	return o
}

// RecountQuantity sets Quantity to the sum of the size breakdown.
func (o *Order) RecountQuantity() {
	n := 0
	for _, s := range o.Sizes {
		n += s.Count
	}
	o.Quantity = n
}

func (o *Order) IsDeleted() bool { return o.DeletedAt != nil }

func (o *Order) IsDone() bool { return o.Status == StatusDone }

// DistributionInput converts the order into the engine's input shape, keeping the
// size breakdown order.
func (o Order) DistributionInput() distribution.Order {
	sizes := make([]distribution.SizeCount, len(o.Sizes))
	for i, s := range o.Sizes {
		sizes[i] = distribution.SizeCount{Size: s.Size, Count: s.Count}
	}
	return distribution.Order{Code: o.Code, Model: o.Model, Sizes: sizes}
}

// Matches reports whether q appears, case-insensitively, in the order code, tailor or customer.
func (o Order) Matches(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return false
	}
	return strings.Contains(strings.ToLower(o.Code), q) ||
		strings.Contains(strings.ToLower(o.Tailor), q) ||
		strings.Contains(strings.ToLower(o.Customer), q)
}

type ListFilters struct {
	Code   string // substring, case-insensitive
	Tailor string // substring, case-insensitive
	Status *Status
}

var ErrNotFound = errors.New("order not found")
