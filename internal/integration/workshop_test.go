//go:build integration

package integration_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgchat "github.com/alanyang/tailor-flow/internal/adapter/postgres/chat"
	pgeventbus "github.com/alanyang/tailor-flow/internal/adapter/postgres/eventbus"
	pglocker "github.com/alanyang/tailor-flow/internal/adapter/postgres/locker"
	pgorder "github.com/alanyang/tailor-flow/internal/adapter/postgres/order"
	pgpresence "github.com/alanyang/tailor-flow/internal/adapter/postgres/presence"
	"github.com/alanyang/tailor-flow/internal/domain/event"
	domainorder "github.com/alanyang/tailor-flow/internal/domain/order"
	portdist "github.com/alanyang/tailor-flow/internal/port/distributor"
	chatsvc "github.com/alanyang/tailor-flow/internal/service/chat"
	distsvc "github.com/alanyang/tailor-flow/internal/service/distributor"
	ordersvc "github.com/alanyang/tailor-flow/internal/service/order"
	presencesvc "github.com/alanyang/tailor-flow/internal/service/presence"
	"github.com/alanyang/tailor-flow/internal/testutil"
)

// ── test harness ──────────────────────────────────────────────────────────────

type testServices struct {
	bus         *pgeventbus.EventBus
	orderSvc    *ordersvc.Service
	chatSvc     *chatsvc.Service
	distSvc     *distsvc.Service
	presenceSvc *presencesvc.Service
	events      *testutil.EventRecorder
	suffix      string
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	pool := testutil.SetupTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	orderRepo := pgorder.New(pool)
	bus := pgeventbus.New(pool)
	t.Cleanup(bus.Close)

	rec := &testutil.EventRecorder{}
	for _, ch := range event.Channels {
		_, err := bus.Subscribe(ctx, ch, rec.Handle)
		require.NoError(t, err)
	}

	chSvc := chatsvc.NewService(pgchat.New(pool), bus)
	return &testServices{
		bus:         bus,
		orderSvc:    ordersvc.NewService(orderRepo, orderRepo, bus, pglocker.New(pool)),
		chatSvc:     chSvc,
		distSvc:     distsvc.NewService(orderRepo, portdist.StaticRoster{"Maris", "Ferry", "Opik"}, bus, chSvc),
		presenceSvc: presencesvc.NewService(pgpresence.New(pool), bus, 30*time.Second),
		events:      rec,
		suffix:      uuid.NewString()[:8],
	}
}

// code scopes an order code to this test run.
func (s *testServices) code(base string) string { return base + "-" + s.suffix }

func (s *testServices) saveOrder(t *testing.T, ctx context.Context, code, tailor string, sizes ...domainorder.SizeDetail) {
	t.Helper()
	_, err := s.orderSvc.Upsert(ctx, domainorder.New(code, tailor, "PDH", sizes))
	require.NoError(t, err)
}

// ── distribution flow ─────────────────────────────────────────────────────────

func TestWorkshop_DistributeStoredOrders(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	a, b := s.code("A"), s.code("B")
	s.saveOrder(t, ctx, a, "Maris", domainorder.SizeDetail{Size: "M", Count: 5}, domainorder.SizeDetail{Size: "L", Count: 3})
	s.saveOrder(t, ctx, b, "Maris", domainorder.SizeDetail{Size: "XL", Count: 2})

	res, err := s.distSvc.Distribute(ctx, distsvc.Request{
		OrderCodes: []string{a, b},
		ShareAs:    "Admin",
	})
	require.NoError(t, err)

	assert.Equal(t, 10, res.Report.Total)
	assert.Equal(t, 10, res.Report.Assigned())
	targets := []int{}
	for _, alloc := range res.Report.Allocations {
		targets = append(targets, alloc.Target)
	}
	assert.Equal(t, []int{4, 3, 3}, targets)
	require.NotNil(t, res.Shared)
	assert.Equal(t, "Admin", res.Shared.Sender)

	recent, err := s.chatSvc.Recent(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, recent)
	assert.Equal(t, res.Message, recent[len(recent)-1].Text)

	assert.True(t, s.events.WaitFor(event.TypeDistributionComputed, a+","+b, 2*time.Second))
	assert.True(t, s.events.WaitFor(event.TypeChatMessage, res.Shared.ID.String(), 2*time.Second))
}

func TestWorkshop_DeletedOrderCannotBeDistributed(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	code := s.code("DEL")
	s.saveOrder(t, ctx, code, "Ferry", domainorder.SizeDetail{Size: "S", Count: 1})
	require.NoError(t, s.orderSvc.Delete(ctx, code))

	_, err := s.distSvc.Distribute(ctx, distsvc.Request{OrderCodes: []string{code}})
	assert.ErrorIs(t, err, domainorder.ErrNotFound)
	assert.True(t, s.events.WaitFor(event.TypeOrderDeleted, code, 2*time.Second))
}

// ── ownership ─────────────────────────────────────────────────────────────────

func TestWorkshop_UpsertByAnotherTailorReportsConflict(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	code := s.code("OWN")
	s.saveOrder(t, ctx, code, "Maris", domainorder.SizeDetail{Size: "M", Count: 2})

	res, err := s.orderSvc.Upsert(ctx, domainorder.New(code, "Ferry", "PDH", []domainorder.SizeDetail{{Size: "M", Count: 3}}))
	require.NoError(t, err)
	assert.True(t, res.Duplicate.Conflict)
	assert.Equal(t, "Maris", res.Duplicate.Owner)
	assert.Equal(t, 3, res.Order.Quantity)
}

// ── presence ──────────────────────────────────────────────────────────────────

func TestWorkshop_StaleWorkerIsPruned(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()

	name := "Worker-" + s.suffix
	require.NoError(t, s.presenceSvc.Heartbeat(ctx, name))
	assert.True(t, s.events.WaitFor(event.TypeWorkerOnline, name, 2*time.Second))

	names, err := s.presenceSvc.OnlineNames(ctx)
	require.NoError(t, err)
	assert.Contains(t, names, name)

	later := s.presenceSvc.WithClock(func() time.Time { return time.Now().Add(time.Minute) })
	pruned, err := later.Prune(ctx)
	require.NoError(t, err)
	assert.Contains(t, pruned, name)
	assert.True(t, s.events.WaitFor(event.TypeWorkerOffline, name, 2*time.Second))
}
