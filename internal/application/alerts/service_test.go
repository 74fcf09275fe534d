package alerts_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/alerts"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/cache"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory/memtest"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (s *fakeSender) Send(_ context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type env struct {
	f      *memtest.Fixture
	svc    *alerts.Service
	sender *fakeSender
	clock  time.Time
	rec    *entity.InventoryRecord
}

func setup(t *testing.T) *env {
	t.Helper()
	e := &env{f: memtest.New(t), sender: &fakeSender{}}
	e.clock = e.f.Now
	e.f.Product(t, "p1", "Camiseta", 50000)
	e.f.User(t, "admin-1", "admin@example.com", entity.RoleAdmin)
	e.f.User(t, "u-1", "cliente@example.com", entity.RoleCliente)
	e.rec = e.f.Stock(t, "p1", memtest.SizeM, 10)

	cooldown := cache.NewMemoryCooldown(func() time.Time { return e.clock })
	mailer := notify.NewMailer(e.sender, "", zerolog.Nop())
	e.svc = alerts.NewService(e.f.DB, e.f.DB.Store(), cooldown, mailer, alerts.Config{Threshold: 5, Cooldown: 90 * time.Minute}, zerolog.Nop())
	return e
}

func (e *env) observe(stock int) {
	rec := e.rec.Clone()
	rec.SetStockForSize(stock)
	e.svc.Observe(context.Background(), []*entity.InventoryRecord{rec})
}

func TestObserve_SecuenciaDeEnfriamiento(t *testing.T) {
	e := setup(t)

	e.observe(10)
	assert.Equal(t, 0, e.sender.count())

	e.observe(4)
	require.Equal(t, 1, e.sender.count())
	assert.Equal(t, []string{"admin@example.com"}, e.sender.sent[0].To, "solo administradores activos")
	assert.Contains(t, e.sender.sent[0].Subject, "Camiseta")
	assert.Contains(t, e.sender.sent[0].Subject, "M")

	e.observe(3)
	assert.Equal(t, 1, e.sender.count(), "en enfriamiento")

	e.observe(6)
	e.observe(4)
	assert.Equal(t, 2, e.sender.count(), "la recuperación reinicia el enfriamiento")
}

func TestObserve_ExpiraElEnfriamiento(t *testing.T) {
	e := setup(t)
	e.observe(4)
	e.clock = e.clock.Add(89 * time.Minute)
	e.observe(4)
	assert.Equal(t, 1, e.sender.count())

	e.clock = e.clock.Add(2 * time.Minute)
	e.observe(4)
	assert.Equal(t, 2, e.sender.count())
}

func TestObserve_AlertasPersistentes(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	e.observe(4)
	active, err := e.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, entity.StockAlertLow, active[0].Type)
	assert.Equal(t, 4, active[0].Stock)
	assert.Equal(t, 5, active[0].Threshold)

	e.observe(3)
	active, err = e.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1, "una sola alerta sin resolver por registro")

	e.observe(0)
	active, err = e.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, entity.StockAlertOut, active[0].Type)

	e.observe(7)
	active, err = e.svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestAlertType(t *testing.T) {
	assert.Equal(t, entity.StockAlertOut, alerts.AlertType(0, 5))
	assert.Equal(t, entity.StockAlertOut, alerts.AlertType(-1, 5))
	assert.Equal(t, entity.StockAlertLow, alerts.AlertType(4, 5))
	assert.Equal(t, "", alerts.AlertType(5, 5))
	assert.Equal(t, "stock-alert:inv-1:5", alerts.CooldownKey("inv-1", 5))
}

type brokenCooldown struct{}

func (brokenCooldown) Exists(context.Context, string) (bool, error) {
	return false, errors.New("redis caído")
}
func (brokenCooldown) Set(context.Context, string, time.Duration) error {
	return errors.New("redis caído")
}
func (brokenCooldown) Delete(context.Context, string) error { return errors.New("redis caído") }

func TestObserve_CacheCaidaEnviaIgual(t *testing.T) {
	f := memtest.New(t)
	f.Product(t, "p1", "Camiseta", 50000)
	f.User(t, "admin-1", "admin@example.com", entity.RoleAdmin)
	rec := f.Stock(t, "p1", memtest.SizeM, 2)

	sender := &fakeSender{}
	svc := alerts.NewService(f.DB, f.DB.Store(), brokenCooldown{}, notify.NewMailer(sender, "", zerolog.Nop()), alerts.Config{}, zerolog.Nop())
	svc.Observe(context.Background(), []*entity.InventoryRecord{rec})
	assert.Equal(t, 1, sender.count())
}
