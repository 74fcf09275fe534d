// Package alerts alertas de stock bajo: correo a administradores con enfriamiento
// y alertas persistentes para el panel de administración.
package alerts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

// DefaultCooldown tiempo mínimo entre dos correos para el mismo registro y umbral.
const DefaultCooldown = 90 * time.Minute

// Cooldown marcadores con expiración (memoria del proceso o Redis).
type Cooldown interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Config parámetros de alertas.
type Config struct {
	Threshold int // umbral por defecto cuando el registro no define min_stock
	Cooldown  time.Duration
}

// Service evalúa registros de inventario ya confirmados. Implementa inventory.StockWatcher.
type Service struct {
	tx       repository.TxRunner
	store    repository.Store
	cooldown Cooldown
	mailer   *notify.Mailer
	cfg      Config
	log      zerolog.Logger
	now      func() time.Time
}

// NewService construye el servicio. mailer nil desactiva la variante por correo.
func NewService(tx repository.TxRunner, store repository.Store, cooldown Cooldown, mailer *notify.Mailer, cfg Config, log zerolog.Logger) *Service {
	if cfg.Threshold <= 0 {
		cfg.Threshold = entity.DefaultMinStock
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = DefaultCooldown
	}
	return &Service{tx: tx, store: store, cooldown: cooldown, mailer: mailer, cfg: cfg, log: log, now: time.Now}
}

// CooldownKey clave del marcador para un registro y su umbral.
func CooldownKey(recordID string, threshold int) string {
	return fmt.Sprintf("stock-alert:%s:%d", recordID, threshold)
}

// Observe evalúa cada registro escrito. Nunca devuelve error: los fallos se registran.
func (s *Service) Observe(ctx context.Context, records []*entity.InventoryRecord) {
	for _, rec := range records {
		if rec == nil {
			continue
		}
		threshold := rec.Threshold(s.cfg.Threshold)
		stock := rec.EffectiveStock()
		s.notifyByMail(ctx, rec, stock, threshold)
		if err := s.sync(ctx, rec, stock, threshold); err != nil {
			s.log.Error().Err(err).Str("inventory_id", rec.ID).Msg("alertas: no se pudo sincronizar la alerta persistente")
		}
	}
}

// notifyByMail envía a lo sumo un correo por registro y umbral mientras el stock siga bajo.
// Si el stock se recupera se borra el marcador para que la próxima caída vuelva a avisar.
func (s *Service) notifyByMail(ctx context.Context, rec *entity.InventoryRecord, stock, threshold int) {
	if s.mailer == nil || s.cooldown == nil {
		return
	}
	key := CooldownKey(rec.ID, threshold)
	if stock >= threshold {
		if err := s.cooldown.Delete(ctx, key); err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("alertas: no se pudo borrar el marcador")
		}
		return
	}

	exists, err := s.cooldown.Exists(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("alertas: caché no disponible, se envía igual")
	}
	if exists {
		s.log.Debug().Str("key", key).Int("stock", stock).Msg("alertas: en enfriamiento")
		return
	}

	admins, err := s.store.Users().ListActiveByRole(ctx, entity.RoleAdmin)
	if err != nil {
		s.log.Error().Err(err).Msg("alertas: no se pudieron listar administradores")
		return
	}
	to := make([]string, 0, len(admins))
	for _, u := range admins {
		to = append(to, u.Email)
	}
	msg, err := notify.RenderStockAlert(to, s.mailData(ctx, rec, stock, threshold))
	if err != nil {
		s.log.Error().Err(err).Msg("alertas: no se pudo renderizar el correo")
		return
	}
	sent := s.mailer.Send(ctx, msg)
	if err := s.cooldown.Set(ctx, key, s.cfg.Cooldown); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("alertas: no se pudo guardar el marcador")
	}
	s.log.Info().Str("inventory_id", rec.ID).Int("stock", stock).Int("threshold", threshold).Int("recipients", sent).Msg("alerta de stock bajo enviada")
}

func (s *Service) mailData(ctx context.Context, rec *entity.InventoryRecord, stock, threshold int) notify.StockAlertMail {
	data := notify.StockAlertMail{InventoryID: rec.ID, ProductName: rec.ProductID, SizeName: rec.SizeID, Stock: stock, Threshold: threshold}
	if p, err := s.store.Products().GetByID(ctx, rec.ProductID); err == nil && p != nil {
		data.ProductName = p.Name
	}
	if sz, err := s.store.Sizes().GetByID(ctx, rec.SizeID); err == nil && sz != nil {
		data.SizeName = sz.Name
	}
	return data
}

// AlertType tipo de alerta para un stock y umbral; "" si no corresponde alerta.
func AlertType(stock, threshold int) string {
	switch {
	case stock <= 0:
		return entity.StockAlertOut
	case stock < threshold:
		return entity.StockAlertLow
	default:
		return ""
	}
}

// sync mantiene una sola alerta sin resolver por registro. Un cambio de tipo resuelve la anterior
// y abre una nueva; la recuperación del stock la resuelve.
func (s *Service) sync(ctx context.Context, rec *entity.InventoryRecord, stock, threshold int) error {
	want := AlertType(stock, threshold)
	return s.tx.RunInTx(ctx, func(tx repository.Store) error {
		active, err := tx.StockAlerts().GetActive(ctx, rec.ID)
		if err != nil {
			return err
		}
		now := s.now()
		if active != nil {
			if active.Type == want {
				return nil
			}
			if err := tx.StockAlerts().Resolve(ctx, active.ID, now); err != nil {
				return err
			}
		}
		if want == "" {
			return nil
		}
		alert := &entity.StockAlert{
			ID:          uuid.New().String(),
			InventoryID: rec.ID,
			ProductID:   rec.ProductID,
			SizeID:      rec.SizeID,
			Type:        want,
			Stock:       stock,
			Threshold:   threshold,
			CreatedAt:   now,
		}
		if err := tx.StockAlerts().Create(ctx, alert); err != nil {
			return err
		}
		n := &entity.StockNotification{
			ID:          uuid.New().String(),
			Type:        want,
			InventoryID: rec.ID,
			ProductID:   rec.ProductID,
			SizeID:      rec.SizeID,
			Message:     fmt.Sprintf("stock %d (umbral %d)", stock, threshold),
			CreatedAt:   now,
		}
		_, err = tx.StockAlerts().CreateNotification(ctx, n)
		return err
	})
}

// ListActive alertas sin resolver, más antiguas primero.
func (s *Service) ListActive(ctx context.Context) ([]dto.StockAlertResponse, error) {
	list, err := s.store.StockAlerts().ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.StockAlertResponse{
			ID:          a.ID,
			InventoryID: a.InventoryID,
			ProductID:   a.ProductID,
			SizeID:      a.SizeID,
			Type:        a.Type,
			Stock:       a.Stock,
			Threshold:   a.Threshold,
			CreatedAt:   a.CreatedAt,
		})
	}
	return out, nil
}
