// Package reports reporte de ventas por rango de fechas, persistido para consulta posterior.
package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/dto"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/report"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// Service genera y consulta reportes de ventas.
type Service struct {
	tx    repository.TxRunner
	store repository.Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewService construye el servicio.
func NewService(tx repository.TxRunner, store repository.Store, log zerolog.Logger) *Service {
	return &Service{tx: tx, store: store, log: log, now: time.Now}
}

// Build regenera el reporte de la tupla (start, end, onlyApproved): borra el anterior,
// agrega las líneas de factura emitidas en [start, end) y guarda cabecera y líneas.
func (s *Service) Build(ctx context.Context, in dto.BuildReportRequest) (*dto.SalesReportResponse, error) {
	start, err := time.Parse(dateLayout, in.Start)
	if err != nil {
		return nil, domain.Invalid("start", "formato esperado YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, in.End)
	if err != nil {
		return nil, domain.Invalid("end", "formato esperado YYYY-MM-DD")
	}
	start, end = report.NormalizeRange(start, end)

	var (
		header *entity.SalesReport
		lines  []*entity.SalesReportLine
	)
	err = s.tx.RunInTx(ctx, func(tx repository.Store) error {
		if err := tx.Reports().DeleteByRange(ctx, start, end, in.OnlyApproved); err != nil {
			return err
		}
		sales, tickets, err := tx.Reports().AggregateSales(ctx, start, end, in.OnlyApproved)
		if err != nil {
			return err
		}
		revenue, items := report.Totals(sales)
		header = &entity.SalesReport{
			ID:           uuid.New().String(),
			Start:        start,
			End:          end,
			OnlyApproved: in.OnlyApproved,
			TotalRevenue: revenue,
			TotalItems:   items,
			TicketCount:  tickets,
			CreatedAt:    s.now(),
		}
		top, bottom := report.Rank(sales)
		if top != nil {
			header.TopProductID, header.TopProductName = top.ProductID, top.ProductName
			header.TopQuantity, header.TopRevenue = top.Quantity, top.Revenue
		}
		if bottom != nil {
			header.BottomProductID, header.BottomProductName = bottom.ProductID, bottom.ProductName
			header.BottomQuantity, header.BottomRevenue = bottom.Quantity, bottom.Revenue
		}
		if err := tx.Reports().Create(ctx, header); err != nil {
			return err
		}
		lines = make([]*entity.SalesReportLine, 0, len(sales))
		for _, ps := range sales {
			line := &entity.SalesReportLine{
				ID:          uuid.New().String(),
				ReportID:    header.ID,
				ProductID:   ps.ProductID,
				ProductName: ps.ProductName,
				Quantity:    ps.Quantity,
				Revenue:     ps.Revenue,
				Tickets:     ps.Tickets,
			}
			if err := tx.Reports().CreateLine(ctx, line); err != nil {
				return err
			}
			lines = append(lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Time("start", start).Time("end", end).Bool("only_approved", in.OnlyApproved).
		Int("products", len(lines)).Int("tickets", header.TicketCount).
		Msg("reporte de ventas generado")
	return toResponse(header, lines), nil
}

// Get reporte guardado con sus líneas.
func (s *Service) Get(ctx context.Context, id string) (*dto.SalesReportResponse, error) {
	header, err := s.store.Reports().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := s.store.Reports().ListLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(header, lines), nil
}

func toResponse(h *entity.SalesReport, lines []*entity.SalesReportLine) *dto.SalesReportResponse {
	out := &dto.SalesReportResponse{
		ID:           h.ID,
		Start:        h.Start,
		End:          h.End,
		OnlyApproved: h.OnlyApproved,
		TotalRevenue: h.TotalRevenue,
		TotalItems:   h.TotalItems,
		TicketCount:  h.TicketCount,
		Lines:        make([]dto.ReportLineResponse, 0, len(lines)),
		CreatedAt:    h.CreatedAt,
	}
	if h.TopProductID != "" {
		out.Top = &dto.ReportProductResponse{ProductID: h.TopProductID, ProductName: h.TopProductName, Quantity: h.TopQuantity, Revenue: h.TopRevenue}
	}
	if h.BottomProductID != "" {
		out.Bottom = &dto.ReportProductResponse{ProductID: h.BottomProductID, ProductName: h.BottomProductName, Quantity: h.BottomQuantity, Revenue: h.BottomRevenue}
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.ReportLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Revenue:     l.Revenue,
			Tickets:     l.Tickets,
		})
	}
	return out
}
