package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
)

type reportRepo struct{ s *store }

func (r reportRepo) DeleteByRange(_ context.Context, start, end time.Time, onlyApproved bool) error {
	return r.s.do(func(st *state) error {
		for id, rep := range st.reports {
			if rep.Start.Equal(start) && rep.End.Equal(end) && rep.OnlyApproved == onlyApproved {
				delete(st.reports, id)
				kept := st.reportLines[:0]
				for _, l := range st.reportLines {
					if l.ReportID != id {
						kept = append(kept, l)
					}
				}
				st.reportLines = kept
			}
		}
		return nil
	})
}

// AggregateSales agrupa las líneas de facturas emitidas en [start, end) por producto.
func (r reportRepo) AggregateSales(_ context.Context, start, end time.Time, onlyApproved bool) ([]repository.ProductSales, int, error) {
	var out []repository.ProductSales
	tickets := 0
	err := r.s.do(func(st *state) error {
		included := map[string]bool{}
		for id, inv := range st.invoices {
			if inv.IssuedAt.Before(start) || !inv.IssuedAt.Before(end) {
				continue
			}
			if onlyApproved {
				p, ok := st.payments[inv.TransactionID]
				if !ok || p.InternalStatus != entity.PaymentStatusPaid {
					continue
				}
			}
			included[id] = true
		}

		byProduct := map[string]*repository.ProductSales{}
		ticketsByProduct := map[string]map[string]struct{}{}
		withLines := map[string]struct{}{}
		for _, l := range st.invoiceLines {
			if !included[l.InvoiceID] {
				continue
			}
			ps, ok := byProduct[l.ProductID]
			if !ok {
				name := l.ProductName
				if p, found := st.products[l.ProductID]; found {
					name = p.Name
				}
				ps = &repository.ProductSales{ProductID: l.ProductID, ProductName: name, Revenue: decimal.Zero}
				byProduct[l.ProductID] = ps
				ticketsByProduct[l.ProductID] = map[string]struct{}{}
			}
			ps.Quantity += l.Quantity
			ps.Revenue = ps.Revenue.Add(l.Subtotal)
			ticketsByProduct[l.ProductID][l.InvoiceID] = struct{}{}
			withLines[l.InvoiceID] = struct{}{}
		}
		for id, ps := range byProduct {
			ps.Tickets = len(ticketsByProduct[id])
			out = append(out, *ps)
		}
		tickets = len(withLines)
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, tickets, err
}

func (r reportRepo) Create(_ context.Context, rep *entity.SalesReport) error {
	return r.s.do(func(st *state) error {
		for _, other := range st.reports {
			if other.Start.Equal(rep.Start) && other.End.Equal(rep.End) && other.OnlyApproved == rep.OnlyApproved {
				return domain.ErrDuplicate
			}
		}
		st.reports[rep.ID] = *rep
		return nil
	})
}

func (r reportRepo) CreateLine(_ context.Context, l *entity.SalesReportLine) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.reports[l.ReportID]; !ok {
			return domain.ErrNotFound
		}
		st.reportLines = append(st.reportLines, *l)
		return nil
	})
}

func (r reportRepo) GetByID(_ context.Context, id string) (*entity.SalesReport, error) {
	var out *entity.SalesReport
	err := r.s.do(func(st *state) error {
		if rep, ok := st.reports[id]; ok {
			out = &rep
		}
		return nil
	})
	return out, err
}

func (r reportRepo) ListLines(_ context.Context, reportID string) ([]*entity.SalesReportLine, error) {
	var out []*entity.SalesReportLine
	err := r.s.do(func(st *state) error {
		for _, l := range st.reportLines {
			if l.ReportID == reportID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, err
}
