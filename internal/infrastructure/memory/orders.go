package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

type orderRepo struct{ s *store }

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.do(func(st *state) error {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
		return nil
	})
	return out, err
}

func (r orderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r orderRepo) Update(_ context.Context, o *entity.Order) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.orders[o.ID]; !ok {
			return domain.ErrNotFound
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r orderRepo) FindForCart(_ context.Context, userID, cartID string, total decimal.Decimal) (*entity.Order, error) {
	var out *entity.Order
	err := r.s.do(func(st *state) error {
		for _, o := range st.orders {
			if o.UserID == userID && o.CartID == cartID && o.Total.Equal(total) {
				o := o
				out = &o
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r orderRepo) CreateLine(_ context.Context, l *entity.OrderLine) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.orders[l.OrderID]; !ok {
			return domain.ErrNotFound
		}
		st.orderLines = append(st.orderLines, *l)
		return nil
	})
}

func (r orderRepo) ListLines(_ context.Context, orderID string) ([]*entity.OrderLine, error) {
	var out []*entity.OrderLine
	err := r.s.do(func(st *state) error {
		for _, l := range st.orderLines {
			if l.OrderID == orderID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}

type paymentRepo struct{ s *store }

func (r paymentRepo) GetByTransactionForUpdate(_ context.Context, transactionID string) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.s.do(func(st *state) error {
		if p, ok := st.payments[transactionID]; ok {
			p.RawPayload = append([]byte(nil), p.RawPayload...)
			out = &p
		}
		return nil
	})
	return out, err
}

func (r paymentRepo) Upsert(_ context.Context, p *entity.Payment) error {
	return r.s.do(func(st *state) error {
		if existing, ok := st.payments[p.TransactionID]; ok {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
		}
		cp := *p
		cp.RawPayload = append([]byte(nil), p.RawPayload...)
		st.payments[p.TransactionID] = cp
		return nil
	})
}

type invoiceRepo struct{ s *store }

func (r invoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	return r.s.do(func(st *state) error {
		for _, other := range st.invoices {
			if other.OrderID == inv.OrderID || other.Number == inv.Number {
				return domain.ErrDuplicate
			}
		}
		st.invoices[inv.ID] = *inv
		return nil
	})
}

func (r invoiceRepo) CreateLine(_ context.Context, l *entity.InvoiceLine) error {
	return r.s.do(func(st *state) error {
		if _, ok := st.invoices[l.InvoiceID]; !ok {
			return domain.ErrNotFound
		}
		st.invoiceLines = append(st.invoiceLines, *l)
		return nil
	})
}

func (r invoiceRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.do(func(st *state) error {
		if inv, ok := st.invoices[id]; ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r invoiceRepo) GetByOrder(_ context.Context, orderID string) (*entity.Invoice, error) {
	var out *entity.Invoice
	err := r.s.do(func(st *state) error {
		for _, inv := range st.invoices {
			if inv.OrderID == orderID {
				inv := inv
				out = &inv
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r invoiceRepo) ListLines(_ context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	var out []*entity.InvoiceLine
	err := r.s.do(func(st *state) error {
		for _, l := range st.invoiceLines {
			if l.InvoiceID == invoiceID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	return out, err
}
