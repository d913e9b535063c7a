// Package memory is the in-process entity store. Each entity kind lives in its
// own table with its own lock and id sequence; transactions are serialized by
// a store-wide lock and rolled back through an undo log.
package memory

import (
	"slices"
	"sync"
	"time"

	"teeshop/internal/domain/entity"
)

// Store owns every entity table.
type Store struct {
	txMu sync.Mutex
	now  func() time.Time

	users        *table[entity.User]
	applications *table[entity.CreatorApplication]
	designs      *table[entity.Design]
	products     *table[entity.Product]
	orders       *table[entity.Order]
	orderItems   *table[entity.OrderItem]
	reviews      *table[entity.Review]
	coupons      *table[entity.Coupon]
	userCoupons  *table[entity.UserCoupon]
	purchases    *table[entity.CouponPurchase]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		now: time.Now,
		users: newTable(kind[entity.User]{
			assign: func(u *entity.User, id int64, now time.Time) {
				u.ID, u.CreatedAt = id, now
			},
			clone: func(u *entity.User) *entity.User {
				c := *u

				return &c
			},
		}),
		applications: newTable(kind[entity.CreatorApplication]{
			assign: func(a *entity.CreatorApplication, id int64, now time.Time) {
				a.ID, a.CreatedAt = id, now
			},
			clone: func(a *entity.CreatorApplication) *entity.CreatorApplication {
				c := *a

				return &c
			},
		}),
		designs: newTable(kind[entity.Design]{
			assign: func(d *entity.Design, id int64, now time.Time) {
				d.ID, d.CreatedAt = id, now
			},
			clone: func(d *entity.Design) *entity.Design {
				c := *d
				c.Categories = slices.Clone(d.Categories)
				c.CanvasJSON = slices.Clone(d.CanvasJSON)

				return &c
			},
		}),
		products: newTable(kind[entity.Product]{
			assign: func(p *entity.Product, id int64, now time.Time) {
				p.ID, p.CreatedAt = id, now
			},
			clone: func(p *entity.Product) *entity.Product {
				c := *p
				c.Colors = slices.Clone(p.Colors)
				c.Sizes = slices.Clone(p.Sizes)

				return &c
			},
		}),
		orders: newTable(kind[entity.Order]{
			assign: func(o *entity.Order, id int64, now time.Time) {
				o.ID, o.CreatedAt = id, now
			},
			clone: func(o *entity.Order) *entity.Order {
				c := *o

				return &c
			},
		}),
		orderItems: newTable(kind[entity.OrderItem]{
			assign: func(i *entity.OrderItem, id int64, _ time.Time) {
				i.ID = id
			},
			clone: func(i *entity.OrderItem) *entity.OrderItem {
				c := *i

				return &c
			},
		}),
		reviews: newTable(kind[entity.Review]{
			assign: func(r *entity.Review, id int64, now time.Time) {
				r.ID, r.CreatedAt = id, now
			},
			clone: func(r *entity.Review) *entity.Review {
				c := *r

				return &c
			},
		}),
		coupons: newTable(kind[entity.Coupon]{
			assign: func(c *entity.Coupon, id int64, now time.Time) {
				c.ID, c.CreatedAt = id, now
			},
			clone: func(c *entity.Coupon) *entity.Coupon {
				cp := *c

				return &cp
			},
		}),
		userCoupons: newTable(kind[entity.UserCoupon]{
			assign: func(uc *entity.UserCoupon, id int64, now time.Time) {
				uc.ID, uc.CreatedAt = id, now
			},
			clone: func(uc *entity.UserCoupon) *entity.UserCoupon {
				c := *uc

				return &c
			},
		}),
		purchases: newTable(kind[entity.CouponPurchase]{
			assign: func(p *entity.CouponPurchase, id int64, now time.Time) {
				p.ID, p.CreatedAt = id, now
			},
			clone: func(p *entity.CouponPurchase) *entity.CouponPurchase {
				c := *p

				return &c
			},
		}),
	}
}

// txScope collects undo actions for the writes of one transaction. A nil scope
// means the write is outside any transaction and is not undoable.
type txScope struct {
	undo []func()
}

func (s *txScope) record(fn func()) {
	if s == nil {
		return
	}
	s.undo = append(s.undo, fn)
}

func (s *txScope) rollback() {
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
	s.undo = nil
}
