package postgres

import (
	"encoding/json"
	"slices"

	"teeshop/internal/domain/entity"
	"teeshop/internal/infra/persistence/model"

	"gorm.io/datatypes"
)

func toUserDomain(m *model.UserModel) *entity.User {
	return &entity.User{
		ID:             m.ID,
		ExternalAuthID: m.ExternalAuthID,
		Username:       m.Username,
		Email:          m.Email,
		Role:           entity.Role(m.Role),
		DisplayName:    m.DisplayName,
		Bio:            m.Bio,
		Avatar:         m.Avatar,
		CreatedAt:      m.CreatedAt,
	}
}

func fromUserDomain(u *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:             u.ID,
		ExternalAuthID: u.ExternalAuthID,
		Username:       u.Username,
		UsernameKey:    normalizeKey(u.Username),
		Email:          u.Email,
		EmailKey:       normalizeKey(u.Email),
		Role:           string(u.Role),
		DisplayName:    u.DisplayName,
		Bio:            u.Bio,
		Avatar:         u.Avatar,
		CreatedAt:      u.CreatedAt,
	}
}

func toApplicationDomain(m *model.CreatorApplicationModel) *entity.CreatorApplication {
	return &entity.CreatorApplication{
		ID:        m.ID,
		UserID:    m.UserID,
		Status:    entity.ApplicationStatus(m.Status),
		Portfolio: m.Portfolio,
		Sample:    m.Sample,
		Reason:    m.Reason,
		CreatedAt: m.CreatedAt,
	}
}

func fromApplicationDomain(a *entity.CreatorApplication) *model.CreatorApplicationModel {
	return &model.CreatorApplicationModel{
		ID:        a.ID,
		UserID:    a.UserID,
		Status:    string(a.Status),
		Portfolio: a.Portfolio,
		Sample:    a.Sample,
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

func toDesignDomain(m *model.DesignModel) *entity.Design {
	d := &entity.Design{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		ImageURL:    m.ImageURL,
		Categories:  slices.Clone([]string(m.Categories)),
		IsPublic:    m.IsPublic,
		IsApproved:  m.IsApproved,
		CreatedAt:   m.CreatedAt,
	}
	if len(m.CanvasJSON) > 0 {
		d.CanvasJSON = json.RawMessage(slices.Clone([]byte(m.CanvasJSON)))
	}

	return d
}

func fromDesignDomain(d *entity.Design) *model.DesignModel {
	m := &model.DesignModel{
		ID:          d.ID,
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Categories:  datatypes.NewJSONSlice(d.Categories),
		IsPublic:    d.IsPublic,
		IsApproved:  d.IsApproved,
		CreatedAt:   d.CreatedAt,
	}
	if len(d.CanvasJSON) > 0 {
		m.CanvasJSON = datatypes.JSON(d.CanvasJSON)
	}

	return m
}

func toProductDomain(m *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		DesignID:  m.DesignID,
		CreatorID: m.CreatorID,
		Colors:    slices.Clone([]string(m.Colors)),
		Sizes:     slices.Clone([]string(m.Sizes)),
		Category:  m.Category,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}

func fromProductDomain(p *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		DesignID:  p.DesignID,
		CreatorID: p.CreatorID,
		Colors:    datatypes.NewJSONSlice(p.Colors),
		Sizes:     datatypes.NewJSONSlice(p.Sizes),
		Category:  p.Category,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
	}
}

func toOrderDomain(m *model.OrderModel) *entity.Order {
	return &entity.Order{
		ID:              m.ID,
		UserID:          m.UserID,
		Status:          entity.OrderStatus(m.Status),
		Total:           m.Total,
		ShippingAddress: m.ShippingAddress,
		PaymentMethod:   m.PaymentMethod,
		CreatedAt:       m.CreatedAt,
	}
}

func toOrderItemDomain(m *model.OrderItemModel) *entity.OrderItem {
	return &entity.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		Color:     m.Color,
		Size:      m.Size,
		Price:     m.Price,
	}
}

func fromOrderDomain(o *entity.Order, items []*entity.OrderItem) *model.OrderModel {
	m := &model.OrderModel{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		Total:           o.Total,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		CreatedAt:       o.CreatedAt,
		Items:           make([]model.OrderItemModel, 0, len(items)),
	}
	for _, item := range items {
		m.Items = append(m.Items, model.OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Color:     item.Color,
			Size:      item.Size,
			Price:     item.Price,
		})
	}

	return m
}

func toReviewDomain(m *model.ReviewModel) *entity.Review {
	return &entity.Review{
		ID:        m.ID,
		UserID:    m.UserID,
		ProductID: m.ProductID,
		Rating:    m.Rating,
		Comment:   m.Comment,
		CreatedAt: m.CreatedAt,
	}
}

func toCouponDomain(m *model.CouponModel) *entity.Coupon {
	return &entity.Coupon{
		ID:              m.ID,
		Code:            m.Code,
		DiscountPercent: m.DiscountPercent,
		MaxUses:         m.MaxUses,
		CurrentUses:     m.CurrentUses,
		ExpiresAt:       m.ExpiresAt,
		CreatedAt:       m.CreatedAt,
		CreatedBy:       m.CreatedBy,
		IsActive:        m.IsActive,
	}
}

func fromCouponDomain(c *entity.Coupon) *model.CouponModel {
	return &model.CouponModel{
		ID:              c.ID,
		Code:            c.Code,
		CodeKey:         entity.NormalizeCouponCode(c.Code),
		DiscountPercent: c.DiscountPercent,
		MaxUses:         c.MaxUses,
		CurrentUses:     c.CurrentUses,
		ExpiresAt:       c.ExpiresAt,
		CreatedBy:       c.CreatedBy,
		IsActive:        c.IsActive,
		CreatedAt:       c.CreatedAt,
	}
}

func toUserCouponDomain(m *model.UserCouponModel) *entity.UserCoupon {
	return &entity.UserCoupon{
		ID:        m.ID,
		UserID:    m.UserID,
		CouponID:  m.CouponID,
		CreatedAt: m.CreatedAt,
		UsedAt:    m.UsedAt,
		OrderID:   m.OrderID,
	}
}

func toPurchaseDomain(m *model.CouponPurchaseModel) *entity.CouponPurchase {
	return &entity.CouponPurchase{
		ID:              m.ID,
		UserID:          m.UserID,
		DiscountPercent: m.DiscountPercent,
		Amount:          m.Amount,
		Currency:        m.Currency,
		GatewayOrderID:  m.GatewayOrderID,
		PaymentID:       m.PaymentID,
		Status:          entity.PurchaseStatus(m.Status),
		UserCouponID:    m.UserCouponID,
		CreatedAt:       m.CreatedAt,
		CompletedAt:     m.CompletedAt,
	}
}

func fromPurchaseDomain(p *entity.CouponPurchase) *model.CouponPurchaseModel {
	return &model.CouponPurchaseModel{
		ID:              p.ID,
		UserID:          p.UserID,
		DiscountPercent: p.DiscountPercent,
		Amount:          p.Amount,
		Currency:        p.Currency,
		GatewayOrderID:  p.GatewayOrderID,
		PaymentID:       p.PaymentID,
		Status:          string(p.Status),
		UserCouponID:    p.UserCouponID,
		CreatedAt:       p.CreatedAt,
		CompletedAt:     p.CompletedAt,
	}
}
