package service

// QRCodeService renders coupon codes as scannable images.
type QRCodeService interface {
	// GenerateCouponQR returns a PNG encoding the coupon code.
	GenerateCouponQR(code string) ([]byte, error)
}
