package service

// Outcome labels for business metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// BusinessMetrics records domain-level counters.
type BusinessMetrics interface {
	CouponRedeemed(outcome string)
	CouponPurchased(outcome string)
	ModerationDecided(kind, decision string)
}
