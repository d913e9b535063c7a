// Package couponcode generates random coupon codes.
package couponcode

import (
	"strings"

	"teeshop/internal/domain/service"

	"github.com/google/uuid"
)

const (
	minLength = 6
	maxLength = 32
)

type generator struct {
	prefix string
	length int
}

// NewGenerator returns a generator of upper-case hex codes of the given length
// after prefix. Length is clamped to [6, 32].
func NewGenerator(prefix string, length int) service.CouponCodeGenerator {
	length = max(minLength, min(length, maxLength))

	return &generator{prefix: strings.ToUpper(prefix), length: length}
}

// Generate draws from a random (v4) UUID. Uniqueness is still enforced by
// the store; callers retry on a duplicate.
func (g *generator) Generate() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")

	return g.prefix + strings.ToUpper(raw[:g.length])
}
