package couponcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_Format(t *testing.T) {
	gen := NewGenerator("tee", 10)
	code := gen.Generate()

	assert.Regexp(t, regexp.MustCompile(`^TEE[0-9A-F]{10}$`), code)
}

func TestGenerator_ClampsLength(t *testing.T) {
	assert.Len(t, NewGenerator("", 2).Generate(), minLength)
	assert.Len(t, NewGenerator("", 100).Generate(), maxLength)
}

func TestGenerator_Distinct(t *testing.T) {
	gen := NewGenerator("", 12)
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		seen[gen.Generate()] = struct{}{}
	}

	assert.Len(t, seen, 1000)
}
