package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voyageur/backend/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestNewPaginationParams_Defaults(t *testing.T) {
	p := domain.NewPaginationParams(nil, nil)

	assert.Equal(t, 1, p.Page)
	assert.Zero(t, p.Limit, "no limit means the whole collection is returned")
	assert.Zero(t, p.Offset())
}

func TestNewPaginationParams_CapsLimit(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(3), intPtr(500))

	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPaginationParams_IgnoresInvalid(t *testing.T) {
	p := domain.NewPaginationParams(intPtr(0), intPtr(-5))

	assert.Equal(t, 1, p.Page)
	assert.Zero(t, p.Limit)
}
