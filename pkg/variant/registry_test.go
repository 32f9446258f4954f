package variant_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tobagin/draughts-core/pkg/variant"
)

func TestAllSixteenVariantsRegistered(t *testing.T) {
	all := variant.All()
	assert.Len(t, all, 16)

	seen := map[variant.ID]bool{}
	for _, v := range all {
		assert.False(t, seen[v.ID], "duplicate variant id %v", v.ID)
		seen[v.ID] = true
		assert.Contains(t, []int{8, 10, 12}, v.BoardSize)
		assert.NotEmpty(t, v.DisplayName)
	}
}

func TestByIDUnknown(t *testing.T) {
	_, err := variant.ByID("not-a-variant")
	assert.Error(t, err)
}

func TestStartingLayoutSymmetric(t *testing.T) {
	for _, v := range variant.All() {
		pieces := v.StartingLayout()
		var red, black int
		for _, p := range pieces {
			if p.Colour.String() == "red" {
				red++
			} else {
				black++
			}
			assert.True(t, p.Position.IsDark())
		}
		assert.Equal(t, red, black, "variant %v starting layout must be symmetric", v.ID)
		assert.NotZero(t, red)
	}
}
