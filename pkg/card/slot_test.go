package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlot(t *testing.T, cards string, exposed int) *Slot {
	t.Helper()
	cs, err := ParseList(cards)
	require.NoError(t, err)
	return &Slot{Cards: cs, Exposed: exposed, PixelDY: 18}
}

func TestSlotValidate(t *testing.T) {
	assert.NoError(t, testSlot(t, "AS 2S 3S", 3).Validate())
	assert.NoError(t, testSlot(t, "", 0).Validate())
	assert.Error(t, testSlot(t, "AS", 2).Validate())
	assert.Error(t, (&Slot{Exposed: -1}).Validate())
}

func TestSlotTakeAndPush(t *testing.T) {
	src := testSlot(t, "*AS *2S 3S 4S", 2)
	dst := testSlot(t, "KH", 1)

	moved := src.Take(2)
	require.Len(t, moved, 2)
	assert.Equal(t, "3S", moved[0].String())
	assert.Equal(t, "4S", moved[1].String())
	assert.Equal(t, 2, src.Len())
	assert.Equal(t, 0, src.Exposed)

	dst.Push(moved...)
	assert.Equal(t, 3, dst.Len())
	assert.Equal(t, 3, dst.Exposed)
	assert.Equal(t, 0, dst.FirstExposed())

	assert.Nil(t, src.Take(0))
	assert.Len(t, src.Take(10), 2)
	assert.Equal(t, 0, src.Len())
}

func TestSlotCardOffset(t *testing.T) {
	s := &Slot{PixelDX: 3, PixelDY: 18}
	x, y := s.CardOffset(2)
	assert.Equal(t, 6, x)
	assert.Equal(t, 36, y)
}
