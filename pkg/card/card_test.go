package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCardEncoding 测试点数、花色、朝向的编码
func TestCardEncoding(t *testing.T) {
	tests := []struct {
		name     string
		rank     int
		suit     Suit
		faceDown bool
		want     string
	}{
		{"黑桃A正面", Ace, Spades, false, "AS"},
		{"红桃K背面", King, Hearts, true, "*KH"},
		{"方块10", 10, Diamonds, false, "TD"},
		{"梅花2", 2, Clubs, false, "2C"},
		{"王牌", Joker, Clubs, false, "JK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.rank, tt.suit, tt.faceDown)
			assert.Equal(t, tt.rank, c.Rank())
			assert.Equal(t, tt.faceDown, c.FaceDown())
			if tt.rank != Joker {
				assert.Equal(t, tt.suit, c.Suit())
			}
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestWithFaceDownKeepsIdentity(t *testing.T) {
	c := New(Queen, Diamonds, false)
	down := c.WithFaceDown(true)

	assert.True(t, down.FaceDown())
	assert.Equal(t, c.Rank(), down.Rank())
	assert.Equal(t, c.Suit(), down.Suit())
	assert.Equal(t, c, down.WithFaceDown(false))
	assert.True(t, c.IsRed())
	assert.False(t, New(Ace, Spades, false).IsRed())
}

func TestParse(t *testing.T) {
	c, err := Parse("*qh")
	require.NoError(t, err)
	assert.Equal(t, New(Queen, Hearts, true), c)

	for _, bad := range []string{"", "1H", "AX", "ASD"} {
		_, err := Parse(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestParseList(t *testing.T) {
	cards, err := ParseList("AS 2H  *KD")
	require.NoError(t, err)
	require.Len(t, cards, 3)
	assert.Equal(t, "AS", cards[0].String())
	assert.Equal(t, "2H", cards[1].String())
	assert.Equal(t, "*KD", cards[2].String())

	_, err = ParseList("AS ZZ")
	assert.Error(t, err)
}
