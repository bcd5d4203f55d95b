package slot

import (
	"testing"

	"github.com/gonewx/solitaire/pkg/card"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/require"
)

const (
	testCardWidth  = 71
	testCardHeight = 96
)

type textureKey struct {
	card        card.Card
	highlighted bool
}

// fakeCache 记录引用计数，每个 (牌, 高亮) 返回固定的纹理
type fakeCache struct {
	refs     int
	slots    [2]*ebiten.Image
	textures map[textureKey]*ebiten.Image
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		slots: [2]*ebiten.Image{
			ebiten.NewImage(testCardWidth, testCardHeight),
			ebiten.NewImage(testCardWidth, testCardHeight),
		},
		textures: make(map[textureKey]*ebiten.Image),
	}
}

func (f *fakeCache) Ref()   { f.refs++ }
func (f *fakeCache) Unref() { f.refs-- }

func (f *fakeCache) SlotTexture(highlighted bool) *ebiten.Image {
	if highlighted {
		return f.slots[1]
	}
	return f.slots[0]
}

func (f *fakeCache) CardTexture(c card.Card, highlighted bool) *ebiten.Image {
	key := textureKey{card: c, highlighted: highlighted}
	img, ok := f.textures[key]
	if !ok {
		img = ebiten.NewImage(testCardWidth, testCardHeight)
		f.textures[key] = img
	}
	return img
}

type drawCall struct {
	img  *ebiten.Image
	x, y float64
}

// recorder 记录每次 DrawImage 的纹理和左上角位置
type recorder struct {
	calls []drawCall
}

func (r *recorder) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	x, y := op.GeoM.Apply(0, 0)
	r.calls = append(r.calls, drawCall{img: img, x: x, y: y})
}

func newPile(t *testing.T, cards string, exposed, dx, dy int) *card.Slot {
	t.Helper()
	cs, err := card.ParseList(cards)
	require.NoError(t, err)
	return &card.Slot{Cards: cs, Exposed: exposed, PixelDX: dx, PixelDY: dy}
}

func newRenderer(t *testing.T, fc *fakeCache, s *card.Slot) *Renderer {
	t.Helper()
	r, err := New(fc, s)
	require.NoError(t, err)
	return r
}
