package actors

import (
	"testing"

	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	refs     int
	textures map[card.Card]*ebiten.Image
	back     *ebiten.Image
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		textures: make(map[card.Card]*ebiten.Image),
		back:     ebiten.NewImage(71, 96),
	}
}

func (f *fakeCache) Ref()   { f.refs++ }
func (f *fakeCache) Unref() { f.refs-- }

func (f *fakeCache) CardTexture(c card.Card, highlighted bool) *ebiten.Image {
	if c.FaceDown() {
		return f.back
	}
	img, ok := f.textures[c]
	if !ok {
		img = ebiten.NewImage(71, 96)
		f.textures[c] = img
	}
	return img
}

type drawCall struct {
	img  *ebiten.Image
	geom ebiten.GeoM
}

type recorder struct {
	calls []drawCall
}

func (r *recorder) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	r.calls = append(r.calls, drawCall{img: img, geom: op.GeoM})
}

func TestCardActorLifecycle(t *testing.T) {
	fc := newFakeCache()
	kh := card.New(card.King, card.Hearts, false)

	a := NewCardActor(fc, kh)
	assert.Equal(t, 1, fc.refs)
	assert.Equal(t, "KH", a.Name())
	assert.Equal(t, kh, a.Card())

	w, h := a.Size()
	assert.Equal(t, 71.0, w)
	assert.Equal(t, 96.0, h)

	parent := &CardActor{}
	require.NoError(t, a.SetParent(&parent.Actor))

	a.Destroy()
	assert.True(t, a.Destroyed())
	assert.Nil(t, a.Parent())
	assert.Equal(t, 0, fc.refs)

	a.Destroy()
	assert.Equal(t, 0, fc.refs, "重复销毁不会重复释放引用")

	rec := &recorder{}
	a.Paint(rec, ebiten.GeoM{})
	assert.Empty(t, rec.calls)
}

func TestCardActorPaintPosition(t *testing.T) {
	fc := newFakeCache()
	kh := card.New(card.King, card.Hearts, false)
	a := NewCardActor(fc, kh)
	a.SetPosition(100, 50)

	var parent ebiten.GeoM
	parent.Translate(10, 20)

	rec := &recorder{}
	a.Paint(rec, parent)
	require.Len(t, rec.calls, 1)
	assert.Same(t, fc.textures[kh], rec.calls[0].img)

	x, y := rec.calls[0].geom.Apply(0, 0)
	assert.InDelta(t, 110, x, 1e-9)
	assert.InDelta(t, 70, y, 1e-9)
}

func TestCardActorFlipShowsOtherFace(t *testing.T) {
	fc := newFakeCache()
	up := card.New(card.Ace, card.Spades, false)
	a := NewCardActor(fc, up)

	rec := &recorder{}
	a.SetRotationY(180, 35.5, 48)
	assert.True(t, a.ShowingBack())
	a.Paint(rec, ebiten.GeoM{})
	assert.Same(t, fc.back, rec.calls[0].img, "旋转 180° 时显示牌背")

	a.SetRotationY(0, 35.5, 48)
	assert.False(t, a.ShowingBack())
	a.Paint(rec, ebiten.GeoM{})
	assert.Same(t, fc.textures[up], rec.calls[1].img)

	// 90° 时宽度压缩为 0：左右两边都落在旋转中心
	a.SetRotationY(90, 35.5, 48)
	a.Paint(rec, ebiten.GeoM{})
	x0, _ := rec.calls[2].geom.Apply(0, 0)
	x1, _ := rec.calls[2].geom.Apply(71, 0)
	assert.InDelta(t, 35.5, x0, 1e-6)
	assert.InDelta(t, 35.5, x1, 1e-6)
}

func TestCardActorDepthScale(t *testing.T) {
	fc := newFakeCache()
	a := NewCardActor(fc, card.New(5, card.Clubs, false))
	a.SetPerspective(480)

	assert.Equal(t, 1.0, a.DepthScale())

	a.SetDepth(96)
	assert.InDelta(t, 1.25, a.DepthScale(), 1e-9)

	rec := &recorder{}
	a.Paint(rec, ebiten.GeoM{})
	// 以牌中心缩放，中心点位置不变
	cx, cy := rec.calls[0].geom.Apply(35.5, 48)
	assert.InDelta(t, 35.5, cx, 1e-9)
	assert.InDelta(t, 48, cy, 1e-9)

	a.SetDepth(1000)
	assert.InDelta(t, 480, a.DepthScale(), 1e-9, "深度超过观察距离时被截断")
}

func TestCardActorAllocatePreferredSize(t *testing.T) {
	fc := newFakeCache()
	a := NewCardActor(fc, card.New(5, card.Clubs, false))
	a.SetPosition(12, 34)
	a.SetSize(1, 1)

	a.AllocatePreferredSize()
	box := a.Allocation()
	assert.Equal(t, scene.Box{X1: 12, Y1: 34, X2: 83, Y2: 130}, box)
	w, h := a.Size()
	assert.Equal(t, 71.0, w)
	assert.Equal(t, 96.0, h)
}
