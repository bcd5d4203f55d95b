package slot

import (
	"testing"
	"time"

	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewValidatesCollaborators 测试构造参数校验
func TestNewValidatesCollaborators(t *testing.T) {
	fc := newFakeCache()

	_, err := New(nil, &card.Slot{})
	assert.ErrorIs(t, err, ErrNilCache)

	_, err = New(fc, nil)
	assert.ErrorIs(t, err, ErrNilSlot)
	assert.Equal(t, 0, fc.refs, "失败的构造不应持有缓存引用")

	r := newRenderer(t, fc, &card.Slot{})
	assert.Equal(t, 1, fc.refs)
	assert.Equal(t, NoHighlight, r.Highlight())
	assert.False(t, r.Animating())
	assert.Equal(t, 0.0, r.Progress())
}

// TestDisposeReleasesEverything 测试释放渲染器
func TestDisposeReleasesEverything(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS 2H 3D", 3, 0, 18))

	require.NoError(t, r.SetAnimations([]AnimStart{{X: 10, Y: 10}, {X: 20, Y: 20}}))
	assert.Equal(t, 3, fc.refs, "渲染器一个引用，每张动画牌一个引用")

	r.Dispose()
	assert.True(t, r.Disposed())
	assert.Equal(t, 0, fc.refs)
	assert.Equal(t, 0, r.AnimationCount())
	assert.False(t, r.timeline.IsPlaying())

	r.Dispose()
	assert.Equal(t, 0, fc.refs, "重复 Dispose 不会重复释放")

	assert.ErrorIs(t, r.SetAnimations(nil), ErrDisposed)
	r.Update(100 * time.Millisecond)

	rec := &recorder{}
	r.Paint(rec, ebiten.GeoM{})
	assert.Empty(t, rec.calls)
}

// TestHighlight 测试高亮设置
func TestHighlight(t *testing.T) {
	stage := scene.NewStage(800, 600)
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS 2H 3D", 3, 0, 18))
	require.NoError(t, stage.Add(r))
	stage.TakeRedraw()

	r.SetHighlight(2)
	assert.Equal(t, 2, r.Highlight())
	assert.Equal(t, 1, stage.TakeRedraw())

	r.SetHighlight(NoHighlight)
	assert.Equal(t, NoHighlight, r.Highlight())

	r.SetHighlight(-7)
	assert.Equal(t, NoHighlight, r.Highlight(), "负数统一视为关闭高亮")
}

// TestAllocatePropagatesToAnimatedCards 测试布局传递给动画牌
func TestAllocatePropagatesToAnimatedCards(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS 2H 3D", 2, 0, 18))
	require.NoError(t, r.SetAnimations([]AnimStart{{X: 5, Y: 7}, {X: 40, Y: 3}}))

	box := scene.Box{X1: 100, Y1: 50, X2: 171, Y2: 182}
	r.Allocate(box)
	assert.Equal(t, box, r.Allocation())

	want := []scene.Box{
		{X1: 5, Y1: 7, X2: 5 + testCardWidth, Y2: 7 + testCardHeight},
		{X1: 40, Y1: 3, X2: 40 + testCardWidth, Y2: 3 + testCardHeight},
	}
	for i, n := range r.Children() {
		assert.Equal(t, want[i], n.Base().Allocation())
	}
}

// TestSetPerspectiveAppliesToLiveCards 测试观察距离作用于进行中的动画牌
func TestSetPerspectiveAppliesToLiveCards(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS", 1, 0, 0))
	require.NoError(t, r.SetAnimations([]AnimStart{{}}))

	r.SetPerspective(192)
	rec := r.records[0]
	rec.actor.SetDepth(96)
	assert.InDelta(t, 2.0, rec.actor.DepthScale(), 1e-9)

	r.SetPerspective(0)
	assert.InDelta(t, 520.0/(520.0-96.0), rec.actor.DepthScale(), 1e-9)
}
