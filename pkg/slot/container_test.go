package slot

import (
	"testing"

	"github.com/gonewx/solitaire/pkg/actors"
	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStageWith(t *testing.T, r *Renderer) *scene.Stage {
	t.Helper()
	stage := scene.NewStage(800, 600)
	require.NoError(t, stage.Add(r))
	return stage
}

// TestChildrenFollowBatchOrder 测试子节点按批次顺序
func TestChildrenFollowBatchOrder(t *testing.T) {
	fc := newFakeCache()
	pile := newPile(t, "AS 2H 3D", 3, 0, 18)
	r := newRenderer(t, fc, pile)
	assert.Empty(t, r.Children())

	require.NoError(t, r.SetAnimations([]AnimStart{{}, {}, {}}))

	children := r.Children()
	require.Len(t, children, 3)
	for i, n := range children {
		assert.Equal(t, pile.Cards[i].String(), n.Base().Name())
	}

	var visited []string
	r.ForEachChild(func(n scene.Node) {
		visited = append(visited, n.Base().Name())
	})
	assert.Equal(t, []string{"AS", "2H", "3D"}, visited)

	dump := scene.Dump(r)
	assert.Contains(t, dump, "slot")
	assert.Contains(t, dump, "  2H")
}

// TestAddIsRefused 测试外部添加子节点被拒绝
func TestAddIsRefused(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS", 1, 0, 0))

	outsider := actors.NewCardActor(fc, card.New(card.King, card.Hearts, false))
	err := r.Add(outsider)
	assert.ErrorIs(t, err, ErrChildrenManaged)
	assert.Nil(t, outsider.Parent())
	assert.Empty(t, r.Children())
}

// TestRemoveDetachesWithoutDestroying 测试移除动画牌只摘下不销毁
func TestRemoveDetachesWithoutDestroying(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS 2H", 2, 0, 18))
	stage := newStageWith(t, r)

	require.NoError(t, r.SetAnimations([]AnimStart{{X: 1}, {X: 2, FaceDown: true}}))
	removed := r.records[1].actor
	kept := r.records[0].actor
	stage.TakeRelayout()
	stage.TakeRedraw()

	require.NoError(t, r.Remove(removed))
	assert.Equal(t, 1, r.AnimationCount())
	assert.Same(t, kept, r.records[0].actor)
	assert.Nil(t, removed.Parent())
	assert.False(t, removed.Destroyed(), "摘下的牌交给调用方")
	assert.Equal(t, 3, fc.refs)
	assert.Positive(t, stage.TakeRelayout())
	assert.Positive(t, stage.TakeRedraw())
	assert.Equal(t, 2, r.timeline.ListenerCount(), "被摘下的牌的行为已释放")

	// 摘下的牌不再随时间轴移动
	x, _ := removed.Position()
	advance(r, 10)
	after, _ := removed.Position()
	assert.Equal(t, x, after)

	removed.Destroy()
	assert.Equal(t, 2, fc.refs)

	err := r.Remove(removed)
	assert.ErrorIs(t, err, ErrNotChild)
	assert.ErrorIs(t, r.Remove(nil), ErrNotChild)
}

// TestRemoveNilChild 测试移除 nil 节点
func TestRemoveNilChild(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS 2H", 2, 0, 18))
	require.NoError(t, r.SetAnimations([]AnimStart{{}, {}}))

	var typed *actors.CardActor
	tests := []struct {
		name  string
		child scene.Node
	}{
		{"nil 接口", nil},
		{"包着 nil 指针的接口", typed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			require.NotPanics(t, func() { err = r.Remove(tt.child) })
			assert.ErrorIs(t, err, ErrNotChild)
			assert.Equal(t, 2, r.AnimationCount())
		})
	}
}

// TestRemoveWhileHiddenSkipsRedraw 测试隐藏时移除不请求重绘
func TestRemoveWhileHiddenSkipsRedraw(t *testing.T) {
	fc := newFakeCache()
	r := newRenderer(t, fc, newPile(t, "AS", 1, 0, 0))
	stage := newStageWith(t, r)

	require.NoError(t, r.SetAnimations([]AnimStart{{}}))
	a := r.records[0].actor
	r.Hide()
	stage.TakeRedraw()

	require.NoError(t, r.Remove(a))
	assert.Equal(t, 0, stage.TakeRedraw())
	a.Destroy()
	assert.Equal(t, 1, fc.refs)
}
