package timeline

import (
	"testing"
	"time"

	"github.com/gonewx/solitaire/pkg/utils"
	"github.com/stretchr/testify/assert"
)

type fakeTarget struct {
	x, y           float64
	angle, cx, cy  float64
	z              float64
	positionWrites int
}

func (f *fakeTarget) SetPosition(x, y float64) {
	f.x, f.y = x, y
	f.positionWrites++
}

func (f *fakeTarget) SetRotationY(angle, cx, cy float64) {
	f.angle, f.cx, f.cy = angle, cx, cy
}

func (f *fakeTarget) SetDepth(z float64) {
	f.z = z
}

func TestPathBehaviourTwoKnots(t *testing.T) {
	tl := New(400 * time.Millisecond)
	path := NewPathBehaviour(NewAlpha(tl, utils.EaseRamp), Knot{100, 50}, Knot{0, 36})
	target := &fakeTarget{}
	path.Apply(target)
	assert.True(t, path.Bound())

	tl.Start()
	tl.Advance(200 * time.Millisecond)
	assert.InDelta(t, 50, target.x, 1e-9)
	assert.InDelta(t, 43, target.y, 1e-9)

	tl.Advance(time.Second)
	assert.InDelta(t, 0, target.x, 1e-9)
	assert.InDelta(t, 36, target.y, 1e-9)
}

func TestPathBehaviourMultiSegment(t *testing.T) {
	tl := New(time.Second)
	path := NewPathBehaviour(NewAlpha(tl, nil), Knot{0, 0}, Knot{10, 0}, Knot{10, 30})

	x, y := path.PositionAt(0.25)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y = path.PositionAt(0.5)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 10, y, 1e-9)

	single := NewPathBehaviour(NewAlpha(tl, nil), Knot{4, 5})
	x, y = single.PositionAt(0.7)
	assert.Equal(t, 4.0, x)
	assert.Equal(t, 5.0, y)
}

func TestRotateBehaviourClockwiseFlip(t *testing.T) {
	tl := New(time.Second)
	rot := NewRotateBehaviour(NewAlpha(tl, nil), RotateCW, 180, 0)
	rot.SetCenter(35, 48)

	assert.InDelta(t, 180, rot.AngleAt(0), 1e-9)
	assert.InDelta(t, 270, rot.AngleAt(0.5), 1e-9)
	assert.InDelta(t, 0, rot.AngleAt(1), 1e-9)

	target := &fakeTarget{}
	rot.Apply(target)
	tl.Start()
	tl.Advance(2 * time.Second)
	assert.InDelta(t, 0, target.angle, 1e-9)
	assert.Equal(t, 35.0, target.cx)
	assert.Equal(t, 48.0, target.cy)
}

func TestRotateBehaviourCounterClockwise(t *testing.T) {
	rot := NewRotateBehaviour(NewAlpha(New(time.Second), nil), RotateCCW, 0, 90)
	assert.InDelta(t, 225, rot.AngleAt(0.5), 1e-9)
	assert.InDelta(t, 90, rot.AngleAt(1), 1e-9)
}

func TestDepthBehaviourLiftAndSettle(t *testing.T) {
	tl := New(time.Second)
	depth := NewDepthBehaviour(NewAlpha(tl, utils.EaseSine), 0, 96)
	target := &fakeTarget{}
	depth.Apply(target)

	tl.Start()
	tl.Advance(500 * time.Millisecond)
	assert.InDelta(t, 96, target.z, 1e-6)

	tl.Advance(500 * time.Millisecond)
	assert.InDelta(t, 0, target.z, 1e-6)
}

func TestBehavioursShareOneTimeline(t *testing.T) {
	tl := New(time.Second)
	ramp := NewAlpha(tl, utils.EaseRamp)
	path := NewPathBehaviour(ramp, Knot{0, 0}, Knot{100, 0})
	rot := NewRotateBehaviour(ramp, RotateCW, 180, 0)
	target := &fakeTarget{}
	path.Apply(target)
	rot.Apply(target)

	tl.Start()
	tl.Advance(250 * time.Millisecond)

	assert.InDelta(t, 25, target.x, 1e-9)
	assert.InDelta(t, 225, target.angle, 1e-9)
	assert.Equal(t, 2, tl.ListenerCount())
}

func TestBehaviourRelease(t *testing.T) {
	tl := New(time.Second)
	path := NewPathBehaviour(NewAlpha(tl, nil), Knot{0, 0}, Knot{10, 10})
	target := &fakeTarget{}
	path.Apply(target)
	path.Release()

	assert.False(t, path.Bound())
	assert.Equal(t, 0, tl.ListenerCount())

	tl.Start()
	tl.Advance(100 * time.Millisecond)
	assert.Equal(t, 0, target.positionWrites)

	// 重复释放无副作用
	path.Release()
}
