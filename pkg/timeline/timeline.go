// Package timeline 提供由宿主帧时钟推进的定长时间轴，以及挂在时间轴上的行为（behaviour）。
//
// 同一批动画的所有行为共享一个 Timeline，因此它们逐帧同步并同时结束。
// 时间轴本身不启动任何 goroutine：宿主在每次 Update 时调用 Advance。
package timeline

import "time"

// Timeline 定长时间轴
//
// 每次 Advance 先向所有帧监听者派发新的一帧，
// 到达终点时停止播放并调用一次完成回调。
type Timeline struct {
	duration time.Duration
	elapsed  time.Duration
	playing  bool

	listeners []*frameListener
	completed func()
}

type frameListener struct {
	fn     func(progress float64)
	active bool
}

// New 创建时长为 duration 的时间轴（初始为停止状态）
func New(duration time.Duration) *Timeline {
	if duration <= 0 {
		duration = time.Millisecond
	}
	return &Timeline{duration: duration}
}

// Duration 时长
func (t *Timeline) Duration() time.Duration {
	return t.duration
}

// Elapsed 已播放时长
func (t *Timeline) Elapsed() time.Duration {
	return t.elapsed
}

// Progress 当前进度 [0, 1]
func (t *Timeline) Progress() float64 {
	return float64(t.elapsed) / float64(t.duration)
}

// IsPlaying 是否正在播放
func (t *Timeline) IsPlaying() bool {
	return t.playing
}

// Start 从当前位置开始播放
func (t *Timeline) Start() {
	t.playing = true
}

// Stop 暂停并回到起点
func (t *Timeline) Stop() {
	t.playing = false
	t.elapsed = 0
}

// Rewind 回到起点，不改变播放状态
func (t *Timeline) Rewind() {
	t.elapsed = 0
}

// OnCompleted 设置完成回调，替换之前设置的回调
func (t *Timeline) OnCompleted(fn func()) {
	t.completed = fn
}

// OnNewFrame 注册帧监听者，返回注销函数（可重复调用）
func (t *Timeline) OnNewFrame(fn func(progress float64)) (detach func()) {
	l := &frameListener{fn: fn, active: true}
	t.listeners = append(t.listeners, l)
	return func() {
		if !l.active {
			return
		}
		l.active = false
		for i, other := range t.listeners {
			if other == l {
				t.listeners = append(t.listeners[:i], t.listeners[i+1:]...)
				break
			}
		}
	}
}

// ListenerCount 当前帧监听者数量
func (t *Timeline) ListenerCount() int {
	return len(t.listeners)
}

// Advance 推进 dt 时间
//
// 监听者可能在回调中注销自己或其他监听者（例如完成回调拆除整批动画），
// 因此派发时使用快照并跳过已注销的监听者。
func (t *Timeline) Advance(dt time.Duration) {
	if !t.playing || dt < 0 {
		return
	}

	t.elapsed += dt
	done := t.elapsed >= t.duration
	if done {
		t.elapsed = t.duration
	}

	progress := t.Progress()
	snapshot := append([]*frameListener(nil), t.listeners...)
	for _, l := range snapshot {
		if l.active {
			l.fn(progress)
		}
	}

	if done {
		t.playing = false
		if t.completed != nil {
			t.completed()
		}
	}
}
