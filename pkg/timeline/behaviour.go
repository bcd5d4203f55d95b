package timeline

import (
	"math"

	"github.com/gonewx/solitaire/pkg/utils"
)

// Behaviour 挂在 alpha 上、随时间轴每帧更新目标属性的行为
type Behaviour interface {
	// Alpha 驱动此行为的 alpha
	Alpha() *Alpha
	// Bound 是否仍挂在时间轴上
	Bound() bool
	// Release 从时间轴注销并丢弃所有目标
	Release()
}

// Positionable 可设置位置的目标
type Positionable interface {
	SetPosition(x, y float64)
}

// YRotatable 可绕 Y 轴旋转的目标
type YRotatable interface {
	SetRotationY(angle, centerX, centerY float64)
}

// DepthTarget 可设置深度（z 偏移）的目标
type DepthTarget interface {
	SetDepth(z float64)
}

type base struct {
	alpha  *Alpha
	detach func()
}

func (b *base) Alpha() *Alpha {
	return b.alpha
}

func (b *base) Bound() bool {
	return b.detach != nil
}

func (b *base) bind(notify func(alpha float64)) {
	if b.detach != nil {
		return
	}
	b.detach = b.alpha.timeline.OnNewFrame(func(progress float64) {
		notify(b.alpha.At(progress))
	})
}

func (b *base) unbind() {
	if b.detach != nil {
		b.detach()
		b.detach = nil
	}
}

// Knot 路径上的一个点
type Knot struct {
	X, Y float64
}

// PathBehaviour 沿折线路径移动目标，alpha 按路径长度均匀分布
type PathBehaviour struct {
	base
	knots   []Knot
	targets []Positionable
}

// NewPathBehaviour 创建路径行为
func NewPathBehaviour(alpha *Alpha, knots ...Knot) *PathBehaviour {
	return &PathBehaviour{
		base:  base{alpha: alpha},
		knots: append([]Knot(nil), knots...),
	}
}

// Knots 路径点
func (p *PathBehaviour) Knots() []Knot {
	return p.knots
}

// Apply 添加目标并挂到时间轴上
func (p *PathBehaviour) Apply(target Positionable) {
	p.targets = append(p.targets, target)
	p.bind(p.alphaNotify)
}

// Release 实现 Behaviour
func (p *PathBehaviour) Release() {
	p.unbind()
	p.targets = nil
}

// PositionAt 返回 alpha 对应的路径位置
func (p *PathBehaviour) PositionAt(alpha float64) (x, y float64) {
	switch len(p.knots) {
	case 0:
		return 0, 0
	case 1:
		return p.knots[0].X, p.knots[0].Y
	}

	total := 0.0
	for i := 1; i < len(p.knots); i++ {
		total += segmentLength(p.knots[i-1], p.knots[i])
	}
	if total == 0 {
		return p.knots[0].X, p.knots[0].Y
	}

	remaining := utils.Clamp01(alpha) * total
	for i := 1; i < len(p.knots); i++ {
		a, b := p.knots[i-1], p.knots[i]
		l := segmentLength(a, b)
		if remaining <= l || i == len(p.knots)-1 {
			t := 0.0
			if l > 0 {
				t = utils.Clamp01(remaining / l)
			}
			return utils.Lerp(a.X, b.X, t), utils.Lerp(a.Y, b.Y, t)
		}
		remaining -= l
	}
	last := p.knots[len(p.knots)-1]
	return last.X, last.Y
}

func (p *PathBehaviour) alphaNotify(alpha float64) {
	x, y := p.PositionAt(alpha)
	for _, t := range p.targets {
		t.SetPosition(x, y)
	}
}

func segmentLength(a, b Knot) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// RotateDirection 旋转方向
type RotateDirection int

const (
	// RotateCW 顺时针：终点角度小于起点时加 360°
	RotateCW RotateDirection = iota
	// RotateCCW 逆时针：终点角度大于起点时减 360°
	RotateCCW
)

// RotateBehaviour 绕 Y 轴旋转目标
type RotateBehaviour struct {
	base
	start, end       float64
	direction        RotateDirection
	centerX, centerY float64
	targets          []YRotatable
}

// NewRotateBehaviour 创建旋转行为，角度单位为度
func NewRotateBehaviour(alpha *Alpha, direction RotateDirection, start, end float64) *RotateBehaviour {
	return &RotateBehaviour{
		base:      base{alpha: alpha},
		start:     start,
		end:       end,
		direction: direction,
	}
}

// SetCenter 设置旋转中心（目标局部坐标）
func (r *RotateBehaviour) SetCenter(x, y float64) {
	r.centerX, r.centerY = x, y
}

// Center 旋转中心
func (r *RotateBehaviour) Center() (x, y float64) {
	return r.centerX, r.centerY
}

// Bounds 起止角度
func (r *RotateBehaviour) Bounds() (start, end float64) {
	return r.start, r.end
}

// Apply 添加目标并挂到时间轴上
func (r *RotateBehaviour) Apply(target YRotatable) {
	r.targets = append(r.targets, target)
	r.bind(r.alphaNotify)
}

// Release 实现 Behaviour
func (r *RotateBehaviour) Release() {
	r.unbind()
	r.targets = nil
}

// AngleAt 返回 alpha 对应的角度，归一化到 [0, 360)
func (r *RotateBehaviour) AngleAt(alpha float64) float64 {
	start, end := r.start, r.end
	switch r.direction {
	case RotateCW:
		if end < start {
			end += 360
		}
	case RotateCCW:
		if end > start {
			end -= 360
		}
	}
	angle := math.Mod(utils.Lerp(start, end, utils.Clamp01(alpha)), 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func (r *RotateBehaviour) alphaNotify(alpha float64) {
	angle := r.AngleAt(alpha)
	for _, t := range r.targets {
		t.SetRotationY(angle, r.centerX, r.centerY)
	}
}

// DepthBehaviour 改变目标深度
type DepthBehaviour struct {
	base
	start, end float64
	targets    []DepthTarget
}

// NewDepthBehaviour 创建深度行为
func NewDepthBehaviour(alpha *Alpha, start, end float64) *DepthBehaviour {
	return &DepthBehaviour{
		base:  base{alpha: alpha},
		start: start,
		end:   end,
	}
}

// Bounds 起止深度
func (d *DepthBehaviour) Bounds() (start, end float64) {
	return d.start, d.end
}

// Apply 添加目标并挂到时间轴上
func (d *DepthBehaviour) Apply(target DepthTarget) {
	d.targets = append(d.targets, target)
	d.bind(d.alphaNotify)
}

// Release 实现 Behaviour
func (d *DepthBehaviour) Release() {
	d.unbind()
	d.targets = nil
}

// DepthAt 返回 alpha 对应的深度
func (d *DepthBehaviour) DepthAt(alpha float64) float64 {
	return utils.Lerp(d.start, d.end, alpha)
}

func (d *DepthBehaviour) alphaNotify(alpha float64) {
	z := d.DepthAt(alpha)
	for _, t := range d.targets {
		t.SetDepth(z)
	}
}
