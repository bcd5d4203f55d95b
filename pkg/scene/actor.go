// Package scene 是一个极简的保留模式场景图。
//
// Actor 保存位置、尺寸、绕 Y 轴的旋转、深度、可见性和父子关系；
// 重绘 / 重新布局请求沿父链冒泡到 Stage，由宿主在每帧读取并清除。
// 具体的可绘制对象（卡牌、牌堆渲染器）嵌入 Actor 并实现 Node。
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrAlreadyParented 目标已经有父节点
var ErrAlreadyParented = errors.New("actor already has a parent")

// Canvas 绘制目标，*ebiten.Image 满足此接口
type Canvas interface {
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
}

// Node 场景图节点
type Node interface {
	// Base 返回内嵌的 Actor
	Base() *Actor
	// Paint 在 geom（父节点坐标系到屏幕的变换）下绘制自身
	Paint(dst Canvas, geom ebiten.GeoM)
}

// Container 拥有子节点的节点
type Container interface {
	Node
	Children() []Node
	Add(child Node) error
	Remove(child Node) error
}

// Box 分配到的矩形区域（父节点坐标系）
type Box struct {
	X1, Y1, X2, Y2 float64
}

// Width 宽度
func (b Box) Width() float64 { return b.X2 - b.X1 }

// Height 高度
func (b Box) Height() float64 { return b.Y2 - b.Y1 }

// Actor 场景图节点的公共状态
type Actor struct {
	name string

	x, y          float64
	width, height float64
	allocation    Box

	angleY           float64
	centerX, centerY float64
	depth            float64

	hidden bool
	parent *Actor
	stage  *Stage
}

// Base 实现 Node
func (a *Actor) Base() *Actor {
	return a
}

// SetName 设置调试名称
func (a *Actor) SetName(name string) {
	a.name = name
}

// Name 调试名称
func (a *Actor) Name() string {
	return a.name
}

// SetPosition 设置位置（父节点坐标系）
func (a *Actor) SetPosition(x, y float64) {
	a.x, a.y = x, y
	a.QueueRedraw()
}

// Position 当前位置
func (a *Actor) Position() (x, y float64) {
	return a.x, a.y
}

// SetSize 设置尺寸
func (a *Actor) SetSize(w, h float64) {
	a.width, a.height = w, h
	a.QueueRelayout()
}

// Size 当前尺寸
func (a *Actor) Size() (w, h float64) {
	return a.width, a.height
}

// SetRotationY 设置绕 Y 轴的旋转角度（度）及旋转中心（局部坐标）
func (a *Actor) SetRotationY(angle, centerX, centerY float64) {
	a.angleY = angle
	a.centerX, a.centerY = centerX, centerY
	a.QueueRedraw()
}

// RotationY 当前 Y 轴旋转
func (a *Actor) RotationY() (angle, centerX, centerY float64) {
	return a.angleY, a.centerX, a.centerY
}

// SetDepth 设置深度，正值朝向观察者
func (a *Actor) SetDepth(z float64) {
	a.depth = z
	a.QueueRedraw()
}

// Depth 当前深度
func (a *Actor) Depth() float64 {
	return a.depth
}

// Show 显示
func (a *Actor) Show() {
	a.hidden = false
	a.QueueRedraw()
}

// Hide 隐藏
func (a *Actor) Hide() {
	a.hidden = true
	a.QueueRedraw()
}

// IsVisible 是否可见
func (a *Actor) IsVisible() bool {
	return !a.hidden
}

// Parent 父节点，根节点返回 nil
func (a *Actor) Parent() *Actor {
	return a.parent
}

// SetParent 挂到 parent 下
func (a *Actor) SetParent(parent *Actor) error {
	if a.parent != nil {
		return ErrAlreadyParented
	}
	a.parent = parent
	a.QueueRelayout()
	return nil
}

// Unparent 脱离父节点
func (a *Actor) Unparent() {
	if a.parent == nil {
		return
	}
	a.parent.QueueRelayout()
	a.parent = nil
}

// Allocate 记录分配到的区域并同步位置与尺寸
func (a *Actor) Allocate(box Box) {
	a.allocation = box
	a.x, a.y = box.X1, box.Y1
	a.width, a.height = box.Width(), box.Height()
}

// Allocation 最近一次分配的区域
func (a *Actor) Allocation() Box {
	return a.allocation
}

// LocalGeoM 自身局部坐标到父坐标的平移
func (a *Actor) LocalGeoM() ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(a.x, a.y)
	return g
}

// Stage 所在的舞台，未挂到舞台时返回 nil
func (a *Actor) Stage() *Stage {
	root := a
	for root.parent != nil {
		root = root.parent
	}
	return root.stage
}

// QueueRedraw 请求重绘
func (a *Actor) QueueRedraw() {
	if s := a.Stage(); s != nil {
		s.redraws++
	}
}

// QueueRelayout 请求重新布局
func (a *Actor) QueueRelayout() {
	if s := a.Stage(); s != nil {
		s.relayouts++
	}
}
