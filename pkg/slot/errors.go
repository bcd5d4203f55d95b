package slot

import (
	"errors"
	"fmt"
)

var (
	// ErrTooManyAnimations 动画数量超过牌堆中翻开的牌数
	ErrTooManyAnimations = errors.New("more animations than exposed cards")
	// ErrChildrenManaged 子节点由渲染器自己管理，不能从外部添加
	ErrChildrenManaged = errors.New("slot renderer children are managed internally")
	// ErrNotChild 不是当前动画批次中的 actor
	ErrNotChild = errors.New("actor is not an animated child of this slot renderer")
	// ErrNilCache 未提供纹理缓存
	ErrNilCache = errors.New("slot renderer requires a texture cache")
	// ErrNilSlot 未提供牌堆
	ErrNilSlot = errors.New("slot renderer requires a slot")
	// ErrCorruptSlot 牌堆不满足 0 <= Exposed <= len(Cards)
	ErrCorruptSlot = errors.New("corrupt slot")
	// ErrDisposed 渲染器已释放
	ErrDisposed = errors.New("slot renderer disposed")
)

// TooManyAnimationsError 记录越界的动画请求，errors.Is 匹配 ErrTooManyAnimations
type TooManyAnimationsError struct {
	Requested int
	Exposed   int
}

func (e *TooManyAnimationsError) Error() string {
	return fmt.Sprintf("%v: requested %d, exposed %d", ErrTooManyAnimations, e.Requested, e.Exposed)
}

// Is 实现 errors.Is
func (e *TooManyAnimationsError) Is(target error) bool {
	return target == ErrTooManyAnimations
}
