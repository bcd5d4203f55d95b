// Package scenario 把 tengo 脚本编译成演示用的操作序列。
//
// 脚本通过注入的函数描述牌桌操作：
//
//	deal("t1", "*AS *2H 3D", 1)   // 发牌：牌堆名、牌列表、翻开张数（可省略，默认全部）
//	move("t1", "f1", 1)           // 从 t1 顶部移动 n 张到 f1（n 可省略，默认 1）
//	move("stock", "waste", 1, true) // 第 4 个参数为 true 时落下后翻成正面
//	flip("t1")                    // 翻转 t1 顶牌
//	highlight("t2", 0)            // 从下标 0 开始高亮，-1 关闭
//	wait(250)                     // 等待毫秒数
//
// 脚本只运行一次，函数调用被记录为 Step；执行由宿主负责。
package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/gonewx/solitaire/pkg/card"
	"github.com/gonewx/solitaire/pkg/embedded"
)

// DefaultPath 内置演示脚本
const DefaultPath = "data/scenarios/klondike.tengo"

// Op 操作类型
type Op int

const (
	OpDeal Op = iota
	OpMove
	OpFlip
	OpHighlight
	OpWait
)

var opNames = [...]string{"deal", "move", "flip", "highlight", "wait"}

func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("op(%d)", int(o))
	}
	return opNames[o]
}

// AllExposed deal 未指定翻开张数时的取值
const AllExposed = -1

// Step 一个操作
type Step struct {
	Op Op

	// Slot deal / flip / highlight 的目标牌堆
	Slot string
	// From / To / Count / Reveal move 的参数
	From, To string
	Count    int
	Reveal   bool

	// Cards / Exposed deal 的参数
	Cards   []card.Card
	Exposed int

	// Index highlight 的起点
	Index int

	// Wait wait 的时长
	Wait time.Duration
}

func (s Step) String() string {
	switch s.Op {
	case OpDeal:
		return fmt.Sprintf("deal(%s, %d cards, exposed %d)", s.Slot, len(s.Cards), s.Exposed)
	case OpMove:
		if s.Reveal {
			return fmt.Sprintf("move(%s -> %s, %d, reveal)", s.From, s.To, s.Count)
		}
		return fmt.Sprintf("move(%s -> %s, %d)", s.From, s.To, s.Count)
	case OpFlip:
		return fmt.Sprintf("flip(%s)", s.Slot)
	case OpHighlight:
		return fmt.Sprintf("highlight(%s, %d)", s.Slot, s.Index)
	case OpWait:
		return fmt.Sprintf("wait(%s)", s.Wait)
	}
	return s.Op.String()
}

// Load 读取并编译脚本（磁盘优先，"data/" 路径回退到嵌入文件）
func Load(path string) ([]Step, error) {
	src, err := embedded.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	steps, err := Compile(src)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return steps, nil
}

// Compile 运行脚本并返回记录下来的操作
func Compile(src []byte) ([]Step, error) {
	rec := &recorder{}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, fn := range rec.functions() {
		if err := script.Add(name, fn); err != nil {
			return nil, err
		}
	}

	if _, err := script.Run(); err != nil {
		return nil, fmt.Errorf("run scenario: %w", err)
	}
	return rec.steps, nil
}

type recorder struct {
	steps []Step
}

func (r *recorder) functions() map[string]*tengo.UserFunction {
	return map[string]*tengo.UserFunction{
		"deal":      {Name: "deal", Value: r.deal},
		"move":      {Name: "move", Value: r.move},
		"flip":      {Name: "flip", Value: r.flip},
		"highlight": {Name: "highlight", Value: r.highlight},
		"wait":      {Name: "wait", Value: r.wait},
	}
}

func (r *recorder) deal(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, tengo.ErrWrongNumArguments
	}
	slotName, err := nameArg("deal", "first", args[0])
	if err != nil {
		return nil, err
	}
	list, ok := tengo.ToString(args[1])
	if !ok {
		return nil, argTypeError("second", "string", args[1])
	}
	cards, err := card.ParseList(list)
	if err != nil {
		return nil, fmt.Errorf("deal %s: %w", slotName, err)
	}

	exposed := AllExposed
	if len(args) == 3 {
		n, ok := tengo.ToInt(args[2])
		if !ok {
			return nil, argTypeError("third", "int", args[2])
		}
		if n < 0 || n > len(cards) {
			return nil, fmt.Errorf("deal %s: exposed %d out of range [0, %d]", slotName, n, len(cards))
		}
		exposed = n
	}

	r.steps = append(r.steps, Step{Op: OpDeal, Slot: slotName, Cards: cards, Exposed: exposed})
	return tengo.UndefinedValue, nil
}

func (r *recorder) move(args ...tengo.Object) (tengo.Object, error) {
	if len(args) < 2 || len(args) > 4 {
		return nil, tengo.ErrWrongNumArguments
	}
	from, err := nameArg("move", "first", args[0])
	if err != nil {
		return nil, err
	}
	to, err := nameArg("move", "second", args[1])
	if err != nil {
		return nil, err
	}

	count := 1
	if len(args) >= 3 {
		n, ok := tengo.ToInt(args[2])
		if !ok {
			return nil, argTypeError("third", "int", args[2])
		}
		if n <= 0 {
			return nil, fmt.Errorf("move %s -> %s: count must be positive, got %d", from, to, n)
		}
		count = n
	}

	reveal := false
	if len(args) == 4 {
		b, ok := tengo.ToBool(args[3])
		if !ok {
			return nil, argTypeError("fourth", "bool", args[3])
		}
		reveal = b
	}

	r.steps = append(r.steps, Step{Op: OpMove, From: from, To: to, Count: count, Reveal: reveal})
	return tengo.UndefinedValue, nil
}

func (r *recorder) flip(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 1 {
		return nil, tengo.ErrWrongNumArguments
	}
	slotName, err := nameArg("flip", "first", args[0])
	if err != nil {
		return nil, err
	}
	r.steps = append(r.steps, Step{Op: OpFlip, Slot: slotName})
	return tengo.UndefinedValue, nil
}

func (r *recorder) highlight(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 2 {
		return nil, tengo.ErrWrongNumArguments
	}
	slotName, err := nameArg("highlight", "first", args[0])
	if err != nil {
		return nil, err
	}
	index, ok := tengo.ToInt(args[1])
	if !ok {
		return nil, argTypeError("second", "int", args[1])
	}
	if index < 0 {
		index = -1
	}
	r.steps = append(r.steps, Step{Op: OpHighlight, Slot: slotName, Index: index})
	return tengo.UndefinedValue, nil
}

func (r *recorder) wait(args ...tengo.Object) (tengo.Object, error) {
	if len(args) != 1 {
		return nil, tengo.ErrWrongNumArguments
	}
	ms, ok := tengo.ToInt64(args[0])
	if !ok {
		return nil, argTypeError("first", "int", args[0])
	}
	if ms < 0 {
		return nil, fmt.Errorf("wait: negative duration %dms", ms)
	}
	r.steps = append(r.steps, Step{Op: OpWait, Wait: time.Duration(ms) * time.Millisecond})
	return tengo.UndefinedValue, nil
}

func nameArg(fn, pos string, obj tengo.Object) (string, error) {
	s, ok := obj.(*tengo.String)
	if !ok {
		return "", argTypeError(pos, "string", obj)
	}
	name := strings.TrimSpace(s.Value)
	if name == "" {
		return "", fmt.Errorf("%s: empty slot name", fn)
	}
	return name, nil
}

func argTypeError(pos, expected string, found tengo.Object) error {
	return tengo.ErrInvalidArgumentType{
		Name:     pos,
		Expected: expected,
		Found:    found.TypeName(),
	}
}
