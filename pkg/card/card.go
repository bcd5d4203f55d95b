// Package card 定义纸牌编码与牌堆（slot）数据结构。
//
// 一张牌用一个字节编码：
//
//	bit 0     : 背面朝上标志
//	bit 1-2   : 花色（梅花、方块、红桃、黑桃）
//	bit 3-6   : 点数（0 = 王牌，1 = A … 13 = K）
//
// 牌堆由调用方持有，渲染器只读取它。
package card

import (
	"fmt"
	"strings"
)

// Suit 花色
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Rank 点数
const (
	Joker = 0
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

const (
	faceDownMask = 0x01
	suitShift    = 1
	suitMask     = 0x03 << suitShift
	rankShift    = 3
	rankMask     = 0x0f << rankShift
)

// Card 单张纸牌的编码
type Card uint8

// New 根据点数、花色和朝向构造纸牌编码
func New(rank int, suit Suit, faceDown bool) Card {
	c := Card(uint8(rank&0x0f)<<rankShift) | Card(uint8(suit&0x03)<<suitShift)
	if faceDown {
		c |= faceDownMask
	}
	return c
}

// Rank 返回点数（0 王牌, 1-13）
func (c Card) Rank() int {
	return int((uint8(c) & rankMask) >> rankShift)
}

// Suit 返回花色
func (c Card) Suit() Suit {
	return Suit((uint8(c) & suitMask) >> suitShift)
}

// FaceDown 是否背面朝上
func (c Card) FaceDown() bool {
	return uint8(c)&faceDownMask != 0
}

// WithFaceDown 返回改变朝向后的同一张牌
func (c Card) WithFaceDown(faceDown bool) Card {
	if faceDown {
		return c | faceDownMask
	}
	return c &^ faceDownMask
}

// IsRed 红色花色（方块、红桃）
func (c Card) IsRed() bool {
	s := c.Suit()
	return s == Diamonds || s == Hearts
}

const rankLetters = "?A23456789TJQK"
const suitLetters = "CDHS"

// String 返回形如 "KH" 的短名，背面朝上的牌带 "*" 前缀
func (c Card) String() string {
	var b strings.Builder
	if c.FaceDown() {
		b.WriteByte('*')
	}
	if c.Rank() == Joker {
		b.WriteString("JK")
		return b.String()
	}
	b.WriteByte(rankLetters[c.Rank()])
	b.WriteByte(suitLetters[c.Suit()])
	return b.String()
}

// Parse 解析 String 的输出格式，如 "AS"、"TD"、"*QH"、"JK"
func Parse(s string) (Card, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	faceDown := strings.HasPrefix(s, "*")
	s = strings.TrimPrefix(s, "*")

	if s == "JK" {
		return New(Joker, Clubs, faceDown), nil
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("invalid card %q", s)
	}

	rank := strings.IndexByte(rankLetters, s[0])
	if rank < Ace {
		return 0, fmt.Errorf("invalid rank in card %q", s)
	}
	suit := strings.IndexByte(suitLetters, s[1])
	if suit < 0 {
		return 0, fmt.Errorf("invalid suit in card %q", s)
	}
	return New(rank, Suit(suit), faceDown), nil
}

// ParseList 解析以空白分隔的纸牌列表
func ParseList(s string) ([]Card, error) {
	fields := strings.Fields(s)
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := Parse(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}
