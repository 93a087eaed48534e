// Package variantkey 编码商品变体的组合键 "{metal|none}-{diamond|none}-{size}"
package variantkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const noneSegment = "none"

// ErrInvalid 变体键格式错误
var ErrInvalid = errors.New("invalid variant key")

// Key 变体组合键：金属|none、钻石|none、尺寸
type Key struct {
	Metal   *uint
	Diamond *uint
	Size    uint
}

// New 构造变体键，0 视为 none
func New(metal, diamond, size uint) Key {
	return Key{Metal: optionalID(metal), Diamond: optionalID(diamond), Size: size}
}

func (k Key) String() string {
	return formatSegment(k.Metal) + "-" + formatSegment(k.Diamond) + "-" + strconv.FormatUint(uint64(k.Size), 10)
}

// Block 所属尺寸块
func (k Key) Block() Block {
	return Block{Metal: k.Metal, Diamond: k.Diamond}
}

// Parse 解析变体键字符串
func Parse(raw string) (Key, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	metal, err := parseSegment(parts[0])
	if err != nil {
		return Key{}, fmt.Errorf("%w: metal %q", ErrInvalid, parts[0])
	}
	diamond, err := parseSegment(parts[1])
	if err != nil {
		return Key{}, fmt.Errorf("%w: diamond %q", ErrInvalid, parts[1])
	}
	size, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil || size == 0 {
		return Key{}, fmt.Errorf("%w: size %q", ErrInvalid, parts[2])
	}
	return Key{Metal: metal, Diamond: diamond, Size: uint(size)}, nil
}

// Block 尺寸块键（金属 × 钻石）
type Block struct {
	Metal   *uint
	Diamond *uint
}

func (b Block) String() string {
	return formatSegment(b.Metal) + "-" + formatSegment(b.Diamond)
}

// WithSize 该块下某尺寸的变体键
func (b Block) WithSize(size uint) Key {
	return Key{Metal: b.Metal, Diamond: b.Diamond, Size: size}
}

func formatSegment(id *uint) string {
	if id == nil {
		return noneSegment
	}
	return strconv.FormatUint(uint64(*id), 10)
}

func parseSegment(raw string) (*uint, error) {
	if raw == noneSegment {
		return nil, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return nil, ErrInvalid
	}
	id := uint(value)
	return &id, nil
}

func optionalID(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
