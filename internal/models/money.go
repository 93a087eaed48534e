package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Money 金额，统一两位小数，JSON 中以字符串输出
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal decimal 转金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

// ParseMoney 空串视为 0
func ParseMoney(raw string) (Money, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Money{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return Money{}, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return NewMoneyFromDecimal(d), nil
}

// MustMoney 解析失败直接 panic，仅用于常量与测试
func MustMoney(raw string) Money {
	m, err := ParseMoney(raw)
	if err != nil {
		panic(err)
	}
	return m
}

// OrDefault m 为 nil 或 0 时返回 fallback
func (m *Money) OrDefault(fallback Money) Money {
	if m == nil || m.IsZero() {
		return fallback
	}
	return *m
}

func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}

// MarshalJSON 输出 "1234.50" 形式
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

// UnmarshalJSON 接受字符串、数字与 null
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*m = Money{}
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = unquoted
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(moneyScale).String(), nil
}

func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}
