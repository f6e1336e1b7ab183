package types

import "fmt"

// Cents денежная сумма в минимальных единицах (центах)
type Cents int64

// String форматирует сумму как "12.34"
func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Mul умножает сумму на целое количество
func (c Cents) Mul(n int) Cents {
	return c * Cents(n)
}

// PerMinutes стоимость за minutes минут при почасовой ставке c.
// Округление до цента в большую сторону от половины
func (c Cents) PerMinutes(minutes int) Cents {
	return Cents((int64(c)*int64(minutes) + 30) / 60)
}
