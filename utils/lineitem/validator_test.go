package lineitem

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validCandidate() Candidate {
	return Candidate{
		Description: "Hosting package",
		Quantity:    dec("2"),
		UnitPrice:   dec("10"),
		Amount:      dec("20"),
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name   string
		modify func(*Candidate)
		want   error
	}{
		{"valid", func(*Candidate) {}, nil},
		{"empty description", func(c *Candidate) { c.Description = "  " }, ErrEmptyDescription},
		{"boilerplate", func(c *Candidate) { c.Description = "Invoice No 123" }, ErrBoilerplateDescription},
		{"too short", func(c *Candidate) { c.Description = "ab" }, ErrDescriptionLength},
		{"too long", func(c *Candidate) { c.Description = strings.Repeat("a", 121) }, ErrDescriptionLength},
		{"numeric only", func(c *Candidate) { c.Description = "123.45 ---" }, ErrNonTextDescription},
		{"negative quantity", func(c *Candidate) { c.Quantity = dec("-1") }, ErrNegativeValue},
		{"negative amount", func(c *Candidate) { c.Amount = dec("-0.01") }, ErrNegativeValue},
		{"quantity at cap", func(c *Candidate) { c.Quantity = dec("10000") }, nil},
		{"quantity above cap", func(c *Candidate) { c.Quantity = dec("10000.01") }, ErrQuantityOutOfRange},
		{"unit price above cap", func(c *Candidate) { c.UnitPrice = dec("100001") }, ErrUnitPriceOutOfRange},
		{"amount above cap", func(c *Candidate) { c.Amount = dec("1000000.5") }, ErrAmountOutOfRange},
		{"arithmetic mismatch is kept", func(c *Candidate) { c.Amount = dec("25") }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCandidate()
			tt.modify(&c)
			err := Validate(c, cfg)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCheckArithmetic(t *testing.T) {
	cfg := DefaultConfig()

	c := validCandidate()
	expected, ok := CheckArithmetic(c, cfg)
	assert.True(t, ok)
	assertDecimal(t, "20", expected)

	c.Amount = dec("20.5")
	_, ok = CheckArithmetic(c, cfg)
	assert.True(t, ok)

	c.Amount = dec("25")
	expected, ok = CheckArithmetic(c, cfg)
	assert.False(t, ok)
	assertDecimal(t, "20", expected)

	c.UnitPrice = dec("0")
	_, ok = CheckArithmetic(c, cfg)
	assert.True(t, ok)
}
