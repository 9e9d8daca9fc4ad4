package lineitem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileWithTotal(t *testing.T) {
	items := []Candidate{
		{Description: "Hosting", Amount: dec("100.00")},
		{Description: "Support", Amount: dec("99.50")},
	}

	assertDecimal(t, "199.50", Sum(items))
	assert.True(t, ReconcileWithTotal(items, dec("200.00"), dec("0.01")))
	assert.False(t, ReconcileWithTotal(items, dec("200.00"), dec("0.001")))
	assert.True(t, ReconcileWithTotal(items, dec("199.50"), dec("0")))
}

func TestReconcileWithTotalEmpty(t *testing.T) {
	assert.False(t, ReconcileWithTotal(nil, dec("100"), dec("0.01")))
	assert.False(t, ReconcileWithTotal([]Candidate{}, dec("0"), dec("1")))
}

func TestReconcileWithTotalNegativeTolerance(t *testing.T) {
	items := []Candidate{{Amount: dec("10")}}

	assert.True(t, ReconcileWithTotal(items, dec("10"), dec("-0.5")))
	assert.False(t, ReconcileWithTotal(items, dec("10.01"), dec("-0.5")))
}

func TestReconcileMonotonicInTolerance(t *testing.T) {
	items := []Candidate{{Amount: dec("95")}}
	total := dec("100")

	previous := false
	for _, tol := range []string{"0", "0.01", "0.04", "0.05", "0.1", "1"} {
		got := ReconcileWithTotal(items, total, dec(tol))
		if previous {
			assert.True(t, got, tol)
		}
		previous = got
	}
	assert.True(t, previous)
}
