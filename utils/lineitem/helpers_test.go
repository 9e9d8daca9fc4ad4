package lineitem

import (
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

var tabularInvoice = lines(
	"Service Description Amount without VAT Quantity Total",
	"wmView Basic Fee",
	"€10.00",
	"2",
	"€20.00",
)

var multiLineInvoice = lines(
	"Additional user account",
	"€5.00 1",
	"Premium support plan",
	"€12.50 2",
	"Cloud storage addon",
	"€3.00 4",
)

var singleLineInvoice = lines(
	"Hosting package 2 €10.00 €20.00",
	"Premium support plan 1 €50.00 €50.00",
	"Domain renewal fee 3 €12.00 €36.00",
)

// recordingObserver counts pipeline events.
type recordingObserver struct {
	mu         sync.Mutex
	formats    []Format
	strategies []string
	accepted   int
	rejected   []error
	mismatches int
	merges     int
}

func (o *recordingObserver) FormatDetected(f Format, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.formats = append(o.formats, f)
}

func (o *recordingObserver) StrategyCompleted(name string, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.strategies = append(o.strategies, name)
}

func (o *recordingObserver) CandidateAccepted(Candidate) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.accepted++
}

func (o *recordingObserver) CandidateRejected(_ Candidate, reason error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, reason)
}

func (o *recordingObserver) ArithmeticMismatch(Candidate, decimal.Decimal) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.mismatches++
}

func (o *recordingObserver) MergePerformed(Candidate, int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.merges++
}
