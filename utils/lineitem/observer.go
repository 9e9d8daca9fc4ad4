package lineitem

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Observer is notified at fixed points of the pipeline. Implementations must
// not change candidates; extraction results never depend on the observer.
type Observer interface {
	FormatDetected(format Format, lines int)
	StrategyCompleted(strategy string, found int)
	CandidateAccepted(c Candidate)
	CandidateRejected(c Candidate, reason error)
	ArithmeticMismatch(c Candidate, expected decimal.Decimal)
	MergePerformed(merged Candidate, members int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) FormatDetected(Format, int)                    {}
func (NopObserver) StrategyCompleted(string, int)                 {}
func (NopObserver) CandidateAccepted(Candidate)                   {}
func (NopObserver) CandidateRejected(Candidate, error)            {}
func (NopObserver) ArithmeticMismatch(Candidate, decimal.Decimal) {}
func (NopObserver) MergePerformed(Candidate, int)                 {}

// LogObserver writes pipeline events to a logrus logger.
type LogObserver struct {
	log logrus.FieldLogger
}

// NewLogObserver returns an observer logging through log.
func NewLogObserver(log logrus.FieldLogger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) FormatDetected(format Format, lines int) {
	o.log.WithFields(logrus.Fields{"format": format.String(), "lines": lines}).Info("line item format detected")
}

func (o *LogObserver) StrategyCompleted(strategy string, found int) {
	o.log.WithFields(logrus.Fields{"strategy": strategy, "found": found}).Info("extraction strategy finished")
}

func (o *LogObserver) CandidateAccepted(c Candidate) {
	o.candidate(c).Debug("line item accepted")
}

func (o *LogObserver) CandidateRejected(c Candidate, reason error) {
	o.candidate(c).WithError(reason).Debug("line item rejected")
}

func (o *LogObserver) ArithmeticMismatch(c Candidate, expected decimal.Decimal) {
	o.candidate(c).WithField("expected_amount", expected.String()).Warn("quantity x unit price does not match amount")
}

func (o *LogObserver) MergePerformed(merged Candidate, members int) {
	o.candidate(merged).WithField("members", members).Info("merged similar line items")
}

func (o *LogObserver) candidate(c Candidate) *logrus.Entry {
	return o.log.WithFields(logrus.Fields{
		"description": c.Description,
		"quantity":    c.Quantity.String(),
		"unit_price":  c.UnitPrice.String(),
		"amount":      c.Amount.String(),
		"source":      c.Source,
		"line":        c.Line,
	})
}
