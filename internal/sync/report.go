package sync

import (
	"fmt"
	"log"
	"time"
)

// Failure records one record-level error for post-mortem review.
type Failure struct {
	Kind string `json:"kind"` // product | order
	ID   string `json:"id"`
	Ref  string `json:"ref"` // human identifier (product name / order number)
	Err  string `json:"error"`
}

// Report is the tally a reconciliation run hands back to its operator.
// Per-record failures never abort the run; they accumulate here.
type Report struct {
	Mode Mode `json:"mode"`

	ProductsProcessed int `json:"products_processed"`
	ProductsUpdated   int `json:"products_updated"`
	OrdersProcessed   int `json:"orders_processed"`
	OrdersUpdated     int `json:"orders_updated"`
	OrdersSkipped     int `json:"orders_skipped"`
	ParseFailures     int `json:"parse_failures"`

	Failures []Failure `json:"failures,omitempty"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// NewReport starts a report clock for one run.
func NewReport(mode Mode) *Report {
	return &Report{Mode: mode, StartedAt: time.Now().UTC()}
}

func (r *Report) finish() {
	r.Duration = time.Since(r.StartedAt)
}

// ErrorCount returns the number of failed record writes.
func (r *Report) ErrorCount() int {
	return len(r.Failures)
}

func (r *Report) addFailure(kind, id, ref string, err error) {
	r.Failures = append(r.Failures, Failure{Kind: kind, ID: id, Ref: ref, Err: err.Error()})
}

// Log prints the run summary in the operator-facing format.
func (r *Report) Log() {
	log.Printf("=== SYNC COMPLETE (%s) ===", r.Mode)
	log.Printf("Products: %d processed, %d updated", r.ProductsProcessed, r.ProductsUpdated)
	log.Printf("Orders:   %d processed, %d updated, %d skipped", r.OrdersProcessed, r.OrdersUpdated, r.OrdersSkipped)
	if r.ParseFailures > 0 {
		log.Printf("⚠️  Unparsable effects: %d product(s) left untouched", r.ParseFailures)
	}
	log.Printf("Errors:   %d", r.ErrorCount())
	for _, f := range r.Failures {
		log.Printf("❌ %s %s (%s): %s", f.Kind, f.Ref, f.ID, f.Err)
	}
	log.Printf("Duration: %s", r.Duration.Round(time.Millisecond))
}

// Summary returns a one-line tally for API responses and logs.
func (r *Report) Summary() string {
	return fmt.Sprintf("mode=%s products=%d/%d orders=%d/%d skipped=%d errors=%d",
		r.Mode, r.ProductsUpdated, r.ProductsProcessed,
		r.OrdersUpdated, r.OrdersProcessed, r.OrdersSkipped, r.ErrorCount())
}
