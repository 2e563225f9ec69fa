package rng

import "fmt"

// Range is a bounded float interval a generator draws from.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Validate checks that the range is well-formed.
func (r Range) Validate(field string) error {
	if r.Min > r.Max {
		return &InputError{Field: field, Reason: fmt.Sprintf("min %v is greater than max %v", r.Min, r.Max)}
	}
	return nil
}

// ValidateProportion checks that the range is well-formed and fits inside
// [0, 1]. It applies to ranges drawn as shares of an upstream quantity,
// where a value outside the unit interval can never be meaningful.
func (r Range) ValidateProportion(field string) error {
	if err := r.Validate(field); err != nil {
		return err
	}
	if r.Min < 0 || r.Max > 1 {
		return &InputError{Field: field, Reason: fmt.Sprintf("proportion range [%v, %v] outside [0, 1]", r.Min, r.Max)}
	}
	return nil
}

// IntRange is a bounded integer interval a generator draws from.
type IntRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// Validate checks that the range is well-formed.
func (r IntRange) Validate(field string) error {
	if r.Min > r.Max {
		return &InputError{Field: field, Reason: fmt.Sprintf("min %d is greater than max %d", r.Min, r.Max)}
	}
	return nil
}

// Draw returns a uniform sample from the range.
func (e *Engine) Draw(r Range) float64 {
	return e.Uniform(r.Min, r.Max)
}

// DrawInt returns a uniform integer sample from the range.
func (e *Engine) DrawInt(r IntRange) int {
	return e.UniformInt(r.Min, r.Max)
}

// InputError reports invalid generation input: a malformed range, a
// probability outside [0,1], or a non-positive window. It is fatal at call
// time and never retried.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input %q: %s", e.Field, e.Reason)
}

// ValidateProbability checks that p is a valid probability.
func ValidateProbability(field string, p float64) error {
	if p < 0 || p > 1 {
		return &InputError{Field: field, Reason: fmt.Sprintf("probability %v outside [0, 1]", p)}
	}
	return nil
}

// ValidateWindow checks that a generation window is positive.
func ValidateWindow(days int) error {
	if days <= 0 {
		return &InputError{Field: "window_days", Reason: fmt.Sprintf("must be positive, got %d", days)}
	}
	return nil
}
