package reservation

import (
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

// FieldState is the validation state of one form field.
type FieldState string

const (
	FieldEmpty   FieldState = "empty"
	FieldInvalid FieldState = "invalid"
	FieldValid   FieldState = "valid"
)

// FormState aggregates the field states.  Incomplete wins over Invalid when
// both empty and invalid fields are present.
type FormState string

const (
	FormIncomplete FormState = "incomplete"
	FormInvalid    FormState = "invalid"
	FormReady      FormState = "ready"
)

// Inline feedback shown next to a field.
const (
	FeedbackRequired       = "Required"
	FeedbackInvalidEmail   = "Invalid email"
	FeedbackInvalidPhone   = "Invalid phone"
	FeedbackInvalidLicense = "Invalid license"
	FeedbackInvalidDays    = "Invalid days"
)

const minLicenseLen = 5

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	phonePattern = regexp.MustCompile(`^\d{8,}$`)
)

// FieldResult is the outcome of validating a single field.
type FieldResult struct {
	State    FieldState `json:"state"`
	Feedback string     `json:"feedback"`
}

// Evaluation is the state of the whole form after a change.  Total and
// TotalText are set only when the form is ready.
type Evaluation struct {
	Fields        map[string]FieldResult `json:"fields"`
	State         FormState              `json:"state"`
	SubmitEnabled bool                   `json:"submit_enabled"`
	Total         *float64               `json:"total,omitempty"`
	TotalText     string                 `json:"total_text"`
}

// ValidateField checks a trimmed field value.
func ValidateField(field, value string) FieldResult {
	if value == "" {
		return FieldResult{State: FieldEmpty, Feedback: FeedbackRequired}
	}
	invalid := func(msg string) FieldResult { return FieldResult{State: FieldInvalid, Feedback: msg} }
	switch field {
	case model.FieldEmail:
		if !emailPattern.MatchString(value) {
			return invalid(FeedbackInvalidEmail)
		}
	case model.FieldPhone:
		if !phonePattern.MatchString(value) {
			return invalid(FeedbackInvalidPhone)
		}
	case model.FieldLicense:
		if utf8.RuneCountInString(value) < minLicenseLen {
			return invalid(FeedbackInvalidLicense)
		}
	case model.FieldDays:
		if _, ok := parseDays(value); !ok {
			return invalid(FeedbackInvalidDays)
		}
	}
	return FieldResult{State: FieldValid}
}

func parseDays(value string) (int, bool) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Evaluate validates every field of d and prices the rental when the form
// is ready.
func Evaluate(d model.Draft, pricePerDay float64) Evaluation {
	ev := Evaluation{Fields: make(map[string]FieldResult, len(model.Fields)), State: FormReady}
	var empty, invalid bool
	for _, f := range model.Fields {
		res := ValidateField(f, d.Value(f))
		ev.Fields[f] = res
		switch res.State {
		case FieldEmpty:
			empty = true
		case FieldInvalid:
			invalid = true
		}
	}
	switch {
	case empty:
		ev.State = FormIncomplete
	case invalid:
		ev.State = FormInvalid
	}
	if ev.State != FormReady {
		return ev
	}
	days, _ := parseDays(d.Value(model.FieldDays))
	total := float64(days) * pricePerDay
	ev.Total = &total
	ev.TotalText = "Total Price: $" + FormatAmount(total)
	ev.SubmitEnabled = true
	return ev
}

// FormatAmount renders a price without trailing zeros: 150, 150.5.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
