package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/car-rental-reservation/internal/model"
)

func validDraft() model.Draft {
	return model.Draft{
		Name:      "Ada Lovelace",
		Phone:     "0412345678",
		Email:     "ada@example.com",
		License:   "DL-12345",
		StartDate: "2026-11-01",
		Days:      "3",
	}
}

func TestValidateField(t *testing.T) {
	cases := []struct {
		field, value string
		state        FieldState
		feedback     string
	}{
		{model.FieldName, "", FieldEmpty, FeedbackRequired},
		{model.FieldName, "Ada", FieldValid, ""},
		{model.FieldEmail, "ada@example.com", FieldValid, ""},
		{model.FieldEmail, "ada@example", FieldInvalid, FeedbackInvalidEmail},
		{model.FieldEmail, "ada@@example.com", FieldInvalid, FeedbackInvalidEmail},
		{model.FieldEmail, "@example.com", FieldInvalid, FeedbackInvalidEmail},
		{model.FieldPhone, "12345678", FieldValid, ""},
		{model.FieldPhone, "1234567", FieldInvalid, FeedbackInvalidPhone},
		{model.FieldPhone, "1234 5678", FieldInvalid, FeedbackInvalidPhone},
		{model.FieldPhone, "+61412345678", FieldInvalid, FeedbackInvalidPhone},
		{model.FieldLicense, "ABCDE", FieldValid, ""},
		{model.FieldLicense, "ABCD", FieldInvalid, FeedbackInvalidLicense},
		{model.FieldStartDate, "2026-11-01", FieldValid, ""},
		{model.FieldDays, "1", FieldValid, ""},
		{model.FieldDays, "0", FieldInvalid, FeedbackInvalidDays},
		{model.FieldDays, "-2", FieldInvalid, FeedbackInvalidDays},
		{model.FieldDays, "2.5", FieldInvalid, FeedbackInvalidDays},
		{model.FieldDays, "abc", FieldInvalid, FeedbackInvalidDays},
	}
	for _, tc := range cases {
		t.Run(tc.field+"="+tc.value, func(t *testing.T) {
			got := ValidateField(tc.field, tc.value)
			assert.Equal(t, tc.state, got.State)
			assert.Equal(t, tc.feedback, got.Feedback)
		})
	}
}

func TestEvaluate_ReadyComputesTotal(t *testing.T) {
	ev := Evaluate(validDraft(), 50)
	assert.Equal(t, FormReady, ev.State)
	assert.True(t, ev.SubmitEnabled)
	require.NotNil(t, ev.Total)
	assert.Equal(t, 150.0, *ev.Total)
	assert.Equal(t, "Total Price: $150", ev.TotalText)
	for _, f := range model.Fields {
		assert.Equal(t, FieldValid, ev.Fields[f].State, f)
	}
}

func TestEvaluate_FractionalPrice(t *testing.T) {
	d := validDraft()
	d.Days = "2"
	ev := Evaluate(d, 45.25)
	assert.Equal(t, "Total Price: $90.5", ev.TotalText)
}

func TestEvaluate_TrimsValues(t *testing.T) {
	d := validDraft()
	d.Days = " 4 "
	d.Name = "  Ada  "
	ev := Evaluate(d, 10)
	require.True(t, ev.SubmitEnabled)
	assert.Equal(t, 40.0, *ev.Total)

	d.Name = "   "
	ev = Evaluate(d, 10)
	assert.Equal(t, FieldEmpty, ev.Fields[model.FieldName].State)
}

func TestEvaluate_SubmitEnabledIffAllRulesPass(t *testing.T) {
	breakers := map[string]func(*model.Draft){
		"name":    func(d *model.Draft) { d.Name = "" },
		"phone":   func(d *model.Draft) { d.Phone = "12ab5678" },
		"email":   func(d *model.Draft) { d.Email = "nope" },
		"license": func(d *model.Draft) { d.License = "abc" },
		"start":   func(d *model.Draft) { d.StartDate = " " },
		"days":    func(d *model.Draft) { d.Days = "0" },
	}
	for name, brk := range breakers {
		t.Run(name, func(t *testing.T) {
			d := validDraft()
			brk(&d)
			ev := Evaluate(d, 50)
			assert.False(t, ev.SubmitEnabled)
			assert.Nil(t, ev.Total)
			assert.Empty(t, ev.TotalText)
			assert.NotEqual(t, FormReady, ev.State)
		})
	}
}

func TestEvaluate_FormStates(t *testing.T) {
	assert.Equal(t, FormIncomplete, Evaluate(model.Draft{}, 50).State)

	d := validDraft()
	d.Email = "bad"
	assert.Equal(t, FormInvalid, Evaluate(d, 50).State)

	d.Name = ""
	assert.Equal(t, FormIncomplete, Evaluate(d, 50).State)
}
