package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/stringr/internal/apperr"
)

type block struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

func (b block) Check() error {
	if b.Start >= b.End {
		return apperr.Validation("start must be before end")
	}
	return nil
}

type payload struct {
	Tension *float64 `json:"tension_lbs" validate:"omitempty,gte=30,lte=80"`
	Notes   string   `json:"notes" validate:"max=5"`
	Blocks  []block  `json:"availability" validate:"dive"`
}

func ptr(f float64) *float64 { return &f }

func TestValidateAcceptsGoodPayload(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(&payload{Tension: ptr(55), Notes: "ok"}))
	assert.NoError(t, v.Validate(&payload{}))
}

func TestValidateReportsFieldByJSONName(t *testing.T) {
	v := New()
	err := v.Validate(&payload{Tension: ptr(81)})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "tension_lbs must be at most 80", e.Message)
	assert.Contains(t, e.Details["fields"], "tension_lbs")
}

func TestValidateHHMM(t *testing.T) {
	v := New()
	for _, s := range []string{"00:00", "09:30", "23:59"} {
		assert.True(t, IsHHMM(s), s)
	}
	for _, s := range []string{"24:00", "9:30", "12:60", "noon", ""} {
		assert.False(t, IsHHMM(s), s)
	}

	err := v.Validate(&payload{Blocks: []block{{Start: "9:00", End: "17:00"}}})
	require.Error(t, err)
	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "availability[0].start must be a HH:mm time", e.Message)
}

func TestValidateRunsChecker(t *testing.T) {
	v := New()
	err := v.Validate(block{Start: "17:00", End: "09:00"})
	assert.True(t, apperr.Is(err, apperr.KindValidation))
	assert.NoError(t, v.Validate(block{Start: "09:00", End: "17:00"}))
}
