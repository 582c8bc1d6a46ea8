package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"carrental-backend/internal/domain"
)

func TestParseRequestStatus(t *testing.T) {
	st, ok := domain.ParseRequestStatus(" confirmed ")
	assert.True(t, ok)
	assert.Equal(t, domain.RequestStatusConfirmed, st)

	_, ok = domain.ParseRequestStatus("archived")
	assert.False(t, ok)
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to domain.RequestStatus
		want     bool
	}{
		{domain.RequestStatusPending, domain.RequestStatusConfirmed, true},
		{domain.RequestStatusPending, domain.RequestStatusCancelled, true},
		{domain.RequestStatusConfirmed, domain.RequestStatusConfirmed, true},
		{domain.RequestStatusConfirmed, domain.RequestStatusPending, false},
		{domain.RequestStatusConfirmed, domain.RequestStatusCancelled, false},
		{domain.RequestStatusCancelled, domain.RequestStatusConfirmed, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s->%s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestConflictErrorIs(t *testing.T) {
	err := fmt.Errorf("create: %w", &domain.ConflictError{Field: "vehicle", Message: "taken"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	var ce *domain.ConflictError
	assert.True(t, errors.As(err, &ce))
	assert.Equal(t, "vehicle", ce.Field)
}

func TestValidationError(t *testing.T) {
	v := domain.NewValidationError()
	assert.True(t, v.Empty())
	v.Add("phone", "required")
	v.Add("name", "required")
	assert.False(t, v.Empty())
	assert.Equal(t, "validation failed: name: required; phone: required", v.Error())
}

func TestOperatorAndRef(t *testing.T) {
	assert.False(t, domain.Operator{}.Valid())
	assert.True(t, domain.NewOperator("admin").Valid())

	assert.Nil(t, domain.VehicleRef{Name: "Clio"}.IDPtr())
	v := &domain.Vehicle{ID: 7, Name: "Clio"}
	id := v.Ref().IDPtr()
	if assert.NotNil(t, id) {
		assert.Equal(t, int64(7), *id)
	}
}
