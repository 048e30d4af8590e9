package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	err := NewBusinessRuleError("paid amount exceeds payable amount")
	wrapped := fmt.Errorf("record payable: %w", err)

	assert.ErrorIs(t, wrapped, ErrBusinessRule)
	assert.NotErrorIs(t, wrapped, ErrValidation)
	assert.Equal(t, "paid amount exceeds payable amount", err.Error())

	var de *DomainError
	assert.True(t, errors.As(wrapped, &de))
	assert.Equal(t, CodeBusinessRule, de.Code)
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("payoutPercent", "must be between 0 and 100")
	assert.Equal(t, "payoutPercent must be between 0 and 100", err.Error())
	assert.Equal(t, "payoutPercent", err.Field)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFilter_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Filter
		want Filter
	}{
		{"defaults", Filter{}, Filter{Page: 1, PageSize: DefaultPageSize, OrderDir: "desc"}},
		{"clamps page size", Filter{Page: 3, PageSize: MaxPageSize + 1, OrderDir: "asc"}, Filter{Page: 3, PageSize: MaxPageSize, OrderDir: "asc"}},
		{"unknown direction", Filter{Page: 2, PageSize: 10, OrderDir: "sideways"}, Filter{Page: 2, PageSize: 10, OrderDir: "desc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}

	assert.Equal(t, 20, Filter{Page: 3, PageSize: 10}.Offset())
}

func TestBaseAggregateRoot(t *testing.T) {
	root := NewBaseAggregateRoot()
	assert.Equal(t, 1, root.GetVersion())
	before := root.UpdatedAt

	root.IncrementVersion()
	assert.Equal(t, 2, root.GetVersion())
	assert.False(t, root.UpdatedAt.Before(before))

	root.AddDomainEvent(&testEvent{BaseDomainEvent: NewBaseDomainEvent("PayoutCreated", "AdvisorPayout", root.ID, uuid.New())})
	assert.Len(t, root.GetDomainEvents(), 1)
	root.ClearDomainEvents()
	assert.Empty(t, root.GetDomainEvents())
}

type testEvent struct {
	BaseDomainEvent
}

func TestAudit(t *testing.T) {
	creator, editor := uuid.New(), uuid.New()
	a := NewAudit(creator)
	a.Stamp(editor)
	assert.Equal(t, creator, a.CreatedBy)
	assert.Equal(t, editor, a.UpdatedBy)
}
