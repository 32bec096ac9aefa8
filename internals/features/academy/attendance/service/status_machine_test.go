package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestApply_TogglesOffOnReselect(t *testing.T) {
	tests := []struct {
		name     string
		current  Kind
		selected Kind
	}{
		{"present twice", KindPresent, KindPresent},
		{"absent twice", KindAbsent, KindAbsent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Apply(tt.current, tt.selected, "")
			assert.NoError(t, err)
			assert.Equal(t, KindUnset, next)
		})
	}
}

func TestApply_Transitions(t *testing.T) {
	tests := []struct {
		name     string
		current  Kind
		selected Kind
		reason   string
		want     Kind
	}{
		{"unset to present", KindUnset, KindPresent, "", KindPresent},
		{"unset to absent", KindUnset, KindAbsent, "", KindAbsent},
		{"present to absent", KindPresent, KindAbsent, "", KindAbsent},
		{"absent to present", KindAbsent, KindPresent, "", KindPresent},
		{"excused to present", KindExcused, KindPresent, "", KindPresent},
		{"unset to excused with reason", KindUnset, KindExcused, "مرض", KindExcused},
		{"excused reason updated", KindExcused, KindExcused, "سفر", KindExcused},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Apply(tt.current, tt.selected, tt.reason)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}

func TestApply_ExcusedWithoutReasonIs422(t *testing.T) {
	next, err := Apply(KindUnset, KindExcused, "   ")
	assert.Error(t, err)
	assert.Equal(t, KindPendingExcuse, next)

	var fe *fiber.Error
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fe.Code)
}

func TestApply_ExcusedEmptyReasonTogglesOffWhenAlreadyExcused(t *testing.T) {
	next, err := Apply(KindExcused, KindExcused, "")
	assert.NoError(t, err)
	assert.Equal(t, KindUnset, next)
}

func TestApply_UnknownStatus(t *testing.T) {
	_, err := Apply(KindUnset, Kind("late"), "")
	assert.Error(t, err)
}

func TestPersistable(t *testing.T) {
	assert.True(t, Persistable(KindPresent))
	assert.True(t, Persistable(KindAbsent))
	assert.True(t, Persistable(KindExcused))
	assert.False(t, Persistable(KindUnset))
	assert.False(t, Persistable(KindPendingExcuse))
}

func TestKindFromStored(t *testing.T) {
	assert.Equal(t, KindPresent, KindFromStored("present"))
	assert.Equal(t, KindAbsent, KindFromStored("absent"))
	assert.Equal(t, KindExcused, KindFromStored("excused"))
	assert.Equal(t, KindUnset, KindFromStored(""))
	assert.Equal(t, KindUnset, KindFromStored("whatever"))
}
