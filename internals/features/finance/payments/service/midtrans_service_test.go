package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseOrderDebtID(t *testing.T) {
	id := uuid.New()
	orderID := fmt.Sprintf("debt-%s-1756339200", id.String())

	got, err := ParseOrderDebtID(orderID)
	assert.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParseOrderDebtID_Rejects(t *testing.T) {
	cases := []string{
		"",
		"debt-",
		"donation-123",
		"debt-not-a-uuid-at-all-x-1756339200",
	}
	for _, orderID := range cases {
		_, err := ParseOrderDebtID(orderID)
		assert.Error(t, err, "order id %q", orderID)
	}
}
