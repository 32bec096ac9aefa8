package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	database "almanar_backend/internals/databases"
)

func TestSheetReasonExpr_TracksReasonColumn(t *testing.T) {
	was := database.Meta.HasAttendanceReason
	defer func() { database.Meta.HasAttendanceReason = was }()

	database.Meta.HasAttendanceReason = true
	assert.Equal(t, "a.attendance_reason", sheetReasonExpr())

	database.Meta.HasAttendanceReason = false
	assert.Equal(t, "NULL", sheetReasonExpr())
}

func TestHistoryColumns_TracksReasonColumn(t *testing.T) {
	was := database.Meta.HasAttendanceReason
	defer func() { database.Meta.HasAttendanceReason = was }()

	database.Meta.HasAttendanceReason = false
	assert.NotContains(t, historyColumns(), "attendance_reason")

	database.Meta.HasAttendanceReason = true
	assert.Contains(t, historyColumns(), "attendance_reason")
}
