package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestSessionWindow(t *testing.T) {
	now := day("2026-08-28")
	w := SessionWindow(now, 10, 2)

	assert.Len(t, w, 10)
	// oldest first, newest is today
	assert.Equal(t, "2026-08-10", w[0].Format("2006-01-02"))
	assert.Equal(t, "2026-08-28", w[9].Format("2006-01-02"))
	for i := 1; i < len(w); i++ {
		assert.Equal(t, w[i-1].AddDate(0, 0, 2), w[i])
	}
}

// Stepping must be calendar days, not elapsed hours: across a DST
// change a 48h step lands two window entries on the same date.
func TestSessionWindow_DistinctDatesAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}
	// shortly after midnight, the day after clocks sprang forward
	now := time.Date(2026, 3, 9, 0, 30, 0, 0, loc)

	w := SessionWindow(now, 10, 2)

	seen := map[string]bool{}
	for _, d := range w {
		s := d.Format("2006-01-02")
		assert.False(t, seen[s], "duplicate window date %s", s)
		seen[s] = true
	}
	assert.Equal(t, "2026-03-09", w[9].Format("2006-01-02"))
	assert.Equal(t, "2026-02-19", w[0].Format("2006-01-02"))
}

func TestSessionWindow_Empty(t *testing.T) {
	assert.Nil(t, SessionWindow(time.Now(), 0, 2))
}

func TestAttendanceRate(t *testing.T) {
	tests := []struct {
		name    string
		present int
		excused int
		slots   int
		want    int
	}{
		{"all present", 10, 0, 10, 100},
		{"none marked", 0, 0, 10, 0},
		{"zero slots", 5, 0, 0, 0},
		{"excused counts half", 0, 10, 10, 50},
		{"mixed", 6, 2, 10, 70},
		{"rounds up", 1, 0, 3, 33},
		{"rounds to nearest", 2, 0, 3, 67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttendanceRate(tt.present, tt.excused, tt.slots))
		})
	}
}

func TestBuildCourseOverview(t *testing.T) {
	courseID := uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	window := SessionWindow(day("2026-08-28"), 3, 2) // 24, 26, 28

	marks := []Mark{
		{StudentID: s1, CourseID: courseID, Date: day("2026-08-24"), Status: "present"},
		{StudentID: s2, CourseID: courseID, Date: day("2026-08-24"), Status: "present"},
		{StudentID: s1, CourseID: courseID, Date: day("2026-08-26"), Status: "excused"},
		{StudentID: s2, CourseID: courseID, Date: day("2026-08-26"), Status: "absent"},
		// outside the window, must be ignored
		{StudentID: s1, CourseID: courseID, Date: day("2026-08-01"), Status: "present"},
		// another course, must be ignored
		{StudentID: s1, CourseID: uuid.New(), Date: day("2026-08-28"), Status: "present"},
	}

	ov := BuildCourseOverview(courseID, "تجويد", 2, window, marks)

	assert.Len(t, ov.Sessions, 3)
	assert.Equal(t, 100, ov.Sessions[0].Rate) // both present
	assert.Equal(t, 25, ov.Sessions[1].Rate)  // one excused of two
	assert.Equal(t, 0, ov.Sessions[2].Rate)   // unmarked session
	// (2 + 0.5*1) / (3 sessions * 2 enrolled) = 41.66 → 42
	assert.Equal(t, 42, ov.AverageRate)
}

func TestBuildCourseOverview_EmptyRosterDoesNotDivideByZero(t *testing.T) {
	courseID := uuid.New()
	window := SessionWindow(day("2026-08-28"), 10, 2)

	ov := BuildCourseOverview(courseID, "فقه", 0, window, nil)

	assert.Equal(t, 0, ov.AverageRate)
	for _, s := range ov.Sessions {
		assert.Equal(t, 0, s.Rate)
	}
}

func TestBuildStudentSummary(t *testing.T) {
	studentID, courseID := uuid.New(), uuid.New()

	marks := []Mark{
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-20"), Status: "present"},
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-22"), Status: "present"},
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-24"), Status: "absent"},
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-26"), Status: "excused"},
		// another student, ignored
		{StudentID: uuid.New(), CourseID: courseID, Date: day("2026-08-26"), Status: "absent"},
	}

	s := BuildStudentSummary(studentID, courseID, "نحو", marks)

	assert.Equal(t, 2, s.Present)
	assert.Equal(t, 1, s.Absent)
	assert.Equal(t, 1, s.Excused)
	assert.Equal(t, 4, s.Total)
	// full presence only: 2 of 4
	assert.Equal(t, 50, s.Rate)
}

// Half-credit applies to the course average only; the personal rate
// counts excused sessions in the denominator but not the numerator.
func TestBuildStudentSummary_ExcusedOnly(t *testing.T) {
	studentID, courseID := uuid.New(), uuid.New()
	marks := []Mark{
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-26"), Status: "excused"},
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-28"), Status: "excused"},
	}

	s := BuildStudentSummary(studentID, courseID, "حديث", marks)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 0, s.Rate)
}

// One session, one enrolled student, marked excused: the course average
// must land on exactly half credit.
func TestBuildCourseOverview_SingleExcusedIsHalf(t *testing.T) {
	courseID, studentID := uuid.New(), uuid.New()
	window := SessionWindow(day("2026-08-28"), 1, 2)
	marks := []Mark{
		{StudentID: studentID, CourseID: courseID, Date: day("2026-08-28"), Status: "excused"},
	}

	ov := BuildCourseOverview(courseID, "تفسير", 1, window, marks)
	assert.Equal(t, 50, ov.AverageRate)
}

func TestBuildStudentSummary_NoMarksScoresZero(t *testing.T) {
	s := BuildStudentSummary(uuid.New(), uuid.New(), "سيرة", nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0, s.Rate)
}

// End-to-end shape: enroll two students, mark one session, check the
// dashboard numbers line up with the per-student view.
func TestOverviewAndSummaryAgree(t *testing.T) {
	courseID := uuid.New()
	s1, s2 := uuid.New(), uuid.New()
	window := SessionWindow(day("2026-08-28"), 1, 2)

	marks := []Mark{
		{StudentID: s1, CourseID: courseID, Date: day("2026-08-28"), Status: "present"},
		{StudentID: s2, CourseID: courseID, Date: day("2026-08-28"), Status: "absent"},
	}

	ov := BuildCourseOverview(courseID, "قراءة", 2, window, marks)
	assert.Equal(t, 50, ov.AverageRate)

	sum1 := BuildStudentSummary(s1, courseID, "قراءة", marks)
	sum2 := BuildStudentSummary(s2, courseID, "قراءة", marks)
	assert.Equal(t, 100, sum1.Rate)
	assert.Equal(t, 0, sum2.Rate)
}
