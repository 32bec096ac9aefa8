package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Mark is the aggregation input: one stored attendance row.
type Mark struct {
	StudentID uuid.UUID
	CourseID  uuid.UUID
	Date      time.Time
	Status    string
}

// SessionStat is the per-date bucket of a course trend.
type SessionStat struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Excused int    `json:"excused"`
	Rate    int    `json:"rate"`
}

// CourseOverview is one course line on the admin dashboard.
type CourseOverview struct {
	CourseID    uuid.UUID     `json:"course_id"`
	CourseName  string        `json:"course_name"`
	Enrolled    int           `json:"enrolled"`
	Sessions    []SessionStat `json:"sessions"`
	AverageRate int           `json:"average_rate"`
}

// StudentCourseSummary is one course line on a student's own page.
type StudentCourseSummary struct {
	CourseID   uuid.UUID `json:"course_id"`
	CourseName string    `json:"course_name"`
	Present    int       `json:"present"`
	Absent     int       `json:"absent"`
	Excused    int       `json:"excused"`
	Total      int       `json:"total"`
	Rate       int       `json:"rate"`
}

const dateLayout = "2006-01-02"

// SessionWindow returns `count` session dates stepping back `stepDays`
// calendar days at a time from `now`, sorted ascending. Stepping by
// AddDate rather than a Duration keeps the dates distinct across DST
// shifts. Dates are truncated to the day.
func SessionWindow(now time.Time, count, stepDays int) []time.Time {
	if count <= 0 {
		return nil
	}
	out := make([]time.Time, 0, count)
	d := now
	for i := 0; i < count; i++ {
		out = append(out, truncateDay(d))
		d = d.AddDate(0, 0, -stepDays)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// AttendanceRate scores present as 1 slot and excused as half a slot,
// as a rounded percentage of the total slots. Zero slots scores zero.
func AttendanceRate(present, excused, slots int) int {
	if slots <= 0 {
		return 0
	}
	return int(math.Round(100 * (float64(present) + 0.5*float64(excused)) / float64(slots)))
}

// BuildCourseOverview buckets the marks of one course into the session
// window. The denominator of each session is the enrolled headcount,
// floored at one so an empty roster never divides by zero.
func BuildCourseOverview(courseID uuid.UUID, courseName string, enrolled int, window []time.Time, marks []Mark) CourseOverview {
	byDate := map[string]*SessionStat{}
	sessions := make([]SessionStat, len(window))
	for i, d := range window {
		sessions[i] = SessionStat{Date: d.Format(dateLayout)}
		byDate[sessions[i].Date] = &sessions[i]
	}

	for _, m := range marks {
		if m.CourseID != courseID {
			continue
		}
		st, ok := byDate[truncateDay(m.Date).Format(dateLayout)]
		if !ok {
			continue
		}
		switch m.Status {
		case "present":
			st.Present++
		case "absent":
			st.Absent++
		case "excused":
			st.Excused++
		}
	}

	headcount := enrolled
	if headcount < 1 {
		headcount = 1
	}
	totalPresent, totalExcused := 0, 0
	for i := range sessions {
		sessions[i].Rate = AttendanceRate(sessions[i].Present, sessions[i].Excused, headcount)
		totalPresent += sessions[i].Present
		totalExcused += sessions[i].Excused
	}

	return CourseOverview{
		CourseID:    courseID,
		CourseName:  courseName,
		Enrolled:    enrolled,
		Sessions:    sessions,
		AverageRate: AttendanceRate(totalPresent, totalExcused, len(window)*headcount),
	}
}

// BuildStudentSummary scores one student in one course over their own
// marked sessions. Unlike the course average, the personal rate counts
// full presence only. A student with no marks at all scores zero.
func BuildStudentSummary(studentID, courseID uuid.UUID, courseName string, marks []Mark) StudentCourseSummary {
	s := StudentCourseSummary{CourseID: courseID, CourseName: courseName}
	for _, m := range marks {
		if m.StudentID != studentID || m.CourseID != courseID {
			continue
		}
		switch m.Status {
		case "present":
			s.Present++
		case "absent":
			s.Absent++
		case "excused":
			s.Excused++
		default:
			continue
		}
		s.Total++
	}
	if s.Total > 0 {
		s.Rate = int(math.Round(100 * float64(s.Present) / float64(s.Total)))
	}
	return s
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
