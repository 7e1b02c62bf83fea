package attendance

import (
	"sort"
	"time"

	"workforce/backend/internal/entity"
)

// RestDay is the weekly rest day. Missing sessions on it are not counted as
// absences.
const RestDay = time.Friday

// MorningCutoffHour is the wall-clock hour at which an open MORNING session
// is considered expired. The session itself stays open until an explicit
// check-out; only the displayed elapsed time is clamped.
const MorningCutoffHour = 17

// Session is the aggregation input, detached from storage concerns.
type Session struct {
	EmployeeID      string
	ComeTime        time.Time
	LeaveTime       *time.Time
	Tag             string
	Status          string
	DurationMinutes *int
	Overtime        bool
	Latitude        *float64
	Longitude       *float64
}

// Duration returns the session length in whole minutes: the stored duration
// when present, otherwise (leave or now) minus come. Never negative.
func (s Session) Duration(now time.Time) int {
	if s.DurationMinutes != nil {
		if *s.DurationMinutes < 0 {
			return 0
		}
		return *s.DurationMinutes
	}

	end := now
	if s.LeaveTime != nil {
		end = *s.LeaveTime
	}

	minutes := int(end.Sub(s.ComeTime).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// counted reports whether the session's minutes land in the overtime bucket.
func (s Session) overtime() bool {
	return s.Overtime || s.Tag == entity.TagOvertime
}

// Event is one clock action in a day's ordered log.
type Event struct {
	Time time.Time `json:"time"`
	Kind string    `json:"kind"`
	Tag  string    `json:"tag,omitempty"`
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DaySummary is the per-day rollup. RegularMinutes + OvertimeMinutes always
// equals TotalMinutes.
type DaySummary struct {
	Date            time.Time  `json:"date"`
	Status          string     `json:"status"`
	RegularMinutes  int        `json:"regular_minutes"`
	OvertimeMinutes int        `json:"overtime_minutes"`
	TotalMinutes    int        `json:"total_minutes"`
	LastLeave       *time.Time `json:"last_leave,omitempty"`
	Events          []Event    `json:"events,omitempty"`
}

// Summary is the period rollup across day summaries.
type Summary struct {
	Days            []DaySummary `json:"days"`
	RegularMinutes  int          `json:"regular_minutes"`
	OvertimeMinutes int          `json:"overtime_minutes"`
	TotalMinutes    int          `json:"total_minutes"`
	LastLocation    *Location    `json:"last_location,omitempty"`
}

// Summarize rolls an employee's sessions for one month into day summaries.
// It is a pure function of its inputs: re-running it over the same session
// set yields the same summary. Open sessions accrue against now.
func Summarize(sessions []Session, year int, month time.Month, now time.Time) Summary {
	byDay := map[int]*DaySummary{}

	var lastCome time.Time
	var lastLocation *Location

	for _, s := range sessions {
		if s.ComeTime.Year() != year || s.ComeTime.Month() != month {
			continue
		}

		day := s.ComeTime.Day()
		d, ok := byDay[day]
		if !ok {
			d = &DaySummary{
				Date:   time.Date(year, month, day, 0, 0, 0, 0, s.ComeTime.Location()),
				Status: entity.StatusPresent,
			}
			byDay[day] = d
		}

		dur := s.Duration(now)
		if s.overtime() {
			d.OvertimeMinutes += dur
		} else {
			d.RegularMinutes += dur
		}
		d.TotalMinutes += dur

		if s.Status != "" && s.Status != entity.StatusPresent {
			d.Status = s.Status
		}

		d.Events = append(d.Events, Event{Time: s.ComeTime, Kind: "IN", Tag: s.Tag})
		if s.LeaveTime != nil {
			d.Events = append(d.Events, Event{Time: *s.LeaveTime, Kind: "OUT", Tag: s.Tag})
			if d.LastLeave == nil || s.LeaveTime.After(*d.LastLeave) {
				leave := *s.LeaveTime
				d.LastLeave = &leave
			}
		}

		if s.Latitude != nil && s.Longitude != nil && !s.ComeTime.Before(lastCome) {
			lastCome = s.ComeTime
			lastLocation = &Location{Latitude: *s.Latitude, Longitude: *s.Longitude}
		}
	}

	for _, d := range byDay {
		sort.Slice(d.Events, func(i, j int) bool { return d.Events[i].Time.Before(d.Events[j].Time) })
	}

	fillAbsences(byDay, year, month, now)

	summary := Summary{LastLocation: lastLocation}
	for _, d := range byDay {
		summary.Days = append(summary.Days, *d)
		summary.RegularMinutes += d.RegularMinutes
		summary.OvertimeMinutes += d.OvertimeMinutes
		summary.TotalMinutes += d.TotalMinutes
	}

	sort.Slice(summary.Days, func(i, j int) bool {
		return summary.Days[i].Date.After(summary.Days[j].Date)
	})

	return summary
}

// fillAbsences synthesizes zero-minute ABSENT days for every non-rest day
// from the 1st through the end of the month, stopping at today when the
// target month is the current one. Future months get no placeholders.
func fillAbsences(byDay map[int]*DaySummary, year int, month time.Month, now time.Time) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	if first.After(now) {
		return
	}

	lastDay := first.AddDate(0, 1, -1).Day()
	if year == now.Year() && month == now.Month() && now.Day() < lastDay {
		lastDay = now.Day()
	}

	for day := 1; day <= lastDay; day++ {
		if _, ok := byDay[day]; ok {
			continue
		}
		date := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		if date.Weekday() == RestDay {
			continue
		}
		byDay[day] = &DaySummary{Date: date, Status: entity.StatusAbsent}
	}
}

// EmployeeSummary pairs a summary with the employee it belongs to.
type EmployeeSummary struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name,omitempty"`
	Summary    Summary `json:"summary"`
}

// Rank orders employee summaries descending by total worked minutes.
func Rank(list []EmployeeSummary) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Summary.TotalMinutes > list[j].Summary.TotalMinutes
	})
}

// Elapsed computes the live elapsed minutes of an open session. For MORNING
// sessions that run past the cutoff hour the value is clamped to the cutoff
// and the session is reported expired; the session is not closed here.
func Elapsed(tag string, comeTime, now time.Time) (int, bool) {
	if tag == entity.TagMorning {
		cutoff := time.Date(comeTime.Year(), comeTime.Month(), comeTime.Day(),
			MorningCutoffHour, 0, 0, 0, comeTime.Location())
		if !now.Before(cutoff) {
			minutes := int(cutoff.Sub(comeTime).Minutes())
			if minutes < 0 {
				minutes = 0
			}
			return minutes, true
		}
	}

	minutes := int(now.Sub(comeTime).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	return minutes, false
}
