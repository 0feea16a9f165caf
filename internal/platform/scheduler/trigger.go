package scheduler

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
)

// Trigger decides when a job fires. It is either a Cron or an Interval.
type Trigger interface {
	Schedule() (cron.Schedule, error)
	String() string
}

var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// cronFields is ordered from most to least significant.
var cronFields = []string{"month", "day", "week", "day_of_week", "hour", "minute", "second"}

// Cron fires on calendar fields. Unset fields less significant than the most
// significant set field take their minimum; the others match everything.
// Cron{Hour: "0"} is midnight, not every minute of midnight.
// Week selects ISO week numbers (1-53) and, like DayOfWeek, never defaults.
type Cron struct {
	Month     string
	Day       string
	Week      string
	DayOfWeek string
	Hour      string
	Minute    string
	Second    string
	Location  *time.Location
}

func (c Cron) values() map[string]string {
	return map[string]string{
		"month":       c.Month,
		"day":         c.Day,
		"week":        c.Week,
		"day_of_week": c.DayOfWeek,
		"hour":        c.Hour,
		"minute":      c.Minute,
		"second":      c.Second,
	}
}

// Expr renders the six-field expression understood by the cron parser. The
// week field is not part of it; Schedule applies it on top.
func (c Cron) Expr() string {
	values := c.values()
	resolved := make(map[string]string, len(values))
	seenSet := false
	for _, name := range cronFields {
		v := strings.TrimSpace(values[name])
		switch {
		case v != "":
			seenSet = true
			resolved[name] = v
		case seenSet && name != "day_of_week" && name != "week":
			resolved[name] = minimum(name)
		default:
			resolved[name] = "*"
		}
	}
	return strings.Join([]string{
		resolved["second"],
		resolved["minute"],
		resolved["hour"],
		resolved["day"],
		resolved["month"],
		resolved["day_of_week"],
	}, " ")
}

func minimum(field string) string {
	switch field {
	case "day", "month":
		return "1"
	default:
		return "0"
	}
}

func (c Cron) Schedule() (cron.Schedule, error) {
	expr := c.Expr()
	if c.Location != nil {
		expr = "CRON_TZ=" + c.Location.String() + " " + expr
	}
	schedule, err := cronParser.Parse(expr)
	if err != nil {
		return nil, errors.Wrapf(err, "parse cron trigger %q", expr)
	}
	if strings.TrimSpace(c.Week) == "" {
		return schedule, nil
	}
	weeks, err := parseWeeks(c.Week)
	if err != nil {
		return nil, err
	}
	return weekSchedule{inner: schedule, weeks: weeks}, nil
}

func (c Cron) String() string {
	if w := strings.TrimSpace(c.Week); w != "" {
		return "cron[" + c.Expr() + " week=" + w + "]"
	}
	return "cron[" + c.Expr() + "]"
}

// weekSchedule restricts an inner schedule to a set of ISO weeks.
type weekSchedule struct {
	inner cron.Schedule
	weeks map[int]bool
}

func (s weekSchedule) Next(t time.Time) time.Time {
	// Two years of weeks is enough to reach any valid week number.
	for i := 0; i < 2*54; i++ {
		next := s.inner.Next(t)
		if next.IsZero() {
			return next
		}
		if _, week := next.ISOWeek(); s.weeks[week] {
			return next
		}
		t = startOfNextWeek(next).Add(-time.Second)
	}
	return time.Time{}
}

func startOfNextWeek(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-daysSinceMonday, 0, 0, 0, 0, t.Location())
	return monday.AddDate(0, 0, 7)
}

// parseWeeks accepts "*", "*/n", single weeks and a-b ranges, comma separated.
func parseWeeks(raw string) (map[int]bool, error) {
	weeks := make(map[int]bool)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		lo, hi, step := 1, 53, 1
		rangePart, stepPart, hasStep := strings.Cut(part, "/")
		if hasStep {
			n, err := strconv.Atoi(stepPart)
			if err != nil || n < 1 {
				return nil, errors.Newf("cron week step %q must be a positive integer", stepPart)
			}
			step = n
		}
		switch {
		case rangePart == "*":
		case strings.Contains(rangePart, "-"):
			a, b, _ := strings.Cut(rangePart, "-")
			var errA, errB error
			lo, errA = strconv.Atoi(a)
			hi, errB = strconv.Atoi(b)
			if errA != nil || errB != nil {
				return nil, errors.Newf("cron week range %q is not numeric", rangePart)
			}
		default:
			n, err := strconv.Atoi(rangePart)
			if err != nil {
				return nil, errors.Newf("cron week %q is not numeric", rangePart)
			}
			lo, hi = n, n
			if hasStep {
				hi = 53
			}
		}
		if lo < 1 || hi > 53 || lo > hi {
			return nil, errors.Newf("cron week %q must be within 1-53", part)
		}
		for w := lo; w <= hi; w += step {
			weeks[w] = true
		}
	}
	return weeks, nil
}

// Interval fires every Every after the previous planned run.
type Interval struct {
	Every time.Duration
}

func (i Interval) Schedule() (cron.Schedule, error) {
	if i.Every < time.Second {
		return nil, errors.Newf("interval trigger must be at least 1s, got %s", i.Every)
	}
	return cron.Every(i.Every), nil
}

func (i Interval) String() string {
	return "interval[" + i.Every.String() + "]"
}

// ParseTrigger reads the textual trigger form used in configuration:
//
//	cron:hour=0,minute=5
//	interval:minutes=30
func ParseTrigger(raw string) (Trigger, error) {
	kind, body, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return nil, errors.Newf("trigger %q must look like cron:... or interval:...", raw)
	}
	fields, err := parseFields(body)
	if err != nil {
		return nil, errors.Wrapf(err, "trigger %q", raw)
	}

	switch strings.ToLower(kind) {
	case "cron":
		return parseCron(fields)
	case "interval":
		return parseInterval(fields)
	default:
		return nil, errors.Newf("unknown trigger kind %q", kind)
	}
}

func parseFields(body string) (map[string]string, error) {
	out := make(map[string]string)
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, errors.Newf("field %q is not key=value", part)
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	if len(out) == 0 {
		return nil, errors.New("no fields")
	}
	return out, nil
}

func parseCron(fields map[string]string) (Trigger, error) {
	var c Cron
	for key, value := range fields {
		switch key {
		case "month":
			c.Month = value
		case "day":
			c.Day = value
		case "week":
			c.Week = value
		case "day_of_week":
			c.DayOfWeek = value
		case "hour":
			c.Hour = value
		case "minute":
			c.Minute = value
		case "second":
			c.Second = value
		case "timezone":
			loc, err := time.LoadLocation(value)
			if err != nil {
				return nil, errors.Wrapf(err, "cron timezone %q", value)
			}
			c.Location = loc
		default:
			return nil, errors.Newf("unknown cron field %q", key)
		}
	}
	if _, err := c.Schedule(); err != nil {
		return nil, err
	}
	return c, nil
}

func parseInterval(fields map[string]string) (Trigger, error) {
	units := map[string]time.Duration{
		"weeks":   7 * 24 * time.Hour,
		"days":    24 * time.Hour,
		"hours":   time.Hour,
		"minutes": time.Minute,
		"seconds": time.Second,
	}

	var every time.Duration
	for key, value := range fields {
		unit, ok := units[key]
		if !ok {
			return nil, errors.Newf("unknown interval field %q", key)
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, errors.Newf("interval %s=%q must be a non-negative integer", key, value)
		}
		every += time.Duration(n) * unit
	}

	trigger := Interval{Every: every}
	if _, err := trigger.Schedule(); err != nil {
		return nil, err
	}
	return trigger, nil
}
