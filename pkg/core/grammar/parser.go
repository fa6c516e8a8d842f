package grammar

import (
	"strconv"
	"strings"
	"time"

	"github.com/emmalawson/stagecall/pkg/core/interval"
)

// DefaultPMCutoff is the highest bare hour assumed to mean the afternoon.
// Rehearsals happen in the evening, so "w 2-4" almost certainly means 2pm.
const DefaultPMCutoff = 7

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday, "mo": time.Monday, "m": time.Monday,
	"tuesday": time.Tuesday, "tues": time.Tuesday, "tu": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday, "we": time.Wednesday, "w": time.Wednesday,
	"thursday": time.Thursday, "thurs": time.Thursday, "th": time.Thursday,
	"friday": time.Friday, "fri": time.Friday, "fr": time.Friday, "f": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday, "sa": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday, "su": time.Sunday,
}

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Options are the policy knobs the token grammar leaves open.
type Options struct {
	// ProductionYear anchors two-digit years: the century that brings the
	// year closest to it wins. Zero means the current year.
	ProductionYear int

	// PMCutoff overrides DefaultPMCutoff when positive.
	PMCutoff int
}

// Parser converts normalized constraint tokens into Constraints. A Parser is
// immutable and safe for concurrent use.
type Parser struct {
	productionYear int
	pmCutoff       int
}

// NewParser builds a parser with the given policies, falling back to the
// current year and DefaultPMCutoff.
func NewParser(opts Options) *Parser {
	year := opts.ProductionYear
	if year == 0 {
		year = time.Now().Year()
	}
	cutoff := opts.PMCutoff
	if cutoff <= 0 {
		cutoff = DefaultPMCutoff
	}
	return &Parser{productionYear: year, pmCutoff: cutoff}
}

// TokenResult is the outcome of parsing one token of a comma-separated
// constraint text. Exactly one of Constraint and Err is set.
type TokenResult struct {
	// Index is the token's position in the comma-split text, counting
	// empty segments so it maps back to the source cell.
	Index      int
	Text       string
	Constraint Constraint
	Err        *ParseError
}

// Parse splits a constraint text on commas and parses each trimmed token
// independently. A failed token never blocks the others; empty tokens from
// stray commas are skipped.
func (p *Parser) Parse(text string) []TokenResult {
	parts := strings.Split(text, ",")
	results := make([]TokenResult, 0, len(parts))

	for i, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}

		res := TokenResult{Index: i, Text: token}
		c, perr := p.parseToken(token)
		if perr != nil {
			perr.TokenIndex = i
			res.Err = perr
		} else {
			res.Constraint = c
		}
		results = append(results, res)
	}

	return results
}

// ParseToken parses a single trimmed token. The returned error, when not
// nil, is a *ParseError.
func (p *Parser) ParseToken(token string) (Constraint, error) {
	c, perr := p.parseToken(strings.TrimSpace(token))
	if perr != nil {
		return nil, perr
	}
	return c, nil
}

func (p *Parser) parseToken(token string) (Constraint, *ParseError) {
	if token == "" {
		return nil, errorf(token, "empty token")
	}

	items, lexErr := lex(token)
	if lexErr != nil {
		return nil, lexErr
	}
	if len(items) == 0 {
		return nil, errorf(token, "empty token")
	}

	t := &tokenParser{parser: p, text: token, items: items}
	return t.parseConstraint()
}

type tokenParser struct {
	parser *Parser
	text   string
	items  []item
	pos    int
}

func (t *tokenParser) done() bool {
	return t.pos >= len(t.items)
}

func (t *tokenParser) peek() (item, bool) {
	if t.done() {
		return item{}, false
	}
	return t.items[t.pos], true
}

func (t *tokenParser) next() (item, bool) {
	it, ok := t.peek()
	if ok {
		t.pos++
	}
	return it, ok
}

func (t *tokenParser) peekKind(kind itemKind) bool {
	it, ok := t.peek()
	return ok && it.kind == kind
}

func (t *tokenParser) fail(format string, args ...any) *ParseError {
	return errorf(t.text, format, args...)
}

func (t *tokenParser) parseConstraint() (Constraint, *ParseError) {
	first, _ := t.peek()

	switch first.kind {
	case itemWord:
		if day, ok := weekdays[first.text]; ok {
			t.pos++
			return t.finishWeekday(day)
		}
		if _, ok := months[first.text]; ok {
			date, perr := t.parseDate()
			if perr != nil {
				return nil, perr
			}
			return t.finishDate(date)
		}
		return nil, t.fail("unrecognized day or month %q", first.text)

	case itemNumber:
		// Tokens that open with a number can only be numeric dates;
		// a bare time range has nothing to attach to.
		date, perr := t.parseDate()
		if perr != nil {
			return nil, perr
		}
		return t.finishDate(date)

	default:
		return nil, t.fail("token must start with a weekday or a date")
	}
}

func (t *tokenParser) finishWeekday(day time.Weekday) (Constraint, *ParseError) {
	if t.done() {
		return WeekdayRule{Day: day, Window: interval.FullDay}, nil
	}

	window, perr := t.parseWindow()
	if perr != nil {
		return nil, perr
	}
	if !t.done() {
		it, _ := t.peek()
		return nil, t.fail("unexpected %q after time qualifier", it.text)
	}
	return WeekdayRule{Day: day, Window: window}, nil
}

func (t *tokenParser) finishDate(date time.Time) (Constraint, *ParseError) {
	if t.done() {
		return DateRule{Date: date, Window: interval.FullDay}, nil
	}

	if t.peekKind(itemDash) {
		t.pos++
		end, perr := t.parseDate()
		if perr != nil {
			return nil, perr
		}
		if end.Before(date) {
			return nil, t.fail("invalid date range: start %s is after end %s",
				formatDate(date), formatDate(end))
		}
		if !t.done() {
			return nil, t.fail("a date range cannot carry a time qualifier")
		}
		return DateRangeRule{Start: date, End: end}, nil
	}

	window, perr := t.parseWindow()
	if perr != nil {
		return nil, perr
	}
	if !t.done() {
		it, _ := t.peek()
		return nil, t.fail("unexpected %q after time qualifier", it.text)
	}
	return DateRule{Date: date, Window: window}, nil
}

// parseDate accepts "Mon D Y" with a three-letter month or numeric "M/D/Y".
// The year is mandatory in both forms.
func (t *tokenParser) parseDate() (time.Time, *ParseError) {
	it, ok := t.peek()
	if !ok {
		return time.Time{}, t.fail("expected a date")
	}

	switch it.kind {
	case itemWord:
		month, known := months[it.text]
		if !known {
			return time.Time{}, t.fail("unrecognized month %q", it.text)
		}
		t.pos++
		return t.parseTextDate(month)
	case itemNumber:
		return t.parseNumericDate()
	default:
		return time.Time{}, t.fail("expected a date, got %q", it.text)
	}
}

func (t *tokenParser) parseTextDate(month time.Month) (time.Time, *ParseError) {
	dayItem, ok := t.next()
	if !ok || dayItem.kind != itemNumber {
		return time.Time{}, t.fail("expected a day after the month")
	}
	day, perr := t.atoi(dayItem.text)
	if perr != nil {
		return time.Time{}, perr
	}

	yearItem, ok := t.next()
	if !ok || yearItem.kind != itemNumber {
		return time.Time{}, t.fail("date is missing its year")
	}
	year, perr := t.resolveYear(yearItem.text)
	if perr != nil {
		return time.Time{}, perr
	}

	return t.makeDate(year, month, day)
}

func (t *tokenParser) parseNumericDate() (time.Time, *ParseError) {
	monthItem, _ := t.next()
	month, perr := t.atoi(monthItem.text)
	if perr != nil {
		return time.Time{}, perr
	}
	if month < 1 || month > 12 {
		return time.Time{}, t.fail("invalid month %d: must be between 1 and 12", month)
	}

	if !t.peekKind(itemSlash) {
		return time.Time{}, t.fail("expected '/' after the month")
	}
	t.pos++

	dayItem, ok := t.next()
	if !ok || dayItem.kind != itemNumber {
		return time.Time{}, t.fail("expected a day after '/'")
	}
	day, perr := t.atoi(dayItem.text)
	if perr != nil {
		return time.Time{}, perr
	}

	if !t.peekKind(itemSlash) {
		return time.Time{}, t.fail("date is missing its year")
	}
	t.pos++

	yearItem, ok := t.next()
	if !ok || yearItem.kind != itemNumber {
		return time.Time{}, t.fail("date is missing its year")
	}
	year, perr := t.resolveYear(yearItem.text)
	if perr != nil {
		return time.Time{}, perr
	}

	return t.makeDate(year, time.Month(month), day)
}

// resolveYear takes a raw year literal. Four digits are literal; two digits
// pick the century closest to the production year, the earlier century on a
// tie. Other lengths are rejected.
func (t *tokenParser) resolveYear(raw string) (int, *ParseError) {
	value, perr := t.atoi(raw)
	if perr != nil {
		return 0, perr
	}

	switch len(raw) {
	case 4:
		return value, nil
	case 2:
		anchor := t.parser.productionYear
		century := anchor - anchor%100
		best := 0
		bestDist := -1
		for _, candidate := range []int{century - 100 + value, century + value, century + 100 + value} {
			dist := candidate - anchor
			if dist < 0 {
				dist = -dist
			}
			if bestDist < 0 || dist < bestDist {
				best, bestDist = candidate, dist
			}
		}
		return best, nil
	default:
		return 0, t.fail("invalid year %q: use two or four digits", raw)
	}
}

func (t *tokenParser) makeDate(year int, month time.Month, day int) (time.Time, *ParseError) {
	if day < 1 || day > 31 {
		return time.Time{}, t.fail("invalid date: day %d out of range", day)
	}
	date := interval.Date(year, month, day)
	if date.Month() != month || date.Day() != day {
		return time.Time{}, t.fail("invalid date: day %d out of range for %s %d", day, month, year)
	}
	return date, nil
}

// parseWindow accepts one time qualifier: "before t", "until t", "after t"
// or an explicit "A-B" range.
func (t *tokenParser) parseWindow() (interval.TimeInterval, *ParseError) {
	it, ok := t.peek()
	if !ok {
		return interval.TimeInterval{}, t.fail("expected a time qualifier")
	}

	switch {
	case it.kind == itemWord && (it.text == "before" || it.text == "until"):
		t.pos++
		end, perr := t.parseClock()
		if perr != nil {
			return interval.TimeInterval{}, perr
		}
		return interval.TimeInterval{Start: 0, End: end}, nil

	case it.kind == itemWord && it.text == "after":
		t.pos++
		start, perr := t.parseClock()
		if perr != nil {
			return interval.TimeInterval{}, perr
		}
		return interval.TimeInterval{Start: start, End: interval.MinutesPerDay}, nil

	case it.kind == itemNumber:
		start, perr := t.parseClock()
		if perr != nil {
			return interval.TimeInterval{}, perr
		}
		if !t.peekKind(itemDash) {
			return interval.TimeInterval{}, t.fail("expected '-' in time range")
		}
		t.pos++
		end, perr := t.parseClock()
		if perr != nil {
			return interval.TimeInterval{}, perr
		}
		if start >= end {
			return interval.TimeInterval{}, t.fail("invalid time range: start %s must be before end %s",
				formatClock(start), formatClock(end))
		}
		return interval.TimeInterval{Start: start, End: end}, nil

	default:
		return interval.TimeInterval{}, t.fail("expected a time qualifier, got %q", it.text)
	}
}

// parseClock reads one time: "H", "H:MM", military "HHMM", each with an
// optional am/pm. Bare hours at or below the pm cutoff shift to the
// afternoon; 8 through 11 stay morning, 12 stays noon.
func (t *tokenParser) parseClock() (int, *ParseError) {
	it, ok := t.next()
	if !ok || it.kind != itemNumber {
		return 0, t.fail("expected a time")
	}

	value, perr := t.atoi(it.text)
	if perr != nil {
		return 0, perr
	}

	military := len(it.text) >= 3
	hour, mins := value, 0
	if military {
		hour, mins = value/100, value%100
	}

	if t.peekKind(itemColon) {
		if military {
			return 0, t.fail("unexpected ':' after a 4-digit time")
		}
		t.pos++
		minItem, ok := t.next()
		if !ok || minItem.kind != itemNumber {
			return 0, t.fail("expected minutes after ':'")
		}
		mins, perr = t.atoi(minItem.text)
		if perr != nil {
			return 0, perr
		}
	}

	meridiem := ""
	if next, ok := t.peek(); ok && next.kind == itemWord && (next.text == "am" || next.text == "pm") {
		meridiem = next.text
		t.pos++
	}

	if mins > 59 {
		return 0, t.fail("invalid minutes %d: must be between 0 and 59", mins)
	}

	if meridiem != "" {
		if military || hour < 1 || hour > 12 {
			return 0, t.fail("invalid 12-hour time: hour %d must be between 1 and 12", hour)
		}
		if meridiem == "pm" && hour < 12 {
			hour += 12
		} else if meridiem == "am" && hour == 12 {
			hour = 0
		}
	} else {
		if hour > 24 {
			return 0, t.fail("invalid 24-hour time: hour %d cannot be greater than 24", hour)
		}
		if !military && hour >= 1 && hour <= t.parser.pmCutoff {
			hour += 12
		}
	}

	minute := hour*60 + mins
	if minute > interval.MinutesPerDay {
		return 0, t.fail("time %02d:%02d is past the end of the day", hour, mins)
	}
	return minute, nil
}

func (t *tokenParser) atoi(raw string) (int, *ParseError) {
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, t.fail("invalid number %q", raw)
	}
	return value, nil
}
