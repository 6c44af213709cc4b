// Package tzstr parses POSIX-style TZ strings such as
// "PST8PDT,M3.2.0/2,M11.1.0/2" into tzone.TimeZone values. This is the
// same rule language TZif files carry in their footer, and it describes a
// zone without touching any on-disk zone database.
//
// The M-form transition date (month.week.weekday) is supported; the Julian
// day forms are not and are rejected with an error.
package tzstr

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ngrash/go-tzone/tzone"
)

// ErrInvalid is wrapped by every parse failure.
var ErrInvalid = errors.New("tzstr: invalid tz string")

// parseError is an error that occurred while parsing a TZ string. It
// carries the input and the byte position where parsing failed.
type parseError struct {
	input string
	pos   int
	err   error
}

func (e *parseError) Error() string {
	return fmt.Sprintf("%q at position %d: %v", e.input, e.pos, e.err)
}

func (e *parseError) Unwrap() error { return ErrInvalid }

// Parse parses a TZ string into a zone whose identity is the string
// itself. A string with a daylight designation must carry the transition
// rule part: no implementation-defined default rules are filled in.
func Parse(s string) (*tzone.TimeZone, error) {
	return ParseNamed(s, s)
}

// ParseNamed parses a TZ string into a zone with the given identity.
func ParseNamed(id, s string) (*tzone.TimeZone, error) {
	p := &parser{input: s}

	if _, err := p.designation(); err != nil {
		return nil, err
	}
	stdOffset, err := p.offset()
	if err != nil {
		return nil, err
	}
	// POSIX offsets are west-positive: the value added to local time to
	// reach UTC. The zone model is east-positive.
	baseUTCOffset := -stdOffset

	if p.done() {
		return newZone(id, baseUTCOffset, nil)
	}

	if _, err := p.designation(); err != nil {
		return nil, err
	}
	dstUTCOffset := baseUTCOffset + time.Hour
	if !p.done() && p.peek() != ',' {
		off, err := p.offset()
		if err != nil {
			return nil, err
		}
		dstUTCOffset = -off
	}

	if p.done() {
		return nil, p.errorf("daylight designation without transition rules")
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	start, err := p.transition()
	if err != nil {
		return nil, err
	}
	if err := p.expect(','); err != nil {
		return nil, err
	}
	end, err := p.transition()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		return nil, p.errorf("trailing input")
	}

	rule, err := tzone.NewAdjustmentRule(
		tzone.Date(1, time.January, 1, 0, 0, 0, 0, tzone.Unspecified),
		tzone.Date(9999, time.December, 31, 0, 0, 0, 0, tzone.Unspecified),
		dstUTCOffset-baseUTCOffset,
		0,
		tzone.BoundaryAt(start),
		tzone.BoundaryAt(end),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return newZone(id, baseUTCOffset, []tzone.AdjustmentRule{rule})
}

// newZone builds the zone and folds construction failures, such as an
// offset beyond ±14h, into ErrInvalid.
func newZone(id string, baseUTCOffset time.Duration, rules []tzone.AdjustmentRule) (*tzone.TimeZone, error) {
	z, err := tzone.New(id, baseUTCOffset, rules)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return z, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return &parseError{input: p.input, pos: p.pos, err: fmt.Errorf(format, args...)}
}

func (p *parser) done() bool { return p.pos >= len(p.input) }

func (p *parser) peek() byte { return p.input[p.pos] }

func (p *parser) expect(c byte) error {
	if p.done() || p.peek() != c {
		return p.errorf("expected %q", string(c))
	}
	p.pos++
	return nil
}

// designation reads a zone abbreviation: three or more letters, or an
// arbitrary <...> quoted form.
func (p *parser) designation() (string, error) {
	if p.done() {
		return "", p.errorf("missing designation")
	}
	if p.peek() == '<' {
		end := strings.IndexByte(p.input[p.pos:], '>')
		if end < 0 {
			return "", p.errorf("unterminated quoted designation")
		}
		name := p.input[p.pos+1 : p.pos+end]
		p.pos += end + 1
		if name == "" {
			return "", p.errorf("empty quoted designation")
		}
		return name, nil
	}
	start := p.pos
	for !p.done() && isAlpha(p.peek()) {
		p.pos++
	}
	name := p.input[start:p.pos]
	if len(name) < 3 {
		return "", p.errorf("designation %q shorter than three letters", name)
	}
	return name, nil
}

// offset reads [+|-]hh[:mm[:ss]] with hours in 0..24.
func (p *parser) offset() (time.Duration, error) {
	neg := false
	if !p.done() && (p.peek() == '+' || p.peek() == '-') {
		neg = p.peek() == '-'
		p.pos++
	}
	hours, err := p.number(0, 24)
	if err != nil {
		return 0, err
	}
	d := time.Duration(hours) * time.Hour
	for _, unit := range []time.Duration{time.Minute, time.Second} {
		if p.done() || p.peek() != ':' {
			break
		}
		p.pos++
		n, err := p.number(0, 59)
		if err != nil {
			return 0, err
		}
		d += time.Duration(n) * unit
	}
	if neg {
		d = -d
	}
	return d, nil
}

// transition reads an M-form transition date with an optional /time part:
// Mmonth.week.weekday[/time]. The Julian day forms are not supported.
func (p *parser) transition() (tzone.TransitionTime, error) {
	if p.done() {
		return tzone.TransitionTime{}, p.errorf("missing transition date")
	}
	if p.peek() == 'J' || isDigit(p.peek()) {
		return tzone.TransitionTime{}, p.errorf("julian day transition dates are not supported")
	}
	if err := p.expect('M'); err != nil {
		return tzone.TransitionTime{}, err
	}
	month, err := p.number(1, 12)
	if err != nil {
		return tzone.TransitionTime{}, err
	}
	if err := p.expect('.'); err != nil {
		return tzone.TransitionTime{}, err
	}
	week, err := p.number(1, 5)
	if err != nil {
		return tzone.TransitionTime{}, err
	}
	if err := p.expect('.'); err != nil {
		return tzone.TransitionTime{}, err
	}
	weekday, err := p.number(0, 6)
	if err != nil {
		return tzone.TransitionTime{}, err
	}

	timeOfDay := 2 * time.Hour
	if !p.done() && p.peek() == '/' {
		p.pos++
		timeOfDay, err = p.offset()
		if err != nil {
			return tzone.TransitionTime{}, err
		}
		if timeOfDay < 0 || timeOfDay >= 24*time.Hour {
			return tzone.TransitionTime{}, p.errorf("transition time %v outside [0h, 24h)", timeOfDay)
		}
	}

	tt, err := tzone.NewFloatingDateTransition(time.Month(month), week, time.Weekday(weekday), timeOfDay)
	if err != nil {
		return tzone.TransitionTime{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return tt, nil
}

func (p *parser) number(min, max int) (int, error) {
	start := p.pos
	n := 0
	for !p.done() && isDigit(p.peek()) {
		n = n*10 + int(p.peek()-'0')
		if n > 9999 {
			return 0, p.errorf("number too large")
		}
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected a number")
	}
	if n < min || n > max {
		return 0, p.errorf("number %d outside %d..%d", n, min, max)
	}
	return n, nil
}

func isAlpha(c byte) bool { return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
