package ticketnum

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxRangeSpan caps the number of ticket numbers a single range may cover.
const MaxRangeSpan = 10000

// NumberWidth is the digit count of the numeric part of a ticket number.
const NumberWidth = 8

var ticketPattern = regexp.MustCompile(`^[A-Z]{2}\d{8}$`)

// TicketID is the structured form of a ticket number: a two-letter prefix
// and an 8-digit sequence number.
type TicketID struct {
	Prefix string
	Num    int
}

// String renders the canonical textual form, e.g. AB00001234.
func (id TicketID) String() string {
	return fmt.Sprintf("%s%0*d", id.Prefix, NumberWidth, id.Num)
}

// Parse converts a ticket number string to its structured form. Matching is
// case-insensitive but otherwise strict: ok is false when the input does
// not match the PP######## shape exactly, surrounding whitespace included.
func Parse(s string) (TicketID, bool) {
	s = strings.ToUpper(s)
	if !ticketPattern.MatchString(s) {
		return TicketID{}, false
	}
	num, err := strconv.Atoi(s[2:])
	if err != nil {
		return TicketID{}, false
	}
	return TicketID{Prefix: s[:2], Num: num}, true
}

// Range validation failures. Messages are surfaced verbatim in API error
// responses, so they name the specific rule violated.
var (
	ErrMalformedStart = fmt.Errorf("start ticket number must be 2 letters followed by %d digits", NumberWidth)
	ErrMalformedEnd   = fmt.Errorf("end ticket number must be 2 letters followed by %d digits", NumberWidth)
	ErrPrefixMismatch = fmt.Errorf("start and end ticket numbers must share the same prefix")
	ErrReversedBounds = fmt.Errorf("start ticket number must not exceed end ticket number")
	ErrSpanTooLarge   = fmt.Errorf("range covers more than %d ticket numbers", MaxRangeSpan)
)

// ValidateRange parses both endpoints and checks the range invariants:
// equal prefixes, start <= end, span of at most MaxRangeSpan.
func ValidateRange(start, end string) (TicketID, TicketID, error) {
	s, ok := Parse(start)
	if !ok {
		return TicketID{}, TicketID{}, ErrMalformedStart
	}
	e, ok := Parse(end)
	if !ok {
		return TicketID{}, TicketID{}, ErrMalformedEnd
	}
	if s.Prefix != e.Prefix {
		return TicketID{}, TicketID{}, ErrPrefixMismatch
	}
	if s.Num > e.Num {
		return TicketID{}, TicketID{}, ErrReversedBounds
	}
	if e.Num-s.Num+1 > MaxRangeSpan {
		return TicketID{}, TicketID{}, ErrSpanTooLarge
	}
	return s, e, nil
}
