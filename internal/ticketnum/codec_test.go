package ticketnum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	id, ok := Parse("AB00001234")
	require.True(t, ok)
	assert.Equal(t, "AB", id.Prefix)
	assert.Equal(t, 1234, id.Num)
}

func TestParseCaseInsensitive(t *testing.T) {
	id, ok := Parse("ab00001234")
	require.True(t, ok)
	assert.Equal(t, "AB", id.Prefix)
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, input := range []string{
		"",
		"AB1234",        // too few digits
		"A100001234",    // digit in prefix
		"ABC00001234",   // three-letter prefix
		"AB000012345",   // nine digits
		"AB0000123X",    // letter in number
		" AB00001234X ", // trailing junk
		" AB00001234 ",  // surrounding whitespace
		"AB00001234\n",  // trailing newline
	} {
		_, ok := Parse(input)
		assert.False(t, ok, "input %q", input)
	}
}

func TestStringZeroPads(t *testing.T) {
	assert.Equal(t, "AA00000007", TicketID{Prefix: "AA", Num: 7}.String())
	assert.Equal(t, "ZZ99999999", TicketID{Prefix: "ZZ", Num: 99999999}.String())
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, id := range []TicketID{
		{Prefix: "AA", Num: 0},
		{Prefix: "AB", Num: 1234},
		{Prefix: "ZZ", Num: 99999999},
	} {
		parsed, ok := Parse(id.String())
		require.True(t, ok)
		assert.Equal(t, id, parsed)
	}
}

func TestValidateRange(t *testing.T) {
	start, end, err := ValidateRange("AA00000001", "AA00010000")
	require.NoError(t, err)
	assert.Equal(t, TicketID{Prefix: "AA", Num: 1}, start)
	assert.Equal(t, TicketID{Prefix: "AA", Num: 10000}, end)
}

func TestValidateRangeSingleNumber(t *testing.T) {
	_, _, err := ValidateRange("AA00000042", "AA00000042")
	assert.NoError(t, err)
}

func TestValidateRangeErrors(t *testing.T) {
	cases := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"malformed start", "bogus", "AA00000010", ErrMalformedStart},
		{"malformed end", "AA00000001", "bogus", ErrMalformedEnd},
		{"prefix mismatch", "AA00000001", "BB00000010", ErrPrefixMismatch},
		{"reversed bounds", "AA00000005", "AA00000001", ErrReversedBounds},
		{"span too large", "AA00000001", "AA00010001", ErrSpanTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ValidateRange(tc.start, tc.end)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestValidateRangeSpanBoundary(t *testing.T) {
	// exactly 10000 numbers is allowed, 10001 is not
	_, _, err := ValidateRange("AA00000001", "AA00010000")
	assert.NoError(t, err)
	_, _, err = ValidateRange("AA00000000", "AA00010000")
	assert.ErrorIs(t, err, ErrSpanTooLarge)
}
