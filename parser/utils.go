package parser

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding/unicode"
)

const (
	// 100ns intervals between 1601-01-01 and 1970-01-01.
	FILETIME_UNIX_EPOCH = 116444736000000000

	FILETIME_TICKS_PER_SECOND = 10000000

	// Four digit years only.
	MAX_FILETIME_YEAR = 9999
)

// A WinFileTime is a timestamp in windows filetime format. We keep
// the raw value so the sub second remainder can be shown at the
// full 100ns precision.
type WinFileTime struct {
	time.Time
	Raw uint64
}

// ParseWinFileTime converts a count of 100ns intervals since
// 1601-01-01 UTC into a calendar time in UTC.
func ParseWinFileTime(filetime uint64) (WinFileTime, error) {
	seconds := int64(filetime/FILETIME_TICKS_PER_SECOND) -
		FILETIME_UNIX_EPOCH/FILETIME_TICKS_PER_SECOND
	nanos := int64(filetime%FILETIME_TICKS_PER_SECOND) * 100

	t := time.Unix(seconds, nanos).UTC()
	if t.Year() > MAX_FILETIME_YEAR {
		return WinFileTime{}, fmt.Errorf("%w: filetime %#x is year %d",
			TimestampOutOfRangeError, filetime, t.Year())
	}

	return WinFileTime{Time: t, Raw: filetime}, nil
}

// Sub second part in 100ns units.
func (self WinFileTime) Remainder() uint64 {
	return self.Raw % FILETIME_TICKS_PER_SECOND
}

// Calendar renders the time in the given location without the zone
// label, e.g. 1970-01-01 00:00:00.0000000
func (self WinFileTime) Calendar(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return fmt.Sprintf("%s.%07d",
		self.Time.In(loc).Format("2006-01-02 15:04:05"), self.Remainder())
}

// Zone is the timezone abbreviation in effect at this time.
func (self WinFileTime) Zone(loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	name, _ := self.Time.In(loc).Zone()
	return name
}

// Format renders the time the way istat does: calendar time followed
// by the zone label.
func (self WinFileTime) Format(loc *time.Location) string {
	return fmt.Sprintf("%s (%s)", self.Calendar(loc), self.Zone(loc))
}

func (self WinFileTime) String() string {
	return self.Format(time.UTC)
}

func (self WinFileTime) GoString() string {
	return self.String()
}

func (self WinFileTime) DebugString() string {
	return fmt.Sprintf("%#x (%v)", self.Raw, self)
}

// ParseUTF16String decodes a little endian UTF-16 buffer. NTFS names
// carry an explicit length so the buffer is decoded in full and not
// stopped at a NUL. Unpaired surrogates are an error rather than
// being replaced.
func ParseUTF16String(buf []byte) (string, error) {
	if len(buf)%2 != 0 {
		return "", fmt.Errorf("%w: odd length UTF-16 buffer (%d bytes)",
			InvalidEncodingError, len(buf))
	}

	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	decoded, err := decoder.Bytes(buf)
	if err != nil {
		return "", fmt.Errorf("%w: %v", InvalidEncodingError, err)
	}
	result := string(decoded)

	// The decoder substitutes U+FFFD for malformed sequences. Any
	// replacement characters not literally present in the input mean
	// the input was malformed.
	literal := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0xfd && buf[i+1] == 0xff {
			literal++
		}
	}
	if strings.Count(result, "\uFFFD") != literal {
		return "", fmt.Errorf("%w: malformed UTF-16 sequence %x",
			InvalidEncodingError, buf)
	}

	return result, nil
}
