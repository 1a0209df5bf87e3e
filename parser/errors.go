package parser

import (
	"errors"
)

// All decode failures wrap one of these so callers can test with
// errors.Is(). They are deterministic functions of the image bytes
// and never worth retrying.
var (
	MalformedBootSectorError  = errors.New("MalformedBootSector")
	TruncatedRecordError      = errors.New("TruncatedRecord")
	UnknownAttributeTypeError = errors.New("UnknownAttributeType")
	InvalidEncodingError      = errors.New("InvalidEncoding")
	InvalidDataRunError       = errors.New("InvalidDataRun")
	EntryOutOfRangeError      = errors.New("EntryOutOfRange")
	TimestampOutOfRangeError  = errors.New("TimestampOutOfRange")

	// Advisory only: collected as a warning on the decoded entry
	// unless Options.StrictFixups is set.
	FixupMismatchError = errors.New("FixupMismatch")
)
