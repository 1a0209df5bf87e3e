package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEntryHeader(t *testing.T) {
	assert := assert.New(t)

	record := makeEntry(7, MFT_ENTRY_FLAG_IN_USE, defaultAttributes())
	header, err := ParseEntryHeader(record, 7)
	assert.NoError(err)

	assert.Equal(int64(7), header.EntryNumber)
	assert.Equal("FILE", header.Magic)
	assert.Equal(uint16(testFixupOffset), header.FixupOffset)
	assert.Equal(uint16(3), header.FixupCount)
	assert.Equal(uint64(0x1234), header.LogfileSequenceNumber)
	assert.Equal(uint16(1), header.SequenceValue)
	assert.Equal(uint16(1), header.LinkCount)
	assert.Equal(uint16(testFirstAttribute), header.AttributeOffset)
	assert.True(header.InUse)
	assert.Equal(ENTRY_STATE_FILE, header.State)
	assert.Equal("Allocated File", header.State.String())
	assert.Equal(uint32(testEntrySize), header.EntryAllocatedSize)
	assert.Equal(uint16(4), header.NextAttributeId)
	assert.Equal(uint32(7), header.RecordNumber)
}

func TestParseEntryHeaderDirectory(t *testing.T) {
	record := makeEntry(5, MFT_ENTRY_FLAG_IN_USE|MFT_ENTRY_FLAG_DIRECTORY, nil)
	header, err := ParseEntryHeader(record, 5)
	assert.NoError(t, err)
	assert.Equal(t, ENTRY_STATE_DIRECTORY, header.State)
	assert.Equal(t, "Directory", header.State.String())

}

func TestParseEntryHeaderUnallocated(t *testing.T) {
	for _, testcase := range []struct {
		flags    uint16
		expected string
	}{
		{0x0000, "Unallocated File"},
		{0x0001, "Allocated File"},
		{0x0002, "Unallocated Directory"},
		{0x0003, "Directory"},

		// Other bits (e.g. extension records) do not change the state.
		{0x0005, "Allocated File"},
		{0x0004, "Unallocated File"},
	} {
		header, err := ParseEntryHeader(makeEntry(5, testcase.flags, nil), 5)
		assert.NoError(t, err)
		assert.Equal(t, testcase.expected, header.State.String(),
			"flags %#x", testcase.flags)
		assert.Equal(t, testcase.flags&MFT_ENTRY_FLAG_IN_USE != 0, header.InUse)
	}
}

func TestParseEntryHeaderTruncated(t *testing.T) {
	record := makeEntry(0, MFT_ENTRY_FLAG_IN_USE, nil)

	_, err := ParseEntryHeader(record[:MFT_ENTRY_HEADER_SIZE-1], 0)
	assert.ErrorIs(t, err, TruncatedRecordError)

	// First attribute offset outside the entry.
	record[20], record[21] = 0x00, 0x04
	_, err = ParseEntryHeader(record, 0)
	assert.ErrorIs(t, err, TruncatedRecordError)
}
