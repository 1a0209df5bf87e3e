package parser

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStandardInformation(t *testing.T) {
	assert := assert.New(t)

	si, err := ParseStandardInformation(standardInformationContent(0x21, 7, false))
	assert.NoError(err)
	assert.Equal(ATTR_TYPE_STANDARD_INFORMATION, si.ContentType())
	assert.Equal("1970-01-01 00:00:00.0000000 (UTC)", si.CreateTime.String())
	assert.Equal("1970-01-01 00:00:00.1234567 (UTC)", si.FileAlteredTime.String())
	assert.Equal("2019-04-02 12:09:00.0000000 (UTC)", si.MftAlteredTime.String())
	assert.Equal("2019-04-02 12:09:00.0000000 (UTC)", si.FileAccessedTime.String())
	assert.Equal([]string{"Read Only", "Archive"}, si.Flags.Labels())
	assert.Equal(uint32(7), si.OwnerId)
	assert.Equal(uint32(0x101), si.SecurityId)
	assert.Equal(uint64(0x5000), si.UpdateSequenceNumber)
}

func TestParseStandardInformationShort(t *testing.T) {
	si, err := ParseStandardInformation(standardInformationContent(0x02, 7, true))
	assert.NoError(t, err)
	assert.Equal(t, uint32(0), si.OwnerId)
	assert.Equal(t, uint32(0), si.SecurityId)
	assert.Equal(t, "Hidden", si.Flags.String())

	// Just enough for the owner id.
	content := make([]byte, 52)
	copy(content, standardInformationContent(0, 0, true))
	binary.LittleEndian.PutUint32(content[48:52], 9)
	si, err = ParseStandardInformation(content)
	assert.NoError(t, err)
	assert.Equal(t, uint32(9), si.OwnerId)
	assert.Equal(t, uint32(0), si.SecurityId)

	// Only part of the owner id is present.
	si, err = ParseStandardInformation(content[:50])
	assert.NoError(t, err)
	assert.Equal(t, uint32(9), si.OwnerId)

	binary.LittleEndian.PutUint32(content[48:52], 0x04030201)
	for length, expected := range map[int]uint32{
		48: 0,
		49: 0x01,
		50: 0x0201,
		51: 0x030201,
		52: 0x04030201,
	} {
		si, err = ParseStandardInformation(content[:length])
		assert.NoError(t, err)
		assert.Equal(t, expected, si.OwnerId, "%d bytes", length)
	}

	_, err = ParseStandardInformation(content[:STANDARD_INFORMATION_V1_SIZE-1])
	assert.ErrorIs(t, err, TruncatedRecordError)
}

func TestParseStandardInformationBadTime(t *testing.T) {
	content := standardInformationContent(0, 0, false)
	binary.LittleEndian.PutUint64(content[16:24], math.MaxUint64)

	_, err := ParseStandardInformation(content)
	assert.ErrorIs(t, err, TimestampOutOfRangeError)
}

func TestFileAttributes(t *testing.T) {
	assert.Equal(t, []string{}, FileAttributes(0).Labels())
	assert.Equal(t, "", FileAttributes(0).String())

	// Bits 3 and 4 have no label.
	assert.Equal(t, []string{"Read Only"}, FileAttributes(0x19).Labels())

	assert.Equal(t, "Read Only, Hidden, System, Archive, Device, Normal, "+
		"Temporary, Sparse File, Reparse Point, Compressed",
		FileAttributes(0xfff).String())

	// Only the low 12 bits are known.
	assert.Equal(t, "Archive", FileAttributes(0x10000020).String())
	assert.Equal(t, "0x21 (Read Only, Archive)", FileAttributes(0x21).DebugString())
}
