package parser

import (
	"encoding/binary"
	"fmt"
)

const (
	// The NT 3.x/4 layout stops after the class id.
	STANDARD_INFORMATION_V1_SIZE = 48

	// Windows 2000 added owner, security, quota and USN fields.
	STANDARD_INFORMATION_V3_SIZE = 72
)

type StandardInformation struct {
	CreateTime       WinFileTime
	FileAlteredTime  WinFileTime
	MftAlteredTime   WinFileTime
	FileAccessedTime WinFileTime

	Flags       FileAttributes
	MaxVersions uint32
	Version     uint32
	ClassId     uint32

	// These are 0 on the short, pre Windows 2000 layout.
	OwnerId              uint32
	SecurityId           uint32
	QuotaCharged         uint64
	UpdateSequenceNumber uint64
}

func (self *StandardInformation) ContentType() AttributeType {
	return ATTR_TYPE_STANDARD_INFORMATION
}

// The four MACB timestamps in on disk order.
func parseTimestamps(content []byte, offset int) ([4]WinFileTime, error) {
	var result [4]WinFileTime
	for i := 0; i < 4; i++ {
		start := offset + 8*i
		ts, err := ParseWinFileTime(
			binary.LittleEndian.Uint64(content[start : start+8]))
		if err != nil {
			return result, err
		}
		result[i] = ts
	}
	return result, nil
}

// ParseStandardInformation decodes the resident content of a
// $STANDARD_INFORMATION attribute.
func ParseStandardInformation(content []byte) (*StandardInformation, error) {
	if len(content) < STANDARD_INFORMATION_V1_SIZE {
		return nil, fmt.Errorf(
			"%w: $STANDARD_INFORMATION needs %d bytes, got %d",
			TruncatedRecordError, STANDARD_INFORMATION_V1_SIZE, len(content))
	}

	times, err := parseTimestamps(content, 0)
	if err != nil {
		return nil, err
	}

	result := &StandardInformation{
		CreateTime:       times[0],
		FileAlteredTime:  times[1],
		MftAlteredTime:   times[2],
		FileAccessedTime: times[3],
		Flags:            FileAttributes(binary.LittleEndian.Uint32(content[32:36])),
		MaxVersions:      binary.LittleEndian.Uint32(content[36:40]),
		Version:          binary.LittleEndian.Uint32(content[40:44]),
		ClassId:          binary.LittleEndian.Uint32(content[44:48]),
	}

	// Content that stops part way into the owner id keeps the
	// bytes that are present.
	if len(content) > STANDARD_INFORMATION_V1_SIZE {
		owner, err := ParseUnsignedLE(
			content[STANDARD_INFORMATION_V1_SIZE:CapInt(len(content), 52)])
		if err != nil {
			return nil, err
		}
		result.OwnerId = uint32(owner)
	}

	if len(content) >= STANDARD_INFORMATION_V3_SIZE {
		result.SecurityId = binary.LittleEndian.Uint32(content[52:56])
		result.QuotaCharged = binary.LittleEndian.Uint64(content[56:64])
		result.UpdateSequenceNumber = binary.LittleEndian.Uint64(content[64:72])
	}

	return result, nil
}

func (self *StandardInformation) DebugString() string {
	result := "struct STANDARD_INFORMATION:\n"
	result += fmt.Sprintf("  Create_time: %v\n", self.CreateTime.DebugString())
	result += fmt.Sprintf("  File_altered_time: %v\n", self.FileAlteredTime.DebugString())
	result += fmt.Sprintf("  Mft_altered_time: %v\n", self.MftAlteredTime.DebugString())
	result += fmt.Sprintf("  File_accessed_time: %v\n", self.FileAccessedTime.DebugString())
	result += fmt.Sprintf("  Flags: %v\n", self.Flags.DebugString())
	result += fmt.Sprintf("  Owner_id: %#0x\n", self.OwnerId)
	result += fmt.Sprintf("  Security_id: %#0x\n", self.SecurityId)
	result += fmt.Sprintf("  Usn: %#0x\n", self.UpdateSequenceNumber)
	return result
}
