package parser

import (
	"encoding/binary"
	"fmt"
)

const (
	// Fixed part before the name.
	FILE_NAME_HEADER_SIZE = 66
)

type NameType uint8

const (
	NAME_TYPE_POSIX NameType = iota
	NAME_TYPE_WIN32
	NAME_TYPE_DOS
	NAME_TYPE_DOS_WIN32
)

func (self NameType) String() string {
	switch self {
	case NAME_TYPE_POSIX:
		return "POSIX"
	case NAME_TYPE_WIN32:
		return "Win32"
	case NAME_TYPE_DOS:
		return "DOS"
	case NAME_TYPE_DOS_WIN32:
		return "DOS+Win32"
	}
	return fmt.Sprintf("Unknown (%d)", uint8(self))
}

type FileName struct {
	// 48 bit entry number and 16 bit sequence of the parent directory.
	ParentEntry    uint64
	ParentSequence uint16

	Created       WinFileTime
	FileModified  WinFileTime
	MftModified   WinFileTime
	FileAccessed  WinFileTime
	AllocatedSize uint64
	ActualSize    uint64

	// Independent of the $STANDARD_INFORMATION flags.
	Flags FileAttributes

	ReparseValue uint32
	NameType     NameType
	Name         string
}

func (self *FileName) ContentType() AttributeType {
	return ATTR_TYPE_FILE_NAME
}

// ParseFileName decodes the resident content of a $FILE_NAME
// attribute. The name length is a character count, so the name may
// legitimately contain NUL characters.
func ParseFileName(content []byte) (*FileName, error) {
	if len(content) < FILE_NAME_HEADER_SIZE {
		return nil, fmt.Errorf("%w: $FILE_NAME needs %d bytes, got %d",
			TruncatedRecordError, FILE_NAME_HEADER_SIZE, len(content))
	}

	times, err := parseTimestamps(content, 8)
	if err != nil {
		return nil, err
	}

	reference := binary.LittleEndian.Uint64(content[0:8])
	result := &FileName{
		ParentEntry:    reference & 0xffffffffffff,
		ParentSequence: binary.LittleEndian.Uint16(content[6:8]),
		Created:        times[0],
		FileModified:   times[1],
		MftModified:    times[2],
		FileAccessed:   times[3],
		AllocatedSize:  binary.LittleEndian.Uint64(content[40:48]),
		ActualSize:     binary.LittleEndian.Uint64(content[48:56]),
		Flags:          FileAttributes(binary.LittleEndian.Uint32(content[56:60])),
		ReparseValue:   binary.LittleEndian.Uint32(content[60:64]),
		NameType:       NameType(content[65]),
	}

	name_length := int(content[64])
	name_end := FILE_NAME_HEADER_SIZE + 2*name_length
	if name_end > len(content) {
		return nil, fmt.Errorf("%w: name of %d characters exceeds %d bytes",
			TruncatedRecordError, name_length, len(content))
	}

	result.Name, err = ParseUTF16String(content[FILE_NAME_HEADER_SIZE:name_end])
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (self *FileName) DebugString() string {
	result := "struct FILE_NAME:\n"
	result += fmt.Sprintf("  MftReference: %#0x\n", self.ParentEntry)
	result += fmt.Sprintf("  Seq_num: %#0x\n", self.ParentSequence)
	result += fmt.Sprintf("  Created: %v\n", self.Created.DebugString())
	result += fmt.Sprintf("  File_modified: %v\n", self.FileModified.DebugString())
	result += fmt.Sprintf("  Mft_modified: %v\n", self.MftModified.DebugString())
	result += fmt.Sprintf("  File_accessed: %v\n", self.FileAccessed.DebugString())
	result += fmt.Sprintf("  Allocated_size: %#0x\n", self.AllocatedSize)
	result += fmt.Sprintf("  Size: %#0x\n", self.ActualSize)
	result += fmt.Sprintf("  Flags: %v\n", self.Flags.DebugString())
	result += fmt.Sprintf("  NameType: %v\n", self.NameType)
	result += fmt.Sprintf("  Name: %q\n", self.Name)
	return result
}
