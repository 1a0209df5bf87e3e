package parser

import (
	"encoding/binary"
	"fmt"
)

const (
	// Everything up to and including the record number.
	MFT_ENTRY_HEADER_SIZE = 48

	MFT_ENTRY_FLAG_IN_USE    = 1 << 0
	MFT_ENTRY_FLAG_DIRECTORY = 1 << 1
)

type EntryState int

// The directory bit picks file or directory, entries without the
// in use bit are unallocated (deleted).
const (
	ENTRY_STATE_FILE EntryState = iota
	ENTRY_STATE_DIRECTORY
	ENTRY_STATE_UNALLOCATED_FILE
	ENTRY_STATE_UNALLOCATED_DIRECTORY
)

func (self EntryState) String() string {
	switch self {
	case ENTRY_STATE_FILE:
		return "Allocated File"
	case ENTRY_STATE_DIRECTORY:
		return "Directory"
	case ENTRY_STATE_UNALLOCATED_FILE:
		return "Unallocated File"
	case ENTRY_STATE_UNALLOCATED_DIRECTORY:
		return "Unallocated Directory"
	}
	return fmt.Sprintf("Unknown (%d)", int(self))
}

func entryState(flags uint16) EntryState {
	is_dir := flags&MFT_ENTRY_FLAG_DIRECTORY != 0
	if flags&MFT_ENTRY_FLAG_IN_USE == 0 {
		if is_dir {
			return ENTRY_STATE_UNALLOCATED_DIRECTORY
		}
		return ENTRY_STATE_UNALLOCATED_FILE
	}

	if is_dir {
		return ENTRY_STATE_DIRECTORY
	}
	return ENTRY_STATE_FILE
}

// MftEntryHeader is the fixed layout header at the start of every
// MFT entry.
type MftEntryHeader struct {
	// Supplied by the caller - the entry's index in the MFT.
	EntryNumber int64

	Magic                 string
	FixupOffset           uint16
	FixupCount            uint16
	LogfileSequenceNumber uint64
	SequenceValue         uint16
	LinkCount             uint16
	AttributeOffset       uint16
	Flags                 uint16
	State                 EntryState
	InUse                 bool
	EntryUsedSize         uint32
	EntryAllocatedSize    uint32
	BaseRecordReference   uint64
	NextAttributeId       uint16

	// Only present on XP and later layouts, 0 otherwise.
	RecordNumber uint32
}

// ParseEntryHeader decodes the header of a fixed up MFT entry.
func ParseEntryHeader(record []byte, entry_number int64) (*MftEntryHeader, error) {
	if len(record) < MFT_ENTRY_HEADER_SIZE {
		return nil, fmt.Errorf("%w: entry header needs %d bytes, got %d",
			TruncatedRecordError, MFT_ENTRY_HEADER_SIZE, len(record))
	}

	flags := binary.LittleEndian.Uint16(record[22:24])
	result := &MftEntryHeader{
		EntryNumber:           entry_number,
		Magic:                 string(record[0:4]),
		FixupOffset:           binary.LittleEndian.Uint16(record[4:6]),
		FixupCount:            binary.LittleEndian.Uint16(record[6:8]),
		LogfileSequenceNumber: binary.LittleEndian.Uint64(record[8:16]),
		SequenceValue:         binary.LittleEndian.Uint16(record[16:18]),
		LinkCount:             binary.LittleEndian.Uint16(record[18:20]),
		AttributeOffset:       binary.LittleEndian.Uint16(record[20:22]),
		Flags:                 flags,
		State:                 entryState(flags),
		InUse:                 flags&MFT_ENTRY_FLAG_IN_USE != 0,
		EntryUsedSize:         binary.LittleEndian.Uint32(record[24:28]),
		EntryAllocatedSize:    binary.LittleEndian.Uint32(record[28:32]),
		BaseRecordReference:   binary.LittleEndian.Uint64(record[32:40]),
		NextAttributeId:       binary.LittleEndian.Uint16(record[40:42]),
		RecordNumber:          binary.LittleEndian.Uint32(record[44:48]),
	}

	if int(result.AttributeOffset) >= len(record) {
		return nil, fmt.Errorf(
			"%w: first attribute at %#x is outside the %d byte entry",
			TruncatedRecordError, result.AttributeOffset, len(record))
	}

	return result, nil
}

func (self *MftEntryHeader) DebugString() string {
	result := fmt.Sprintf("struct MFT_ENTRY %d:\n", self.EntryNumber)
	result += fmt.Sprintf("  Magic: %q\n", self.Magic)
	result += fmt.Sprintf("  Fixup_offset: %#0x\n", self.FixupOffset)
	result += fmt.Sprintf("  Fixup_count: %#0x\n", self.FixupCount)
	result += fmt.Sprintf("  Logfile_sequence_number: %#0x\n", self.LogfileSequenceNumber)
	result += fmt.Sprintf("  Sequence_value: %#0x\n", self.SequenceValue)
	result += fmt.Sprintf("  Link_count: %#0x\n", self.LinkCount)
	result += fmt.Sprintf("  Attribute_offset: %#0x\n", self.AttributeOffset)
	result += fmt.Sprintf("  Flags: %#0x (%v)\n", self.Flags, self.State)
	result += fmt.Sprintf("  Mft_entry_size: %#0x\n", self.EntryUsedSize)
	result += fmt.Sprintf("  Mft_entry_allocated: %#0x\n", self.EntryAllocatedSize)
	result += fmt.Sprintf("  Base_record_reference: %#0x\n", self.BaseRecordReference)
	result += fmt.Sprintf("  Next_attribute_id: %#0x\n", self.NextAttributeId)
	result += fmt.Sprintf("  Record_number: %#0x\n", self.RecordNumber)
	return result
}
