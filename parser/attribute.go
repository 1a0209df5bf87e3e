package parser

import (
	"encoding/binary"
	"fmt"
	"strings"
)

type AttributeType uint32

const (
	ATTR_TYPE_STANDARD_INFORMATION  AttributeType = 16
	ATTR_TYPE_ATTRIBUTE_LIST        AttributeType = 32
	ATTR_TYPE_FILE_NAME             AttributeType = 48
	ATTR_TYPE_OBJECT_ID             AttributeType = 64
	ATTR_TYPE_SECURITY_DESCRIPTOR   AttributeType = 80
	ATTR_TYPE_VOLUME_NAME           AttributeType = 96
	ATTR_TYPE_VOLUME_INFORMATION    AttributeType = 112
	ATTR_TYPE_DATA                  AttributeType = 128
	ATTR_TYPE_INDEX_ROOT            AttributeType = 144
	ATTR_TYPE_INDEX_ALLOCATION      AttributeType = 160
	ATTR_TYPE_BITMAP                AttributeType = 176
	ATTR_TYPE_REPARSE_POINT         AttributeType = 192
	ATTR_TYPE_EA_INFORMATION        AttributeType = 208
	ATTR_TYPE_EA                    AttributeType = 224
	ATTR_TYPE_LOGGED_UTILITY_STREAM AttributeType = 256

	// Marks the end of the attribute chain.
	ATTR_TYPE_END AttributeType = 0xffffffff

	// Common prefix of resident and non-resident headers.
	ATTRIBUTE_HEADER_SIZE = 16

	RESIDENT_HEADER_SIZE     = 24
	NON_RESIDENT_HEADER_SIZE = 64

	ATTR_FLAG_COMPRESSED = 1 << 0
	ATTR_FLAG_ENCRYPTED  = 1 << 14
	ATTR_FLAG_SPARSE     = 1 << 15
)

var attributeTypeNames = map[AttributeType]string{
	ATTR_TYPE_STANDARD_INFORMATION:  "$STANDARD_INFORMATION",
	ATTR_TYPE_ATTRIBUTE_LIST:        "$ATTRIBUTE_LIST",
	ATTR_TYPE_FILE_NAME:             "$FILE_NAME",
	ATTR_TYPE_OBJECT_ID:             "$OBJECT_ID",
	ATTR_TYPE_SECURITY_DESCRIPTOR:   "$SECURITY_DESCRIPTOR",
	ATTR_TYPE_VOLUME_NAME:           "$VOLUME_NAME",
	ATTR_TYPE_VOLUME_INFORMATION:    "$VOLUME_INFORMATION",
	ATTR_TYPE_DATA:                  "$DATA",
	ATTR_TYPE_INDEX_ROOT:            "$INDEX_ROOT",
	ATTR_TYPE_INDEX_ALLOCATION:      "$INDEX_ALLOCATION",
	ATTR_TYPE_BITMAP:                "$BITMAP",
	ATTR_TYPE_REPARSE_POINT:         "$REPARSE_POINT",
	ATTR_TYPE_EA_INFORMATION:        "$EA_INFORMATION",
	ATTR_TYPE_EA:                    "$EA",
	ATTR_TYPE_LOGGED_UTILITY_STREAM: "$LOGGED_UTILITY_STREAM",
}

// Name looks up the type in the closed table of NTFS attribute
// types. There is no default name for codes outside the table.
func (self AttributeType) Name() (string, error) {
	name, pres := attributeTypeNames[self]
	if !pres {
		return "", fmt.Errorf("%w: %d", UnknownAttributeTypeError, uint32(self))
	}
	return name, nil
}

func (self AttributeType) String() string {
	name, err := self.Name()
	if err != nil {
		return fmt.Sprintf("Unknown (%d)", uint32(self))
	}
	return name
}

// AttributeHeader is the self describing header in front of every
// attribute. The fields past the common prefix depend on residency.
type AttributeHeader struct {
	// Offset of the attribute within the entry.
	Offset int64

	Type        AttributeType
	Length      uint32
	NonResident bool
	Name        string
	Flags       uint16
	AttributeId uint16

	// Resident only.
	ContentSize   uint32
	ContentOffset uint16

	// Non-resident only.
	RunlistVCNStart uint64
	RunlistVCNEnd   uint64
	RunlistOffset   uint16
	AllocatedSize   uint64
	ActualSize      uint64
	InitializedSize uint64
}

func (self *AttributeHeader) IsResident() bool {
	return !self.NonResident
}

func (self *AttributeHeader) IsCompressed() bool {
	return self.Flags&ATTR_FLAG_COMPRESSED != 0
}

func (self *AttributeHeader) IsSparse() bool {
	return self.Flags&ATTR_FLAG_SPARSE != 0
}

// Size of the attribute's data stream.
func (self *AttributeHeader) DataSize() int64 {
	if self.IsResident() {
		return int64(self.ContentSize)
	}
	return int64(self.ActualSize)
}

func (self *AttributeHeader) FlagsString() string {
	names := []string{}

	if self.Flags&ATTR_FLAG_COMPRESSED != 0 {
		names = append(names, "COMPRESSED")
	}

	if self.Flags&ATTR_FLAG_ENCRYPTED != 0 {
		names = append(names, "ENCRYPTED")
	}

	if self.Flags&ATTR_FLAG_SPARSE != 0 {
		names = append(names, "SPARSE")
	}

	return fmt.Sprintf("%d (%v)", self.Flags, strings.Join(names, ","))
}

// ParseAttributeHeader decodes the attribute header at the start of
// buf. The buffer should extend to the end of the entry so the
// header can be bounds checked against its declared length.
func ParseAttributeHeader(buf []byte) (*AttributeHeader, error) {
	if len(buf) < ATTRIBUTE_HEADER_SIZE {
		return nil, fmt.Errorf("%w: attribute header needs %d bytes, got %d",
			TruncatedRecordError, ATTRIBUTE_HEADER_SIZE, len(buf))
	}

	result := &AttributeHeader{
		Type:        AttributeType(binary.LittleEndian.Uint32(buf[0:4])),
		Length:      binary.LittleEndian.Uint32(buf[4:8]),
		NonResident: buf[8] != 0,
		Flags:       binary.LittleEndian.Uint16(buf[12:14]),
		AttributeId: binary.LittleEndian.Uint16(buf[14:16]),
	}

	if result.Length == 0 {
		return nil, fmt.Errorf("%w: attribute %v has zero length",
			TruncatedRecordError, result.Type)
	}

	if int64(result.Length) > int64(len(buf)) {
		return nil, fmt.Errorf(
			"%w: attribute %v of length %d exceeds %d remaining bytes",
			TruncatedRecordError, result.Type, result.Length, len(buf))
	}
	attr := buf[:result.Length]

	if result.NonResident {
		if len(attr) < NON_RESIDENT_HEADER_SIZE {
			return nil, fmt.Errorf(
				"%w: non-resident header needs %d bytes, got %d",
				TruncatedRecordError, NON_RESIDENT_HEADER_SIZE, len(attr))
		}
		result.RunlistVCNStart = binary.LittleEndian.Uint64(attr[16:24])
		result.RunlistVCNEnd = binary.LittleEndian.Uint64(attr[24:32])
		result.RunlistOffset = binary.LittleEndian.Uint16(attr[32:34])
		result.AllocatedSize = binary.LittleEndian.Uint64(attr[40:48])
		result.ActualSize = binary.LittleEndian.Uint64(attr[48:56])
		result.InitializedSize = binary.LittleEndian.Uint64(attr[56:64])

	} else {
		if len(attr) < RESIDENT_HEADER_SIZE {
			return nil, fmt.Errorf(
				"%w: resident header needs %d bytes, got %d",
				TruncatedRecordError, RESIDENT_HEADER_SIZE, len(attr))
		}
		result.ContentSize = binary.LittleEndian.Uint32(attr[16:20])
		result.ContentOffset = binary.LittleEndian.Uint16(attr[20:22])

		end := int64(result.ContentOffset) + int64(result.ContentSize)
		if end > int64(len(attr)) {
			return nil, fmt.Errorf(
				"%w: content %#x-%#x exceeds attribute of %d bytes",
				TruncatedRecordError, result.ContentOffset, end, len(attr))
		}
	}

	name_length := int(buf[9])
	if name_length > 0 {
		name_offset := int(binary.LittleEndian.Uint16(buf[10:12]))
		name_end := name_offset + 2*name_length
		if name_end > len(attr) {
			return nil, fmt.Errorf(
				"%w: attribute name %#x-%#x exceeds attribute of %d bytes",
				TruncatedRecordError, name_offset, name_end, len(attr))
		}

		name, err := ParseUTF16String(attr[name_offset:name_end])
		if err != nil {
			return nil, err
		}
		result.Name = name
	}

	return result, nil
}

// Content returns the resident content of the attribute. attr must
// start at the attribute header.
func (self *AttributeHeader) Content(attr []byte) ([]byte, error) {
	if self.NonResident {
		return nil, fmt.Errorf("%w: %v is not resident",
			TruncatedRecordError, self.Type)
	}

	end := int64(self.ContentOffset) + int64(self.ContentSize)
	if end > int64(len(attr)) {
		return nil, fmt.Errorf("%w: content %#x-%#x exceeds %d bytes",
			TruncatedRecordError, self.ContentOffset, end, len(attr))
	}
	return attr[self.ContentOffset:end], nil
}

func (self *AttributeHeader) DebugString() string {
	result := fmt.Sprintf("struct NTFS_ATTRIBUTE @ %#x:\n", self.Offset)
	result += fmt.Sprintf("  Type: %v\n", self.Type)
	result += fmt.Sprintf("  Length: %#0x\n", self.Length)
	result += fmt.Sprintf("  NonResident: %v\n", self.NonResident)
	result += fmt.Sprintf("  Name: %q\n", self.Name)
	result += fmt.Sprintf("  Flags: %v\n", self.FlagsString())
	result += fmt.Sprintf("  Attribute_id: %#0x\n", self.AttributeId)
	if self.NonResident {
		result += fmt.Sprintf("  Runlist_vcn_start: %#0x\n", self.RunlistVCNStart)
		result += fmt.Sprintf("  Runlist_vcn_end: %#0x\n", self.RunlistVCNEnd)
		result += fmt.Sprintf("  Runlist_offset: %#0x\n", self.RunlistOffset)
		result += fmt.Sprintf("  Allocated_size: %#0x\n", self.AllocatedSize)
		result += fmt.Sprintf("  Actual_size: %#0x\n", self.ActualSize)
		result += fmt.Sprintf("  Initialized_size: %#0x\n", self.InitializedSize)
	} else {
		result += fmt.Sprintf("  Content_size: %#0x\n", self.ContentSize)
		result += fmt.Sprintf("  Content_offset: %#0x\n", self.ContentOffset)
	}
	return result
}
