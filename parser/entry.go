package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// An attribute found while walking the entry.
type Attribute struct {
	Header  *AttributeHeader
	Content AttributeContent
}

// DecodedEntry is everything we recovered about one MFT entry. It is
// owned by the caller and shares nothing with other decodes.
type DecodedEntry struct {
	Header *MftEntryHeader

	// nil when the entry has no $STANDARD_INFORMATION.
	StandardInformation *StandardInformation

	// There may be several names (e.g. a DOS 8.3 and Win32 name).
	FileNames []*FileName

	// Every attribute walked, in entry order, ending at $DATA.
	Attributes []*Attribute

	// The primary $DATA stream, nil if the walk ended before one.
	Data *DataAttribute

	// Advisory problems such as fixup mismatches.
	Warnings []error
}

// FileName returns the first $FILE_NAME attribute or nil.
func (self *DecodedEntry) FileName() *FileName {
	if len(self.FileNames) == 0 {
		return nil
	}
	return self.FileNames[0]
}

// EntryOffset returns the byte offset of the entry within the
// volume.
func EntryOffset(geometry *VolumeGeometry, entry_number int64) (int64, error) {
	if entry_number < 0 || geometry.EntrySize <= 0 ||
		entry_number > (math.MaxInt64-geometry.MFTOffset)/geometry.EntrySize-1 {
		return 0, fmt.Errorf("%w: entry %d", EntryOutOfRangeError, entry_number)
	}
	return geometry.MFTOffset + entry_number*geometry.EntrySize, nil
}

// ReadEntry reads the raw, uncorrected bytes of the entry.
func ReadEntry(image io.ReaderAt, image_size int64,
	geometry *VolumeGeometry, entry_number int64) ([]byte, error) {
	offset, err := EntryOffset(geometry, entry_number)
	if err != nil {
		return nil, err
	}

	if offset+geometry.EntrySize > image_size {
		return nil, fmt.Errorf(
			"%w: entry %d at %#x is past the end of the %d byte image",
			EntryOutOfRangeError, entry_number, offset, image_size)
	}

	buffer := make([]byte, geometry.EntrySize)
	n, err := image.ReadAt(buffer, offset)
	if n < len(buffer) {
		if err == nil || errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: short read of entry %d (%d bytes)",
				TruncatedRecordError, entry_number, n)
		}
		return nil, err
	}

	return buffer, nil
}

// DecodeEntry decodes a single MFT entry from the volume. Any error
// other than a fixup mismatch aborts the decode and nothing partial is
// returned.
func DecodeEntry(image io.ReaderAt, image_size int64,
	geometry *VolumeGeometry, entry_number int64,
	options Options) (*DecodedEntry, error) {

	if geometry.EntrySize < MFT_ENTRY_HEADER_SIZE {
		return nil, fmt.Errorf("%w: entry size %d is smaller than the header",
			TruncatedRecordError, geometry.EntrySize)
	}

	raw, err := ReadEntry(image, image_size, geometry, entry_number)
	if err != nil {
		return nil, err
	}

	return DecodeEntryBuffer(raw, geometry, entry_number, options)
}

// DecodeEntryBuffer decodes an entry already read from the image.
// The buffer is not modified.
func DecodeEntryBuffer(raw []byte, geometry *VolumeGeometry,
	entry_number int64, options Options) (*DecodedEntry, error) {

	fixup_offset, err := PeekFixupOffset(raw)
	if err != nil {
		return nil, err
	}

	record, warnings, err := ApplyFixups(
		raw, fixup_offset, geometry.BytesPerSector)
	if err != nil {
		return nil, err
	}

	if options.StrictFixups && len(warnings) > 0 {
		return nil, fmt.Errorf("entry %d: %w", entry_number, warnings[0])
	}

	header, err := ParseEntryHeader(record, entry_number)
	if err != nil {
		return nil, err
	}

	result := &DecodedEntry{
		Header:   header,
		Warnings: warnings,
	}

	err = walkAttributes(record, int(header.AttributeOffset),
		runLimits(geometry, options),
		func(attr *Attribute) {
			result.Attributes = append(result.Attributes, attr)

			switch t := attr.Content.(type) {
			case *StandardInformation:
				if result.StandardInformation == nil {
					result.StandardInformation = t
				}
			case *FileName:
				result.FileNames = append(result.FileNames, t)
			case *DataAttribute:
				result.Data = t
			}
		})
	if err != nil {
		return nil, fmt.Errorf("entry %d: %w", entry_number, err)
	}

	return result, nil
}

// runLimits bounds run lists by the volume size and the cluster
// limit. A volume with no clusters accepts no runs at all.
func runLimits(geometry *VolumeGeometry, options Options) RunLimits {
	result := RunLimits{
		ClusterCount: geometry.ClusterCount(),
		MaxClusters:  options.MaxClusters,
	}

	if result.MaxClusters <= 0 {
		result.MaxClusters = CapInt64(result.ClusterCount, DEFAULT_MAX_CLUSTERS)
	}
	return result
}

// Walk the attribute chain from offset. Attribute types are stored in
// increasing order so the walk stops at the first type at or beyond
// $DATA, or at the end marker.
func walkAttributes(record []byte, offset int, limits RunLimits,
	cb func(attr *Attribute)) error {
	for {
		if offset+4 > len(record) {
			return fmt.Errorf("%w: attribute chain runs past the entry at %#x",
				TruncatedRecordError, offset)
		}

		attr_type := AttributeType(binary.LittleEndian.Uint32(record[offset:]))
		if attr_type == ATTR_TYPE_END {
			return nil
		}

		header, err := ParseAttributeHeader(record[offset:])
		if err != nil {
			return err
		}
		header.Offset = int64(offset)

		attr := record[offset : offset+int(header.Length)]
		content, err := decodeAttributeContent(header, attr, limits)
		if err != nil {
			return err
		}

		DebugPrint("walkAttributes: %v (%d bytes) at %#x\n",
			header.Type, header.Length, offset)
		cb(&Attribute{Header: header, Content: content})

		if header.Type >= ATTR_TYPE_DATA {
			return nil
		}

		// Length is never 0 so we always make progress.
		offset += int(header.Length)
	}
}
