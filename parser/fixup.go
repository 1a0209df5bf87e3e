package parser

import (
	"encoding/binary"
	"fmt"
)

// PeekFixupOffset returns the offset of the update sequence array
// stored in an uncorrected record header. The field lives in the
// first sector so it is never itself covered by a fixup.
func PeekFixupOffset(record []byte) (int, error) {
	if len(record) < 6 {
		return 0, fmt.Errorf("%w: record of %d bytes has no fixup offset",
			TruncatedRecordError, len(record))
	}
	return int(binary.LittleEndian.Uint16(record[4:6])), nil
}

// ApplyFixups returns a corrected copy of the record. NTFS overwrites
// the last two bytes of every sector with a signature (the first
// value of the update sequence array) and keeps the original bytes in
// the rest of the array. We restore them here.
//
// A sector that does not end with the signature is left alone and
// reported as a FixupMismatchError warning - the caller decides
// whether that is fatal. The input buffer is never modified.
func ApplyFixups(record []byte, fixup_offset int,
	bytes_per_sector int64) ([]byte, []error, error) {
	if bytes_per_sector < 2 {
		return nil, nil, fmt.Errorf("%w: invalid sector size %d",
			MalformedBootSectorError, bytes_per_sector)
	}

	sector_count := len(record) / int(bytes_per_sector)

	// The magic followed by one value per sector.
	fixup_table_len := 2 + 2*sector_count
	if fixup_offset < 0 || fixup_offset+fixup_table_len > len(record) {
		return nil, nil, fmt.Errorf(
			"%w: fixup array at %#x (%d bytes) exceeds record of %d bytes",
			TruncatedRecordError, fixup_offset, fixup_table_len, len(record))
	}

	buffer := make([]byte, len(record))
	copy(buffer, record)

	fixup_table := record[fixup_offset : fixup_offset+fixup_table_len]
	fixup_magic := []byte{fixup_table[0], fixup_table[1]}

	var warnings []error
	for sector_idx := 0; sector_idx < sector_count; sector_idx++ {
		offset := (sector_idx+1)*int(bytes_per_sector) - 2
		if record[offset] != fixup_magic[0] ||
			record[offset+1] != fixup_magic[1] {
			err := fmt.Errorf("%w: sector %d ends with %#04x, expected %#04x",
				FixupMismatchError, sector_idx,
				binary.LittleEndian.Uint16(record[offset:]),
				binary.LittleEndian.Uint16(fixup_magic))
			DebugPrint("ApplyFixups: %v\n", err)
			warnings = append(warnings, err)
			continue
		}

		// Apply the fixup
		table_idx := 2 + 2*sector_idx
		buffer[offset] = fixup_table[table_idx]
		buffer[offset+1] = fixup_table[table_idx+1]
	}

	return buffer, warnings, nil
}
