package parser

import (
	"fmt"
	"math"
)

// RunLimits bound the run lists of non-resident attributes.
type RunLimits struct {
	// Every run must lie within the first ClusterCount clusters.
	ClusterCount int64

	// The largest cluster list that will be expanded.
	MaxClusters int64
}

// A DataRun is one contiguous extent of a non-resident stream.
type DataRun struct {
	// Absolute logical cluster number of the first cluster.
	Offset int64

	// Signed delta to the previous run as stored on disk.
	RelativeOffset int64

	// Length in clusters.
	Length int64
}

// ParseUnsignedLE decodes a little endian unsigned integer of 1 to 8
// bytes.
func ParseUnsignedLE(buf []byte) (uint64, error) {
	if len(buf) == 0 || len(buf) > 8 {
		return 0, fmt.Errorf("%w: invalid integer width %d",
			InvalidDataRunError, len(buf))
	}

	var result uint64
	for i := len(buf) - 1; i >= 0; i-- {
		result = result<<8 | uint64(buf[i])
	}
	return result, nil
}

// ParseSignedLE decodes a little endian two's complement integer of
// 1 to 8 bytes, sign extending from the top bit of the last byte.
func ParseSignedLE(buf []byte) (int64, error) {
	value, err := ParseUnsignedLE(buf)
	if err != nil {
		return 0, err
	}

	width := uint(len(buf)) * 8
	if width < 64 && buf[len(buf)-1]&0x80 != 0 {
		value |= math.MaxUint64 << width
	}
	return int64(value), nil
}

// DecodeRunList decodes the NTFS mapping pairs array. Each run starts
// with a header byte: the low nibble is the size of the length field
// and the high nibble the size of the offset field. Offsets are
// relative to the previous run, starting from start_vcn. A zero
// header byte terminates the list.
func DecodeRunList(buf []byte, start_vcn int64) ([]DataRun, error) {
	result := []DataRun{}
	prev_offset := start_vcn

	for offset := 0; ; {
		if offset >= len(buf) {
			return nil, fmt.Errorf("%w: run list is not terminated",
				InvalidDataRunError)
		}

		// Consume the first byte off the stream.
		idx := buf[offset]
		if idx == 0 {
			break
		}

		length_size := int(idx & 0xF)
		run_offset_size := int(idx >> 4)
		offset += 1

		if length_size == 0 || length_size > 8 ||
			run_offset_size == 0 || run_offset_size > 8 {
			return nil, fmt.Errorf("%w: invalid run header %#02x at %#x",
				InvalidDataRunError, idx, offset-1)
		}

		if offset+length_size+run_offset_size > len(buf) {
			return nil, fmt.Errorf("%w: run at %#x exceeds run list of %d bytes",
				InvalidDataRunError, offset-1, len(buf))
		}

		run_length, err := ParseUnsignedLE(buf[offset : offset+length_size])
		if err != nil {
			return nil, err
		}
		offset += length_size

		relative_run_offset, err := ParseSignedLE(
			buf[offset : offset+run_offset_size])
		if err != nil {
			return nil, err
		}
		offset += run_offset_size

		if run_length > math.MaxInt64 {
			return nil, fmt.Errorf("%w: run length %d too large",
				InvalidDataRunError, run_length)
		}

		absolute := prev_offset + relative_run_offset
		if (relative_run_offset > 0 && absolute < prev_offset) ||
			(relative_run_offset < 0 && absolute > prev_offset) ||
			absolute < 0 {
			return nil, fmt.Errorf("%w: run offset %d from %d is out of range",
				InvalidDataRunError, relative_run_offset, prev_offset)
		}

		result = append(result, DataRun{
			Offset:         absolute,
			RelativeOffset: relative_run_offset,
			Length:         int64(run_length),
		})
		prev_offset = absolute
	}

	return result, nil
}

// RunList decodes the run list of a non-resident attribute. attr must
// start at the attribute header.
func (self *AttributeHeader) RunList(attr []byte) ([]DataRun, error) {
	if !self.NonResident {
		return nil, fmt.Errorf("%w: %v is resident",
			InvalidDataRunError, self.Type)
	}

	if int(self.RunlistOffset) >= len(attr) {
		return nil, fmt.Errorf("%w: run list offset %#x outside attribute",
			InvalidDataRunError, self.RunlistOffset)
	}

	if self.RunlistVCNStart > math.MaxInt64 {
		return nil, fmt.Errorf("%w: start VCN %#x out of range",
			InvalidDataRunError, self.RunlistVCNStart)
	}

	return DecodeRunList(attr[self.RunlistOffset:], int64(self.RunlistVCNStart))
}

// CheckRunBounds fails if any run extends past the last cluster of a
// volume with cluster_count clusters.
func CheckRunBounds(runs []DataRun, cluster_count int64) error {
	for idx, run := range runs {
		if run.Offset < 0 || run.Length < 0 ||
			run.Offset > cluster_count ||
			run.Length > cluster_count-run.Offset {
			return fmt.Errorf(
				"%w: run %d (%d clusters at %d) is outside the %d cluster volume",
				InvalidDataRunError, idx, run.Length, run.Offset, cluster_count)
		}
	}
	return nil
}

// ExpandClusters lists every cluster covered by the runs in disk
// layout order. Lists longer than max_clusters are rejected instead
// of being allocated, so a max_clusters of 0 only accepts runs of no
// clusters.
func ExpandClusters(runs []DataRun, max_clusters int64) ([]int64, error) {
	total := int64(0)
	for _, run := range runs {
		if run.Length < 0 || run.Length > math.MaxInt64-total {
			return nil, fmt.Errorf("%w: run lengths overflow",
				InvalidDataRunError)
		}
		total += run.Length
	}

	if total > max_clusters {
		return nil, fmt.Errorf("%w: %d clusters exceeds limit of %d",
			InvalidDataRunError, total, max_clusters)
	}

	// Larger caller supplied limits grow the list by appending.
	result := make([]int64, 0, CapInt64(total, DEFAULT_MAX_CLUSTERS))
	for _, run := range runs {
		for i := int64(0); i < run.Length; i++ {
			result = append(result, run.Offset+i)
		}
	}
	return result, nil
}
