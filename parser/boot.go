package parser

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// We only need the first sector of the volume to derive the
	// geometry.
	BOOT_SECTOR_SIZE = 512

	BOOT_SECTOR_MAGIC = 0xaa55
)

// VolumeGeometry holds the constants derived from the NTFS boot
// sector. It is built once per image and passed explicitly to every
// decoder that needs it.
type VolumeGeometry struct {
	OEMId             string
	BytesPerSector    int64
	SectorsPerCluster int64
	ClusterSize       int64
	MediaDescriptor   uint8
	TotalSectors      uint64
	MFTCluster        uint64
	MFTMirrorCluster  uint64

	// Byte offset of the MFT relative to the start of the volume.
	MFTOffset int64

	EntrySize       int64
	IndexRecordSize int64
	SerialNumber    uint64
	Magic           uint16
}

// The entry and index record sizes are stored in a single signed
// byte. Positive values count clusters, negative values -K mean 2^K
// bytes.
func decodeUnitSize(value int8, cluster_size int64) (int64, error) {
	if value >= 0 {
		return int64(value) * cluster_size, nil
	}

	shift := -int64(value)
	if shift >= 63 {
		return 0, fmt.Errorf("%w: unit size 2^%d overflows",
			MalformedBootSectorError, shift)
	}
	return 1 << uint64(shift), nil
}

// ParseBootSector decodes the volume geometry from the first sector
// of the volume. The buffer must already be adjusted for the volume
// offset within the image.
func ParseBootSector(buf []byte) (*VolumeGeometry, error) {
	if len(buf) < BOOT_SECTOR_SIZE {
		return nil, fmt.Errorf("%w: need %d bytes, got %d",
			MalformedBootSectorError, BOOT_SECTOR_SIZE, len(buf))
	}

	result := &VolumeGeometry{
		OEMId:             strings.TrimRight(string(buf[3:11]), " \x00"),
		BytesPerSector:    int64(binary.LittleEndian.Uint16(buf[11:13])),
		SectorsPerCluster: int64(buf[13]),
		MediaDescriptor:   buf[21],
		TotalSectors:      binary.LittleEndian.Uint64(buf[40:48]),
		MFTCluster:        binary.LittleEndian.Uint64(buf[48:56]),
		MFTMirrorCluster:  binary.LittleEndian.Uint64(buf[56:64]),
		SerialNumber:      binary.LittleEndian.Uint64(buf[72:80]),
		Magic:             binary.LittleEndian.Uint16(buf[510:512]),
	}

	if result.BytesPerSector == 0 {
		return nil, fmt.Errorf("%w: bytes per sector is 0",
			MalformedBootSectorError)
	}

	if result.SectorsPerCluster == 0 {
		return nil, fmt.Errorf("%w: sectors per cluster is 0",
			MalformedBootSectorError)
	}

	result.ClusterSize = result.BytesPerSector * result.SectorsPerCluster

	// The MFT must start somewhere we can address.
	if result.MFTCluster > uint64(1<<62)/uint64(result.ClusterSize) {
		return nil, fmt.Errorf("%w: MFT cluster %d out of range",
			MalformedBootSectorError, result.MFTCluster)
	}
	result.MFTOffset = int64(result.MFTCluster) * result.ClusterSize

	var err error
	result.EntrySize, err = decodeUnitSize(int8(buf[64]), result.ClusterSize)
	if err != nil {
		return nil, err
	}

	result.IndexRecordSize, err = decodeUnitSize(int8(buf[68]), result.ClusterSize)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Total number of clusters in the volume, saturating at
// math.MaxInt64.
func (self *VolumeGeometry) ClusterCount() int64 {
	if self.SectorsPerCluster <= 0 {
		return 0
	}

	count := self.TotalSectors / uint64(self.SectorsPerCluster)
	if count > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(count)
}

// IsValid performs sanity checks beyond what is needed to decode an
// entry. The result is advisory - images with a damaged boot
// signature can often still be decoded.
func (self *VolumeGeometry) IsValid() error {
	if self.Magic != BOOT_SECTOR_MAGIC {
		return errors.New("Invalid magic")
	}

	if self.OEMId != "NTFS" {
		return fmt.Errorf("Invalid OEM id %q", self.OEMId)
	}

	switch self.ClusterSize {
	case 0x200, 0x400, 0x800, 0x1000,
		0x2000, 0x4000, 0x8000, 0x10000:
		break
	default:
		return fmt.Errorf("Invalid cluster size %x", self.ClusterSize)
	}

	if self.BytesPerSector%512 != 0 {
		return errors.New("Invalid sector_size")
	}

	if self.TotalSectors == 0 {
		return errors.New("Volume size is 0")
	}

	return nil
}

func (self *VolumeGeometry) DebugString() string {
	result := "struct VolumeGeometry:\n"
	result += fmt.Sprintf("  OEMId: %v\n", self.OEMId)
	result += fmt.Sprintf("  BytesPerSector: %#0x\n", self.BytesPerSector)
	result += fmt.Sprintf("  SectorsPerCluster: %#0x\n", self.SectorsPerCluster)
	result += fmt.Sprintf("  ClusterSize: %#0x\n", self.ClusterSize)
	result += fmt.Sprintf("  TotalSectors: %#0x\n", self.TotalSectors)
	result += fmt.Sprintf("  MFTCluster: %#0x\n", self.MFTCluster)
	result += fmt.Sprintf("  MFTOffset: %#0x\n", self.MFTOffset)
	result += fmt.Sprintf("  EntrySize: %#0x\n", self.EntrySize)
	result += fmt.Sprintf("  IndexRecordSize: %#0x\n", self.IndexRecordSize)
	result += fmt.Sprintf("  SerialNumber: %#0x\n", self.SerialNumber)
	return result
}
