package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// IstatContext binds a volume to its geometry. It is immutable once
// created so it may be shared between goroutines decoding different
// entries.
type IstatContext struct {
	// The reader over the volume (already adjusted for the image
	// offset).
	Volume io.ReaderAt
	Size   int64

	Geometry *VolumeGeometry
	Options  Options
}

// GetIstatContext reads the boot sector of the volume starting at
// offset bytes into the image.
func GetIstatContext(image io.ReaderAt, image_size int64,
	offset int64, options Options) (*IstatContext, error) {
	volume, err := NewOffsetReader(image, offset, image_size)
	if err != nil {
		return nil, err
	}

	// NTFS Parsing starts with the boot record.
	boot := make([]byte, BOOT_SECTOR_SIZE)
	n, err := volume.ReadAt(boot, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	geometry, err := ParseBootSector(boot[:n])
	if err != nil {
		return nil, err
	}

	DebugPrint("GetIstatContext: %v\n",
		strings.TrimRight(geometry.DebugString(), "\n"))

	return &IstatContext{
		Volume:   volume,
		Size:     volume.Size(),
		Geometry: geometry,
		Options:  options,
	}, nil
}

func (self *IstatContext) DecodeEntry(entry_number int64) (*DecodedEntry, error) {
	return DecodeEntry(self.Volume, self.Size, self.Geometry,
		entry_number, self.Options)
}

// Report decodes the entry and renders it in istat format.
func (self *IstatContext) Report(entry_number int64) ([]string, error) {
	entry, err := self.DecodeEntry(entry_number)
	if err != nil {
		return nil, fmt.Errorf("decoding entry %d: %w", entry_number, err)
	}
	return entry.Report(self.Options)
}
