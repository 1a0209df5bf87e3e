package parser

import (
	"fmt"
	"io"
)

// OffsetReader exposes the volume starting at Offset within a larger
// image (e.g. a partition inside a whole disk dump).
type OffsetReader struct {
	Offset int64
	Length int64
	Reader io.ReaderAt
}

func NewOffsetReader(reader io.ReaderAt, offset, image_size int64) (*OffsetReader, error) {
	if offset < 0 || offset > image_size {
		return nil, fmt.Errorf("%w: volume offset %#x outside image of %d bytes",
			EntryOutOfRangeError, offset, image_size)
	}

	return &OffsetReader{
		Offset: offset,
		Length: image_size - offset,
		Reader: reader,
	}, nil
}

// Size of the volume in bytes.
func (self *OffsetReader) Size() int64 {
	return self.Length
}

func (self *OffsetReader) ReadAt(buf []byte, offset int64) (int, error) {
	if offset < 0 || offset >= self.Length {
		return 0, io.EOF
	}

	to_read := CapInt64(int64(len(buf)), self.Length-offset)

	n, err := self.Reader.ReadAt(buf[:to_read], offset+self.Offset)
	if err == nil && n < len(buf) {
		err = io.EOF
	}
	return n, err
}
