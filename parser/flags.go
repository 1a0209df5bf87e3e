package parser

import (
	"fmt"
	"strings"
)

// FileAttributes is the DOS style attribute bitmask shared by
// $STANDARD_INFORMATION and $FILE_NAME. The two attributes each carry
// their own copy which need not agree.
type FileAttributes uint32

// Indexed by bit position. Bits 3 and 4 (volume label and directory
// in the old DOS layout) are not used by NTFS here.
var fileAttributeLabels = [12]string{
	"Read Only",
	"Hidden",
	"System",
	"",
	"",
	"Archive",
	"Device",
	"Normal",
	"Temporary",
	"Sparse File",
	"Reparse Point",
	"Compressed",
}

// Labels returns the names of the set bits in table order.
func (self FileAttributes) Labels() []string {
	result := []string{}
	for idx, label := range fileAttributeLabels {
		if label == "" {
			continue
		}
		if uint32(self)&(1<<uint(idx)) != 0 {
			result = append(result, label)
		}
	}
	return result
}

func (self FileAttributes) String() string {
	return strings.Join(self.Labels(), ", ")
}

func (self FileAttributes) DebugString() string {
	return fmt.Sprintf("%#x (%v)", uint32(self), self)
}
