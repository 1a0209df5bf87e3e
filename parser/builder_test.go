package parser

import (
	"encoding/binary"
	"unicode/utf16"
)

// Helpers to build synthetic NTFS structures for the tests.

const (
	testSectorSize   = 512
	testClusterSize  = 4096
	testMFTCluster   = 4
	testEntrySize    = 1024
	testEntryCount   = 4
	testTotalSectors = 0x100000

	// 2019-04-02 12:09:00 UTC
	testFileTime = 131986805400000000
)

func makeBootSector() []byte {
	boot := make([]byte, BOOT_SECTOR_SIZE)
	copy(boot[3:11], "NTFS    ")
	binary.LittleEndian.PutUint16(boot[11:13], testSectorSize)
	boot[13] = testClusterSize / testSectorSize
	boot[21] = 0xf8
	binary.LittleEndian.PutUint64(boot[40:48], testTotalSectors)
	binary.LittleEndian.PutUint64(boot[48:56], testMFTCluster)
	binary.LittleEndian.PutUint64(boot[56:64], 2)

	// 2^10 = 1024 byte entries, 1 cluster index records.
	boot[64] = 0xf6
	boot[68] = 1
	binary.LittleEndian.PutUint64(boot[72:80], 0x1122334455667788)
	binary.LittleEndian.PutUint16(boot[510:512], BOOT_SECTOR_MAGIC)
	return boot
}

func utf16le(s string) []byte {
	units := utf16.Encode([]rune(s))
	result := make([]byte, 2*len(units))
	for i, u := range units {
		binary.LittleEndian.PutUint16(result[2*i:], u)
	}
	return result
}

func align8(n int) int {
	return (n + 7) &^ 7
}

func residentAttribute(attr_type AttributeType, id uint16,
	name string, content []byte) []byte {
	name_bytes := utf16le(name)
	content_offset := align8(RESIDENT_HEADER_SIZE + len(name_bytes))
	attr := make([]byte, align8(content_offset+len(content)))

	binary.LittleEndian.PutUint32(attr[0:4], uint32(attr_type))
	binary.LittleEndian.PutUint32(attr[4:8], uint32(len(attr)))
	attr[8] = 0
	attr[9] = byte(len(name_bytes) / 2)
	binary.LittleEndian.PutUint16(attr[10:12], RESIDENT_HEADER_SIZE)
	binary.LittleEndian.PutUint16(attr[14:16], id)
	binary.LittleEndian.PutUint32(attr[16:20], uint32(len(content)))
	binary.LittleEndian.PutUint16(attr[20:22], uint16(content_offset))
	copy(attr[RESIDENT_HEADER_SIZE:], name_bytes)
	copy(attr[content_offset:], content)
	return attr
}

func nonResidentAttribute(attr_type AttributeType, id uint16, name string,
	start_vcn uint64, runlist []byte, size uint64) []byte {
	name_bytes := utf16le(name)
	runlist_offset := align8(NON_RESIDENT_HEADER_SIZE + len(name_bytes))
	attr := make([]byte, align8(runlist_offset+len(runlist)))

	binary.LittleEndian.PutUint32(attr[0:4], uint32(attr_type))
	binary.LittleEndian.PutUint32(attr[4:8], uint32(len(attr)))
	attr[8] = 1
	attr[9] = byte(len(name_bytes) / 2)
	binary.LittleEndian.PutUint16(attr[10:12], NON_RESIDENT_HEADER_SIZE)
	binary.LittleEndian.PutUint16(attr[14:16], id)
	binary.LittleEndian.PutUint64(attr[16:24], start_vcn)
	binary.LittleEndian.PutUint16(attr[32:34], uint16(runlist_offset))
	binary.LittleEndian.PutUint64(attr[40:48], (size+testClusterSize-1)/
		testClusterSize*testClusterSize)
	binary.LittleEndian.PutUint64(attr[48:56], size)
	binary.LittleEndian.PutUint64(attr[56:64], size)
	copy(attr[NON_RESIDENT_HEADER_SIZE:], name_bytes)
	copy(attr[runlist_offset:], runlist)
	return attr
}

func standardInformationContent(flags uint32, owner uint32, short bool) []byte {
	size := STANDARD_INFORMATION_V3_SIZE
	if short {
		size = STANDARD_INFORMATION_V1_SIZE
	}
	content := make([]byte, size)
	binary.LittleEndian.PutUint64(content[0:8], FILETIME_UNIX_EPOCH)
	binary.LittleEndian.PutUint64(content[8:16], FILETIME_UNIX_EPOCH+1234567)
	binary.LittleEndian.PutUint64(content[16:24], testFileTime)
	binary.LittleEndian.PutUint64(content[24:32], testFileTime)
	binary.LittleEndian.PutUint32(content[32:36], flags)
	if !short {
		binary.LittleEndian.PutUint32(content[48:52], owner)
		binary.LittleEndian.PutUint32(content[52:56], 0x101)
		binary.LittleEndian.PutUint64(content[64:72], 0x5000)
	}
	return content
}

func fileNameContent(parent uint64, parent_seq uint16, flags uint32,
	name_type NameType, name string) []byte {
	name_bytes := utf16le(name)
	content := make([]byte, FILE_NAME_HEADER_SIZE+len(name_bytes))
	binary.LittleEndian.PutUint64(content[0:8], parent|uint64(parent_seq)<<48)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(content[8+8*i:], FILETIME_UNIX_EPOCH)
	}
	binary.LittleEndian.PutUint64(content[40:48], 8192)
	binary.LittleEndian.PutUint64(content[48:56], 5000)
	binary.LittleEndian.PutUint32(content[56:60], flags)
	content[64] = byte(len(name_bytes) / 2)
	content[65] = byte(name_type)
	copy(content[FILE_NAME_HEADER_SIZE:], name_bytes)
	return content
}

// Two runs: 1 cluster at 5 then 3 clusters at 5-2 = 3.
var testRunList = []byte{0x11, 0x01, 0x05, 0x11, 0x03, 0xfe, 0x00}

// The attributes of a typical small file.
func defaultAttributes() [][]byte {
	return [][]byte{
		residentAttribute(ATTR_TYPE_STANDARD_INFORMATION, 0, "",
			standardInformationContent(0x21, 7, false)),
		residentAttribute(ATTR_TYPE_FILE_NAME, 2, "",
			fileNameContent(5, 5, 0x20, NAME_TYPE_WIN32, "hello.txt")),
		nonResidentAttribute(ATTR_TYPE_DATA, 3, "", 0, testRunList, 5000),
	}
}

const (
	testFixupOffset    = 0x30
	testFixupSignature = 0x0002
	testFirstAttribute = 0x38
)

// makeEntry builds a fixed up (i.e. as it would be in memory) entry
// with the given attributes followed by the end marker.
func makeEntry(entry_number uint32, flags uint16, attributes [][]byte) []byte {
	entry := make([]byte, testEntrySize)
	copy(entry[0:4], "FILE")
	binary.LittleEndian.PutUint16(entry[4:6], testFixupOffset)
	binary.LittleEndian.PutUint16(entry[6:8], 1+testEntrySize/testSectorSize)
	binary.LittleEndian.PutUint64(entry[8:16], 0x1234)
	binary.LittleEndian.PutUint16(entry[16:18], 1)
	binary.LittleEndian.PutUint16(entry[18:20], 1)
	binary.LittleEndian.PutUint16(entry[20:22], testFirstAttribute)
	binary.LittleEndian.PutUint16(entry[22:24], flags)
	binary.LittleEndian.PutUint32(entry[28:32], testEntrySize)
	binary.LittleEndian.PutUint16(entry[40:42], uint16(len(attributes)+1))
	binary.LittleEndian.PutUint32(entry[44:48], entry_number)

	offset := testFirstAttribute
	for _, attr := range attributes {
		copy(entry[offset:], attr)
		offset += len(attr)
	}
	binary.LittleEndian.PutUint32(entry[offset:], uint32(ATTR_TYPE_END))
	offset += 8
	binary.LittleEndian.PutUint32(entry[24:28], uint32(offset))

	// Distinctive sector tails so we can see they are restored.
	for i := 1; i <= testEntrySize/testSectorSize; i++ {
		entry[i*testSectorSize-2] = 0xa0 + byte(i)
		entry[i*testSectorSize-1] = 0xb0 + byte(i)
	}
	return entry
}

// protectEntry applies the on-disk fixup protection: the sector tails
// move into the update sequence array and are replaced with the
// signature.
func protectEntry(entry []byte) []byte {
	result := make([]byte, len(entry))
	copy(result, entry)

	binary.LittleEndian.PutUint16(result[testFixupOffset:], testFixupSignature)
	for i := 1; i <= len(entry)/testSectorSize; i++ {
		tail := i*testSectorSize - 2
		copy(result[testFixupOffset+2*i:], entry[tail:tail+2])
		binary.LittleEndian.PutUint16(result[tail:], testFixupSignature)
	}
	return result
}

// makeImage lays out a volume with the boot sector and an MFT whose
// entries are given (already protected).
func makeImage(entries ...[]byte) []byte {
	mft_offset := testMFTCluster * testClusterSize
	image := make([]byte, mft_offset+testEntryCount*testEntrySize)
	copy(image, makeBootSector())
	for idx, entry := range entries {
		copy(image[mft_offset+idx*testEntrySize:], entry)
	}
	return image
}

func testGeometry() *VolumeGeometry {
	geometry, err := ParseBootSector(makeBootSector())
	if err != nil {
		panic(err)
	}
	return geometry
}
