package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Capture DebugPrint output while cb runs.
func captureDebug(cb func()) string {
	// Resolve NTFS_DEBUG from the environment first so it is not
	// reset below.
	DebugPrint("")

	saved_debug, saved_output := NTFS_DEBUG, debug_output
	defer func() {
		NTFS_DEBUG, debug_output = saved_debug, saved_output
	}()

	buf := &bytes.Buffer{}
	NTFS_DEBUG, debug_output = true, buf
	cb()
	return buf.String()
}

func TestGetIstatContextDebug(t *testing.T) {
	output := captureDebug(func() {
		testContext(t, makeImage())
	})

	assert.True(t, strings.HasPrefix(output,
		"GetIstatContext: struct VolumeGeometry:\n"), output)
	assert.True(t, strings.HasSuffix(output,
		"  SerialNumber: 0x1122334455667788\n"), output)
	assert.NotContains(t, output, "\n\n")
}

func TestDecodeEntryDebug(t *testing.T) {
	image := makeImage(
		protectEntry(makeEntry(0, MFT_ENTRY_FLAG_IN_USE, defaultAttributes())))

	output := captureDebug(func() {
		_, err := decodeTestEntry(t, image, 0, GetDefaultOptions())
		assert.NoError(t, err)
	})

	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	assert.Equal(t, []string{
		"walkAttributes: $STANDARD_INFORMATION (96 bytes) at 0x38",
		"walkAttributes: $FILE_NAME (112 bytes) at 0x98",
		"walkAttributes: $DATA (72 bytes) at 0x108",
	}, lines)
}
