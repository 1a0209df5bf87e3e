package parser

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
)

var (
	debug = false

	NTFS_DEBUG      bool
	ntfs_debug_once sync.Once

	// Where DebugPrint writes.
	debug_output io.Writer = os.Stderr
)

func SetDebug(value bool) {
	debug = value
}

func Debug(arg interface{}) {
	spew.Dump(arg)
}

type Debugger interface {
	DebugString() string
}

func DebugString(arg interface{}, indent string) string {
	debugger, ok := arg.(Debugger)
	if debug && ok {
		lines := strings.Split(debugger.DebugString(), "\n")
		for idx, line := range lines {
			lines[idx] = indent + line
		}
		return strings.Join(lines, "\n")
	}

	return ""
}

func Printf(fmt_str string, args ...interface{}) {
	if debug {
		fmt.Printf(fmt_str, args...)
	}
}

func DebugPrint(fmt_str string, v ...interface{}) {
	// os.Environ() seems very expensive in Go so we cache it.
	ntfs_debug_once.Do(func() {
		for _, x := range os.Environ() {
			if strings.HasPrefix(x, "NTFS_DEBUG=") {
				NTFS_DEBUG = true
				break
			}
		}
	})

	if NTFS_DEBUG {
		fmt.Fprintf(debug_output, fmt_str, v...)
	}
}
