package main

import (
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

type CommandHandler func(command string) bool

var (
	app = kingpin.New("istat",
		"Display details of an NTFS MFT entry.")

	config_flag = app.Flag(
		"config", "Path to a YAML config file.").String()

	debug_flag = app.Flag(
		"debug", "Dump decoded structures.").Bool()

	tz_flag = app.Flag(
		"tz", "Timezone used to display timestamps (e.g. UTC, Local, America/New_York).",
	).String()

	strict_flag = app.Flag(
		"strict", "Fail on fixup signature mismatches.").Bool()

	command_handlers []CommandHandler
)

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	for _, command_handler := range command_handlers {
		if command_handler(command) {
			break
		}
	}
}
