package main

import (
	"encoding/json"
	"fmt"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-istat/parser"
)

var (
	istat_command = app.Command(
		"istat", "Display details of an MFT entry.").Default()

	istat_command_file_arg = istat_command.Arg(
		"image", "Path to an NTFS raw (dd) image",
	).Required().String()

	istat_command_address_arg = istat_command.Arg(
		"address", "Meta-data number to display stats on",
	).Required().Int64()

	istat_command_json = istat_command.Flag(
		"json", "Emit the decoded entry as JSON.").Bool()

	istat_command_volume = addVolumeFlags(istat_command)
)

func doIstat() {
	err := withContext(*istat_command_file_arg, istat_command_volume,
		func(ntfs_ctx *parser.IstatContext) error {
			entry, err := ntfs_ctx.DecodeEntry(*istat_command_address_arg)
			if err != nil {
				return err
			}
			printWarnings(entry)

			if *debug_flag {
				parser.Printf("%s\n", parser.DebugString(entry.Header, ""))
				parser.Debug(entry)
			}

			if *istat_command_json {
				serialized, err := json.MarshalIndent(
					entry.ToDict(ntfs_ctx.Options), " ", " ")
				if err != nil {
					return err
				}
				fmt.Println(string(serialized))
				return nil
			}

			lines, err := entry.Report(ntfs_ctx.Options)
			if err != nil {
				return err
			}

			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		})
	kingpin.FatalIfError(err, "istat")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "istat":
			doIstat()
		default:
			return false
		}
		return true
	})
}
