package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-istat/parser"
)

var (
	runs_command = app.Command(
		"runs", "Display the data runs of an entry's $DATA stream.")

	runs_command_file_arg = runs_command.Arg(
		"image", "The image file to inspect",
	).Required().String()

	runs_command_address_arg = runs_command.Arg(
		"address", "The MFT entry number.",
	).Required().Int64()

	runs_command_volume = addVolumeFlags(runs_command)
)

func doRuns() {
	err := withContext(*runs_command_file_arg, runs_command_volume,
		func(ntfs_ctx *parser.IstatContext) error {
			entry, err := ntfs_ctx.DecodeEntry(*runs_command_address_arg)
			if err != nil {
				return err
			}
			printWarnings(entry)

			if entry.Data == nil {
				return fmt.Errorf("entry %d has no $DATA attribute",
					*runs_command_address_arg)
			}

			if entry.Data.Resident {
				fmt.Printf("$DATA is resident (%d bytes)\n", entry.Data.Size)
				return nil
			}

			cluster_size := ntfs_ctx.Geometry.ClusterSize
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{
				"Run", "Cluster", "Relative", "Length", "Disk Offset",
			})
			table.SetCaption(true, fmt.Sprintf(
				"Runs for MFT entry %v ($DATA size %d)",
				*runs_command_address_arg, entry.Data.Size))
			defer table.Render()

			for idx, run := range entry.Data.Runs {
				table.Append([]string{
					fmt.Sprintf("%d", idx),
					fmt.Sprintf("%d", run.Offset),
					fmt.Sprintf("%d", run.RelativeOffset),
					fmt.Sprintf("%d", run.Length),
					fmt.Sprintf("%#x", run.Offset*cluster_size),
				})
			}
			return nil
		})
	kingpin.FatalIfError(err, "runs")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "runs":
			doRuns()
		default:
			return false
		}
		return true
	})
}
