package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-istat/parser"
)

var (
	boot_command = app.Command(
		"boot", "Inspect the boot record.")

	boot_command_file_arg = boot_command.Arg(
		"image", "The image file to inspect",
	).Required().String()

	boot_command_volume = addVolumeFlags(boot_command)
)

func doBoot() {
	err := withContext(*boot_command_file_arg, boot_command_volume,
		func(ntfs_ctx *parser.IstatContext) error {
			geometry := ntfs_ctx.Geometry
			if err := geometry.IsValid(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Field", "Value"})
			table.SetCaption(true, "NTFS boot sector")
			defer table.Render()

			table.Append([]string{"OEM Id", geometry.OEMId})
			table.Append([]string{"Bytes per sector",
				fmt.Sprintf("%d", geometry.BytesPerSector)})
			table.Append([]string{"Sectors per cluster",
				fmt.Sprintf("%d", geometry.SectorsPerCluster)})
			table.Append([]string{"Cluster size",
				fmt.Sprintf("%d", geometry.ClusterSize)})
			table.Append([]string{"Total sectors",
				fmt.Sprintf("%d", geometry.TotalSectors)})
			table.Append([]string{"MFT cluster",
				fmt.Sprintf("%d", geometry.MFTCluster)})
			table.Append([]string{"MFT offset",
				fmt.Sprintf("%#x", geometry.MFTOffset)})
			table.Append([]string{"MFT mirror cluster",
				fmt.Sprintf("%d", geometry.MFTMirrorCluster)})
			table.Append([]string{"MFT entry size",
				fmt.Sprintf("%d", geometry.EntrySize)})
			table.Append([]string{"Index record size",
				fmt.Sprintf("%d", geometry.IndexRecordSize)})
			table.Append([]string{"Serial number",
				fmt.Sprintf("%016X", geometry.SerialNumber)})
			return nil
		})
	kingpin.FatalIfError(err, "boot")
}

func init() {
	command_handlers = append(command_handlers, func(command string) bool {
		switch command {
		case "boot":
			doBoot()
		default:
			return false
		}
		return true
	})
}
