package main

import (
	"fmt"
	"math"
	"os"

	kingpin "gopkg.in/alecthomas/kingpin.v2"
	"www.velocidex.com/golang/go-istat/parser"
)

// Flags locating the volume inside the image. Unset values fall
// back to the config file.
type volumeFlags struct {
	image_offset *int64
	sector_size  *int64
}

func addVolumeFlags(command *kingpin.CmdClause) *volumeFlags {
	return &volumeFlags{
		image_offset: command.Flag(
			"offset", "The offset of the file system in the image (in sectors).",
		).Short('o').Default("-1").Int64(),

		sector_size: command.Flag(
			"sector_size", "The size (in bytes) of the device sectors.",
		).Short('b').Default("0").Int64(),
	}
}

// withContext opens the image, builds the context and hands it to
// cb. The image is closed on every path out of here.
func withContext(path string, flags *volumeFlags,
	cb func(ntfs_ctx *parser.IstatContext) error) error {
	config, err := LoadConfig(*config_flag)
	if err != nil {
		return err
	}

	options, err := config.Options()
	if err != nil {
		return err
	}

	sector_size := config.SectorSize
	if *flags.sector_size > 0 {
		sector_size = *flags.sector_size
	}

	image_offset := config.ImageOffset
	if *flags.image_offset >= 0 {
		image_offset = *flags.image_offset
	}

	if *debug_flag {
		parser.SetDebug(true)
	}

	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	stat, err := fd.Stat()
	if err != nil {
		return err
	}

	offset, err := volumeOffset(image_offset, sector_size)
	if err != nil {
		return err
	}

	ntfs_ctx, err := parser.GetIstatContext(fd, stat.Size(), offset, options)
	if err != nil {
		return fmt.Errorf("Can not open filesystem: %w", err)
	}

	return cb(ntfs_ctx)
}

// volumeOffset converts an offset in sectors into bytes.
func volumeOffset(image_offset, sector_size int64) (int64, error) {
	if sector_size <= 0 {
		return 0, fmt.Errorf("invalid sector size %d", sector_size)
	}

	if image_offset < 0 || image_offset > math.MaxInt64/sector_size {
		return 0, fmt.Errorf("image offset of %d sectors of %d bytes is out of range",
			image_offset, sector_size)
	}

	return image_offset * sector_size, nil
}

func printWarnings(entry *parser.DecodedEntry) {
	for _, warning := range entry.Warnings {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", warning)
	}
}
