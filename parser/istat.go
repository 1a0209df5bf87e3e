package parser

import (
	"fmt"
	"strings"
	"time"
)

const (
	CLUSTERS_PER_LINE = 8
)

// Report renders the entry in the layout of the sleuthkit istat
// tool.
func (self *DecodedEntry) Report(options Options) ([]string, error) {
	loc := options.Location
	result := []string{
		"MFT Entry Header Values:",
		fmt.Sprintf("Entry: %d        Sequence: %d",
			self.Header.EntryNumber, self.Header.SequenceValue),
		fmt.Sprintf("$LogFile Sequence Number: %d",
			self.Header.LogfileSequenceNumber),
		self.Header.State.String(),
		fmt.Sprintf("Links: %d", self.Header.LinkCount),
		"",
	}

	summary := []string{}
	for _, attr := range self.Attributes {
		line, err := attributeSummary(attr.Header)
		if err != nil {
			return nil, err
		}
		summary = append(summary, line)

		switch t := attr.Content.(type) {
		case *StandardInformation:
			result = append(result, "$STANDARD_INFORMATION Attribute Values:")
			result = append(result, reportStandardInformation(t, loc)...)

		case *FileName:
			result = append(result, "$FILE_NAME Attribute Values:")
			result = append(result, reportFileName(t, loc)...)
		}
	}

	result = append(result, "Attributes:")
	result = append(result, summary...)

	if self.Data != nil && !self.Data.Resident {
		result = append(result, FormatClusters(self.Data.Clusters)...)
	}

	for idx, line := range result {
		result[idx] = strings.TrimSpace(line)
	}

	return result, nil
}

func reportTimestamps(created, modified, mft_modified, accessed WinFileTime,
	loc *time.Location) []string {
	return []string{
		"Created:\t" + created.Format(loc),
		"File Modified:\t" + modified.Format(loc),
		"MFT Modified:\t" + mft_modified.Format(loc),
		"Accessed:\t" + accessed.Format(loc),
	}
}

func reportStandardInformation(si *StandardInformation, loc *time.Location) []string {
	result := []string{
		"Flags: " + si.Flags.String(),
		fmt.Sprintf("Owner ID: %d", si.OwnerId),
	}
	result = append(result, reportTimestamps(si.CreateTime, si.FileAlteredTime,
		si.MftAlteredTime, si.FileAccessedTime, loc)...)
	return append(result, "")
}

func reportFileName(fn *FileName, loc *time.Location) []string {
	result := []string{
		"Flags: " + fn.Flags.String(),
		"Name: " + fn.Name,
		fmt.Sprintf("Parent MFT Entry: %d \tSequence: %d",
			fn.ParentEntry, fn.ParentSequence),
		fmt.Sprintf("Allocated Size: %d   \tActual Size: %d",
			fn.AllocatedSize, fn.ActualSize),
	}
	result = append(result, reportTimestamps(fn.Created, fn.FileModified,
		fn.MftModified, fn.FileAccessed, loc)...)
	return append(result, "")
}

func attributeSummary(header *AttributeHeader) (string, error) {
	type_name, err := header.Type.Name()
	if err != nil {
		return "", err
	}

	name := header.Name
	if name == "" {
		name = "N/A"
	}

	fields := []string{
		fmt.Sprintf("Type: %s (%d-%d)", type_name,
			uint32(header.Type), header.AttributeId),
		"Name: " + name,
	}

	if header.IsResident() {
		fields = append(fields, "Resident",
			fmt.Sprintf("size: %d", header.ContentSize))
	} else {
		fields = append(fields, "Non-Resident",
			fmt.Sprintf("size: %d  init_size: %d",
				header.ActualSize, header.InitializedSize))
	}

	return strings.Join(fields, "   "), nil
}

// FormatClusters wraps the cluster list at CLUSTERS_PER_LINE values
// per line.
func FormatClusters(clusters []int64) []string {
	result := []string{}
	for i := 0; i < len(clusters); i += CLUSTERS_PER_LINE {
		end := i + CLUSTERS_PER_LINE
		if end > len(clusters) {
			end = len(clusters)
		}

		row := make([]string, 0, end-i)
		for _, cluster := range clusters[i:end] {
			row = append(row, fmt.Sprintf("%d", cluster))
		}
		result = append(result, strings.Join(row, " "))
	}
	return result
}
