package parser

import (
	"fmt"

	"github.com/Velocidex/ordereddict"
)

// This file exports the decoded entry as an ordered dict, for JSON
// output that keeps the istat field order.

func timestampsDict(created, modified, mft_modified, accessed WinFileTime,
	options Options) *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("Created", created.Format(options.Location)).
		Set("FileModified", modified.Format(options.Location)).
		Set("MFTModified", mft_modified.Format(options.Location)).
		Set("Accessed", accessed.Format(options.Location))
}

func (self *DecodedEntry) ToDict(options Options) *ordereddict.Dict {
	header := self.Header
	result := ordereddict.NewDict().
		Set("Entry", header.EntryNumber).
		Set("Sequence", header.SequenceValue).
		Set("LogFileSequenceNumber", header.LogfileSequenceNumber).
		Set("State", header.State.String()).
		Set("InUse", header.InUse).
		Set("Links", header.LinkCount)

	if si := self.StandardInformation; si != nil {
		result.Set("StandardInformation", ordereddict.NewDict().
			Set("Flags", si.Flags.Labels()).
			Set("OwnerId", si.OwnerId).
			Set("SecurityId", si.SecurityId).
			Set("Usn", si.UpdateSequenceNumber).
			Set("Times", timestampsDict(si.CreateTime, si.FileAlteredTime,
				si.MftAlteredTime, si.FileAccessedTime, options)))
	}

	file_names := []*ordereddict.Dict{}
	for _, fn := range self.FileNames {
		file_names = append(file_names, ordereddict.NewDict().
			Set("Name", fn.Name).
			Set("NameType", fn.NameType.String()).
			Set("Flags", fn.Flags.Labels()).
			Set("ParentEntry", fn.ParentEntry).
			Set("ParentSequence", fn.ParentSequence).
			Set("AllocatedSize", fn.AllocatedSize).
			Set("ActualSize", fn.ActualSize).
			Set("Times", timestampsDict(fn.Created, fn.FileModified,
				fn.MftModified, fn.FileAccessed, options)))
	}
	result.Set("FileNames", file_names)

	attributes := []*ordereddict.Dict{}
	for _, attr := range self.Attributes {
		h := attr.Header
		item := ordereddict.NewDict().
			Set("Type", h.Type.String()).
			Set("TypeId", uint32(h.Type)).
			Set("Id", h.AttributeId).
			Set("Inode", fmt.Sprintf("%d-%d-%d",
				header.EntryNumber, uint32(h.Type), h.AttributeId)).
			Set("Name", h.Name).
			Set("Resident", h.IsResident()).
			Set("Size", h.DataSize())
		if !h.IsResident() {
			item.Set("InitializedSize", h.InitializedSize)
		}
		attributes = append(attributes, item)
	}
	result.Set("Attributes", attributes)

	if self.Data != nil && !self.Data.Resident {
		runs := []*ordereddict.Dict{}
		for _, run := range self.Data.Runs {
			runs = append(runs, ordereddict.NewDict().
				Set("Offset", run.Offset).
				Set("Length", run.Length))
		}
		result.Set("Runs", runs)
		result.Set("Clusters", self.Data.Clusters)
	}

	warnings := []string{}
	for _, w := range self.Warnings {
		warnings = append(warnings, w.Error())
	}
	if len(warnings) > 0 {
		result.Set("Warnings", warnings)
	}

	return result
}
