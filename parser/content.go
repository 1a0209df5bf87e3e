package parser

import (
	"fmt"
)

// AttributeContent is the decoded body of an attribute. It is one of
// *StandardInformation, *FileName, *DataAttribute or
// *UnrecognizedAttribute.
type AttributeContent interface {
	ContentType() AttributeType
}

// DataAttribute describes a $DATA stream. Resident streams only
// carry their size, non-resident ones their run list.
type DataAttribute struct {
	Resident bool
	Size     int64
	Runs     []DataRun

	// Every cluster of the stream in run order.
	Clusters []int64
}

func (self *DataAttribute) ContentType() AttributeType {
	return ATTR_TYPE_DATA
}

// Attributes we walk over but do not decode.
type UnrecognizedAttribute struct {
	Type AttributeType
}

func (self *UnrecognizedAttribute) ContentType() AttributeType {
	return self.Type
}

// InterpretAttribute decodes the content of one of the attribute
// types we understand. attr must start at the attribute header and
// extend at least to its declared length. Other types fail with
// UnknownAttributeTypeError - use decodeAttributeContent() when
// walking a chain that may contain them.
func InterpretAttribute(header *AttributeHeader, attr []byte,
	limits RunLimits) (AttributeContent, error) {
	switch header.Type {
	case ATTR_TYPE_STANDARD_INFORMATION:
		content, err := header.Content(attr)
		if err != nil {
			return nil, err
		}
		si, err := ParseStandardInformation(content)
		if err != nil {
			return nil, err
		}
		return si, nil

	case ATTR_TYPE_FILE_NAME:
		content, err := header.Content(attr)
		if err != nil {
			return nil, err
		}
		file_name, err := ParseFileName(content)
		if err != nil {
			return nil, err
		}
		return file_name, nil

	case ATTR_TYPE_DATA:
		if header.IsResident() {
			return &DataAttribute{
				Resident: true,
				Size:     int64(header.ContentSize),
			}, nil
		}

		runs, err := header.RunList(attr)
		if err != nil {
			return nil, err
		}

		err = CheckRunBounds(runs, limits.ClusterCount)
		if err != nil {
			return nil, err
		}

		clusters, err := ExpandClusters(runs, limits.MaxClusters)
		if err != nil {
			return nil, err
		}

		return &DataAttribute{
			Size:     int64(header.ActualSize),
			Runs:     runs,
			Clusters: clusters,
		}, nil
	}

	return nil, fmt.Errorf("%w: can not interpret %v",
		UnknownAttributeTypeError, header.Type)
}

func decodeAttributeContent(header *AttributeHeader, attr []byte,
	limits RunLimits) (AttributeContent, error) {
	switch header.Type {
	case ATTR_TYPE_STANDARD_INFORMATION, ATTR_TYPE_FILE_NAME, ATTR_TYPE_DATA:
		return InterpretAttribute(header, attr, limits)
	}
	return &UnrecognizedAttribute{Type: header.Type}, nil
}
