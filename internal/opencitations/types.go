// Package opencitations provides a client for the OpenCitations COCI metadata API.
package opencitations

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexibleString can unmarshal from either string or number JSON values.
// COCI serializes counts as strings, but numbers are accepted as well.
type FlexibleString string

func (f *FlexibleString) UnmarshalJSON(data []byte) error {
	// Handle null
	if string(data) == "null" {
		*f = ""
		return nil
	}

	// Try string first
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexibleString(s)
		return nil
	}

	// Try number
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexibleString(n.String())
		return nil
	}

	return fmt.Errorf("cannot unmarshal %s into FlexibleString", string(data))
}

func (f FlexibleString) String() string {
	return string(f)
}

// Int returns the value as an integer, or false if it is not one.
func (f FlexibleString) Int() (int, bool) {
	n, err := strconv.Atoi(string(f))
	return n, err == nil
}

// Metadata is one record from the COCI /metadata endpoint.
type Metadata struct {
	DOI           string         `json:"doi"`
	Title         string         `json:"title"`
	Author        string         `json:"author"` // "Last, First; Last, First, ORCID" style
	Year          FlexibleString `json:"year"`
	SourceTitle   string         `json:"source_title"`
	SourceID      string         `json:"source_id,omitempty"`
	Volume        string         `json:"volume,omitempty"`
	Issue         string         `json:"issue,omitempty"`
	Page          string         `json:"page,omitempty"`
	CitationCount FlexibleString `json:"citation_count"`
	OALink        string         `json:"oa_link,omitempty"`
}
