package filter

import (
	"net/url"
	"strconv"
	"strings"

	"leadpanel/pkg/model"
)

// Encoding selects how multi-valued selections are put on the wire.
// The two protocols are not interchangeable: a server reading repeated
// keys sees only the last value of a delimited string, and vice versa,
// which silently drops filters. Callers pick the encoding per endpoint
// explicitly; there is no runtime guessing.
type Encoding int

const (
	// EncodingRepeated emits each value as its own instance of the
	// parameter name (?curso=A&curso=B). Preferred wherever the
	// endpoint accepts it.
	EncodingRepeated Encoding = iota

	// EncodingDelimited joins values with MultiDelimiter under the
	// "<key>_multi" parameter. Fallback for legacy endpoints only.
	EncodingDelimited
)

// MultiDelimiter separates values in the delimited encoding. Chosen by
// the server contract as a sequence that does not occur in real data.
const MultiDelimiter = "||"

// String returns the config-file name of the encoding.
func (e Encoding) String() string {
	if e == EncodingDelimited {
		return "delimited"
	}
	return "repeated"
}

// ParseEncoding maps a config-file name to an Encoding.
func ParseEncoding(s string) (Encoding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "repeated":
		return EncodingRepeated, true
	case "delimited":
		return EncodingDelimited, true
	}
	return EncodingRepeated, false
}

// Compile translates a filter snapshot into the query parameters for
// the records and KPI endpoints. Empty scalars and unset date bounds
// are omitted entirely so the server's no-filter default applies.
// Compiling the same State twice yields byte-identical encoded output.
func Compile(s State, enc Encoding) url.Values {
	params := url.Values{}

	for _, dim := range model.Dimensions {
		if v := strings.TrimSpace(s.Scalars[dim]); v != "" {
			params.Set(dim.Key(), v)
		}
		vals := s.Multi[dim]
		if len(vals) == 0 {
			continue
		}
		switch enc {
		case EncodingDelimited:
			params.Set(dim.Key()+"_multi", strings.Join(vals, MultiDelimiter))
		default:
			for _, v := range vals {
				params.Add(dim.Key(), v)
			}
		}
	}

	if s.DateFrom != "" {
		params.Set("data_ini", s.DateFrom)
	}
	if s.DateTo != "" {
		params.Set("data_fim", s.DateTo)
	}
	params.Set("limit", strconv.Itoa(ClampLimit(s.Limit)))

	return params
}

// CompileExport builds the parameters for the export endpoint, which
// takes its own, higher row cap.
func CompileExport(s State, enc Encoding, exportLimit int) url.Values {
	params := Compile(s, enc)
	params.Del("limit")
	params.Set("export_limit", strconv.Itoa(ClampExportLimit(exportLimit)))
	return params
}
