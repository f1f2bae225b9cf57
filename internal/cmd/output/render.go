package output

import "io"

// Render writes raw in the structured formats, or the value returned by
// tabular in the table formats. An empty format is auto-detected.
func Render(w io.Writer, format string, raw any, tabular func(wide bool) any) error {
	f := DetectFormat(format)
	if f.IsTable() {
		return NewFormatter(f).Format(w, tabular(f == FormatWide))
	}
	return NewFormatter(f).Format(w, raw)
}
