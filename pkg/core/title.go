package core

import "strings"

// Markers of the composite title "...#file=<F>#id=<I>#title=<T>".
const (
	fileMarker  = "#file="
	idMarker    = "#id="
	titleMarker = "#title="
)

// TitleFilename returns the peak list filename encoded in a composite
// title. ok is false when the title carries no "#file=" marker.
//
// Only the first occurrence of each marker is considered and the marker
// order is not validated. If "#id=" precedes "#file=" the result is empty.
func TitleFilename(title string) (filename string, ok bool) {
	return markerValue(title, fileMarker, idMarker)
}

// TitleID returns the spectrum id encoded in a composite title. ok is
// false when the title carries no "#id=" marker.
func TitleID(title string) (id string, ok bool) {
	return markerValue(title, idMarker, titleMarker)
}

// TitleOriginal returns the original spectrum title. Titles without a
// "#title=" marker are returned unchanged.
func TitleOriginal(title string) string {
	start := strings.Index(title, titleMarker)
	if start < 0 {
		return title
	}
	return title[start+len(titleMarker):]
}

// EncodeTitle builds a composite title. Empty parts are left out.
func EncodeTitle(filename, id, title string) string {
	var b strings.Builder
	if filename != "" {
		b.WriteString(fileMarker)
		b.WriteString(filename)
	}
	if id != "" {
		b.WriteString(idMarker)
		b.WriteString(id)
	}
	if title != "" {
		b.WriteString(titleMarker)
		b.WriteString(title)
	}
	return b.String()
}

func markerValue(title, marker, next string) (string, bool) {
	start := strings.Index(title, marker)
	if start < 0 {
		return "", false
	}
	start += len(marker)

	end := strings.Index(title, next)
	if end < 0 {
		end = len(title)
	}
	if end < start {
		return "", true
	}
	return title[start:end], true
}
