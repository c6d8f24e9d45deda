package util

import "strings"

// ArxivIDFromFilename derives a canonical arXiv identifier from a PDF
// filename. The extension is stripped regardless of case, matching the
// case-insensitive filter of the directory walker, and a trailing version
// suffix of the form v<digits> is removed when the base name contains exactly
// one 'v' and the segment after it is fully numeric
// ("1701.00001v2.pdf" -> "1701.00001"). Base names with zero or multiple 'v'
// characters are returned as-is with the extension stripped.
func ArxivIDFromFilename(filename string) string {
	baseName := filename
	if len(filename) >= 4 && strings.EqualFold(filename[len(filename)-4:], ".pdf") {
		baseName = filename[:len(filename)-4]
	}

	if strings.Count(baseName, "v") == 1 {
		idx := strings.Index(baseName, "v")
		suffix := baseName[idx+1:]
		if isNumeric(suffix) {
			return baseName[:idx]
		}
	}
	return baseName
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
