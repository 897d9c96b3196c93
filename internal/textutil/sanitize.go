package textutil

import "strings"

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. Path traversal sequences are collapsed so a
// server-supplied name can never escape the download directory.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = fileNameReplacer.Replace(name)
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	return strings.Trim(strings.TrimSpace(name), ".")
}

// DocxName converts a source filename into the matching .docx download name.
// Returns "converted.docx" when the input carries no usable stem.
func DocxName(original string) string {
	stem := SanitizeFileName(original)
	if idx := strings.LastIndex(stem, "."); idx > 0 {
		stem = stem[:idx]
	}
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "converted.docx"
	}
	return stem + ".docx"
}
