package constants

import "strings"

// FileFormat is the declared kind of an uploaded document.
type FileFormat string

const (
	WORD  FileFormat = "WORD"
	PDF   FileFormat = "PDF"
	IMAGE FileFormat = "IMAGE" // handwriting answer captures only
)

// AllowedExtensions holds the default allowed file extensions for paper ingestion.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"docx": {},
	"doc":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// MapExtToFormat maps a normalized extension to a FileFormat, or "" if unsupported.
func MapExtToFormat(ext string) FileFormat {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "doc", "docx", "odt", "rtf":
		return WORD
	case "jpg", "jpeg", "png":
		return IMAGE
	default:
		return ""
	}
}

// MapMIMEToFormat maps a declared MIME type to a FileFormat, or "" if unsupported.
func MapMIMEToFormat(mime string) FileFormat {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "application/pdf":
		return PDF
	case "application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return WORD
	case "image/jpeg", "image/png":
		return IMAGE
	default:
		return ""
	}
}
