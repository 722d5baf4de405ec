// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"mime"
	"path/filepath"
	"sort"
	"strings"
)

// mimeByExtension maps output file extensions to MIME types for the document
// formats the external tool handles. The table is deliberately self-contained
// so inference does not depend on the host's platform MIME database.
var mimeByExtension = map[string]string{
	".csv":  "text/csv",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".epub": "application/epub+zip",
	".htm":  "text/html",
	".html": "text/html",
	".jpeg": "image/jpeg",
	".jpg":  "image/jpeg",
	".md":   "text/markdown",
	".odg":  "application/vnd.oasis.opendocument.graphics",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odt":  "application/vnd.oasis.opendocument.text",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".rtf":  "application/rtf",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".xml":  "text/xml",
}

// InferMIME returns the MIME type implied by path's extension, or "" when
// the extension is missing or unrecognized. Unknown extensions fall through
// to the host MIME database before giving up.
func InferMIME(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return ""
	}
	if mt, ok := mimeByExtension[ext]; ok {
		return mt
	}
	// Strip any parameters the platform table may attach (e.g. charset).
	mt := mime.TypeByExtension(ext)
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return mt
}

// KnownFormats returns the built-in extension/MIME pairs sorted by extension,
// with the leading dot stripped from each extension.
func KnownFormats() [][2]string {
	out := make([][2]string, 0, len(mimeByExtension))
	for ext, mt := range mimeByExtension {
		out = append(out, [2]string{strings.TrimPrefix(ext, "."), mt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
