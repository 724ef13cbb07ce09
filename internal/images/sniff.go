package images

import "github.com/gabriel-vasile/mimetype"

// allowedMIMEs mirrors the upload extension allow-list.
var allowedMIMEs = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/gif":  {},
	"image/webp": {},
}

// Sniff detects the MIME type of data from its magic bytes and reports
// whether it is one of the accepted image formats. The filename extension
// is not trusted for this check.
func Sniff(data []byte) (string, bool) {
	mtype := mimetype.Detect(data)
	_, ok := allowedMIMEs[mtype.String()]
	return mtype.String(), ok
}
