package domain

import "net/url"

// MediaObject is a file uploaded through metaWeblog.newMediaObject.
type MediaObject struct {
	BlogID   string
	Name     string
	MimeType string
	Bits     []byte
	Url      *url.URL
}
