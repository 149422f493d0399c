package service

import (
	"bytes"
	"path/filepath"
)

// FileUpload carries one fully-buffered uploaded file from the API
// layer into a service. Uploads are synchronous and held in memory;
// there is no streaming or resumability.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Data        []byte
}

// Reader returns a reader over the buffered file contents.
func (f FileUpload) Reader() *bytes.Reader {
	return bytes.NewReader(f.Data)
}

// Ext returns the filename extension including the dot, or an empty
// string if the filename has none.
func (f FileUpload) Ext() string {
	return filepath.Ext(f.Filename)
}
