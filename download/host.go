// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package download

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"github.com/UNO-SOFT/recsheet"
)

var (
	_ = recsheet.Host((*FileHost)(nil))
	_ = recsheet.Host((*ResponseHost)(nil))
)

// FileHost downloads into a directory.
type FileHost struct {
	*Store
	// Dir is the target directory, the current one when empty.
	Dir string
}

// NewFileHost returns a FileHost writing into dir.
func NewFileHost(dir string) *FileHost { return &FileHost{Store: &Store{}, Dir: dir} }

// Download writes the referenced blob into Dir, under the base name of fileName.
func (h *FileHost) Download(ref, fileName string) error {
	b, err := h.Lookup(ref)
	if err != nil {
		return err
	}
	fn := filepath.Join(h.Dir, filepath.Base(fileName))
	if err := os.WriteFile(fn, b.Data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", fn, err)
	}
	return nil
}

// ResponseHost downloads as an HTTP attachment response.
type ResponseHost struct {
	*Store
	w       http.ResponseWriter
	written atomic.Bool
}

// NewResponseHost returns a ResponseHost writing to w, keeping blobs in store.
func NewResponseHost(w http.ResponseWriter, store *Store) *ResponseHost {
	if store == nil {
		store = &Store{}
	}
	return &ResponseHost{Store: store, w: w}
}

// Download writes the referenced blob as the response body,
// with Content-Disposition: attachment.
func (h *ResponseHost) Download(ref, fileName string) error {
	b, err := h.Lookup(ref)
	if err != nil {
		return err
	}
	hdr := h.w.Header()
	hdr.Set("Content-Type", b.Type)
	hdr.Set("Content-Disposition", mime.FormatMediaType("attachment",
		map[string]string{"filename": filepath.Base(fileName)}))
	hdr.Set("Content-Length", strconv.Itoa(len(b.Data)))
	h.w.WriteHeader(http.StatusOK)
	h.written.Store(true)
	_, err = h.w.Write(b.Data)
	return err
}

// Written reports whether a download has been written.
func (h *ResponseHost) Written() bool { return h.written.Load() }
