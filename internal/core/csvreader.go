package core

import (
	"archive/zip"
	"bufio"
	"compress/bzip2"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupEncoding maps a charset name to its decoder. UTF-8 variants strip a
// leading byte order mark.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		return unicode.UTF8BOM, nil
	case "latin1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	}

	e, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported encoding %q", ErrIllegalValue, name)
	}
	return e, nil
}

// OpenSource opens a file at the given path, decompresses it with the named
// codec ("" for none) and decodes it from the given encoding to UTF-8. The
// error from opening the file itself is returned unwrapped.
func OpenSource(path, compress, enc string) (io.ReadCloser, error) {
	e, err := LookupEncoding(enc)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, closer, err := decompress(f, compress)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	rc := struct {
		io.Reader
		io.Closer
	}{
		Reader: transform.NewReader(r, e.NewDecoder()),
		Closer: closer,
	}
	return rc, nil
}

func decompress(f *os.File, codec string) (io.Reader, io.Closer, error) {
	switch strings.ToLower(codec) {
	case "":
		return bufio.NewReader(f), f, nil
	case "gzip":
		gz, err := gzip.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, nil, fmt.Errorf("gzip: %w", err)
		}
		return gz, closers{gz, f}, nil
	case "bzip2":
		return bzip2.NewReader(bufio.NewReader(f)), f, nil
	case "zip":
		fi, err := f.Stat()
		if err != nil {
			return nil, nil, err
		}
		zr, err := zip.NewReader(f, fi.Size())
		if err != nil {
			return nil, nil, fmt.Errorf("zip: %w", err)
		}
		ze := &zipEntries{files: zr.File}
		return ze, closers{ze, f}, nil
	default:
		return nil, nil, fmt.Errorf("%w: compress %q", ErrIllegalValue, codec)
	}
}

// zipEntries reads every file entry of an archive back to back, in archive order
type zipEntries struct {
	files []*zip.File
	cur   io.ReadCloser
}

func (z *zipEntries) Read(p []byte) (int, error) {
	for {
		if z.cur == nil {
			if len(z.files) == 0 {
				return 0, io.EOF
			}
			next := z.files[0]
			z.files = z.files[1:]
			if next.FileInfo().IsDir() {
				continue
			}
			rc, err := next.Open()
			if err != nil {
				return 0, fmt.Errorf("zip entry %s: %w", next.Name, err)
			}
			z.cur = rc
		}

		n, err := z.cur.Read(p)
		if errors.Is(err, io.EOF) {
			z.cur.Close()
			z.cur = nil
			if n > 0 {
				return n, nil
			}
			continue
		}
		return n, err
	}
}

func (z *zipEntries) Close() error {
	if z.cur == nil {
		return nil
	}
	err := z.cur.Close()
	z.cur = nil
	return err
}

type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewCSVReader returns a csv.Reader configured with the given delimiter and options.
// Rows may have differing field counts.
func NewCSVReader(r io.Reader, delim rune, lazy bool) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.LazyQuotes = lazy
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	return cr
}
