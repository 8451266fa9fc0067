package history

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"
	"go-ml.dev/pkg/zorros"
)

var extensions = []string{".json", ".jsonl"}

// compression suffixes recognised after a record extension
var compressions = []string{"", ".xz", ".zst"}

/*
Recognised reports whether the file name has a print record extension
*/
func Recognised(name string) bool {
	for _, c := range compressions {
		for _, e := range extensions {
			if strings.HasSuffix(name, e+c) {
				return true
			}
		}
	}
	return false
}

func decompress(name string, rd io.Reader) (io.ReadCloser, error) {
	switch {
	case strings.HasSuffix(name, ".xz"):
		r, err := xz.NewReader(rd)
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to open xz stream %v: %v", name, err.Error())
		}
		return io.NopCloser(r), nil
	case strings.HasSuffix(name, ".zst"):
		r, err := zstd.NewReader(rd)
		if err != nil {
			return nil, zorros.Wrapf(err, "failed to open zstd stream %v: %v", name, err.Error())
		}
		return r.IOReadCloser(), nil
	}
	return io.NopCloser(rd), nil
}

/*
ReadFile reads every print record of the file. A file may hold one document
or line-delimited documents, optionally xz or zstd compressed
*/
func ReadFile(name string) ([]*Print, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to open history file %v: %v", name, err.Error())
	}
	defer f.Close()
	r, err := decompress(name, f)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	prints, err := Read(r)
	if err != nil {
		return nil, zorros.Wrapf(err, "failed to read history file %v: %v", name, err.Error())
	}
	return prints, nil
}

/*
Read decodes print documents until the end of the stream
*/
func Read(r io.Reader) ([]*Print, error) {
	var prints []*Print
	dec := json.NewDecoder(r)
	for {
		p := &Print{}
		if err := dec.Decode(p); err == io.EOF {
			return prints, nil
		} else if err != nil {
			return nil, zorros.Trace(err)
		}
		prints = append(prints, p)
	}
}

/*
Write encodes prints as line-delimited documents
*/
func Write(w io.Writer, prints ...*Print) error {
	enc := json.NewEncoder(w)
	for _, p := range prints {
		if err := enc.Encode(p); err != nil {
			return zorros.Trace(err)
		}
	}
	return nil
}

/*
WriteFile writes prints to a line-delimited file compressed according to its
name: .xz, .zst or uncompressed
*/
func WriteFile(name string, prints ...*Print) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return zorros.Wrapf(err, "failed to create history file %v: %v", name, err.Error())
	}
	defer func() {
		if e := f.Close(); err == nil && e != nil {
			err = zorros.Trace(e)
		}
	}()
	var w io.WriteCloser
	switch {
	case strings.HasSuffix(name, ".xz"):
		if w, err = xz.NewWriter(f); err != nil {
			return zorros.Trace(err)
		}
	case strings.HasSuffix(name, ".zst"):
		if w, err = zstd.NewWriter(f); err != nil {
			return zorros.Trace(err)
		}
	default:
		return Write(f, prints...)
	}
	if err = Write(w, prints...); err != nil {
		w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return zorros.Trace(err)
	}
	return nil
}
