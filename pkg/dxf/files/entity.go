package files

import (
	"io"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
)

// WriteEntity writes a single entity without any section framing.
func WriteEntity[V any](w io.Writer, c descriptor.Codec[V], v V, opts WriteOptions) error {
	cw := cursor.NewWriter(codec.NewWriter(w))
	wi := descriptor.NewWriterInfo(opts.ProjectID)
	wi.Logger = opts.logger(KindUnknown)
	if err := c.Write(cw, v, wi); err != nil {
		return ioError("write", opts.FileName, err)
	}
	if err := cw.Flush(); err != nil {
		return ioError("write", opts.FileName, err)
	}
	return nil
}

// ReadEntity reads a single entity written at fileVersion and resolves the
// references it holds against opts.Registry. No migrations run.
func ReadEntity[V any](r io.Reader, c descriptor.Codec[V], fileVersion int, opts ReadOptions) (*Result[V], error) {
	if err := version.Check(opts.FileName, fileVersion); err != nil {
		return nil, err
	}
	fileVersion = version.Normalize(fileVersion)
	info := opts.parserInfo(fileVersion, opts.logger(KindUnknown))
	v, err := c.Parse(cursor.New(opts.codec(r)), info)
	if err != nil {
		return nil, err
	}
	info.RunLater()
	report := info.Registry.Resolve()
	return &Result[V]{
		Data:        &v,
		FileVersion: fileVersion,
		Resolved:    report.Resolved,
		Unresolved:  report.Unresolved,
		Foreign:     report.Foreign,
		Warnings:    info.Warnings.List,
	}, nil
}
