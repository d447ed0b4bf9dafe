package files

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/cursor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/migrate"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
)

// Version section layout.
const (
	SectionVersion  = "VERSION_SECTION"
	KindFileVersion = "FILE_VERSION"

	codeFileVersion codec.Code = 10
)

// section binds a named section to a part of the data D.
type section[D any] struct {
	name  string
	write func(w *cursor.Writer, d *D, wi *descriptor.WriterInfo) error
	read  func(c *cursor.Cursor, info *descriptor.ParserInfo, d *D) error
	count func(d *D) int
}

// Format reads and writes one file kind holding a D.
type Format[D any] struct {
	kind     Kind
	sections []section[D]

	// prepare selects what is written, e.g. the public part of a project.
	prepare func(d *D) *D

	// finish runs after reference resolution and before migrations. It
	// validates cross-entity constraints the descriptors cannot see.
	finish func(d *D, info *descriptor.ParserInfo, res *Result[D])

	// graph exposes the parts of D migrations work on. Formats without a
	// graph run no migrations.
	graph func(d *D, info *descriptor.ParserInfo, opts ReadOptions) *migrate.Graph
}

// Kind returns the file kind.
func (f *Format[D]) Kind() Kind { return f.kind }

// Sections returns the section names in write order.
func (f *Format[D]) Sections() []string {
	names := make([]string, len(f.sections))
	for i, s := range f.sections {
		names[i] = s.name
	}
	return names
}

// Counts returns the number of top-level entities per section.
func (f *Format[D]) Counts(d *D) map[string]int {
	counts := make(map[string]int, len(f.sections))
	for _, s := range f.sections {
		counts[s.name] = s.count(d)
	}
	return counts
}

// Write writes d at version.Current.
func (f *Format[D]) Write(w io.Writer, d *D, opts WriteOptions) error {
	start := time.Now()
	logger := opts.logger(f.kind)

	cw := codec.NewWriter(w)
	err := f.write(cursor.NewWriter(cw), d, opts, logger)

	if opts.Observer != nil {
		opts.Observer.ObserveWrite(WriteStats{
			Kind:     f.kind,
			File:     opts.FileName,
			Bytes:    cw.Written(),
			Duration: time.Since(start),
			Err:      err,
		})
	}
	if err != nil {
		logger.Error("write failed", "error", err)
		return err
	}
	logger.Debug("file written", "bytes", cw.Written(), "duration", time.Since(start))
	return nil
}

func (f *Format[D]) write(w *cursor.Writer, d *D, opts WriteOptions, logger *slog.Logger) error {
	if d == nil {
		d = new(D)
	}
	if f.prepare != nil {
		d = f.prepare(d)
	}
	wi := descriptor.NewWriterInfo(opts.ProjectID)
	wi.Logger = logger

	if err := writeVersion(w); err != nil {
		return ioError("write", opts.FileName, err)
	}
	for _, s := range f.sections {
		if err := w.BeginSection(s.name); err != nil {
			return ioError("write", opts.FileName, err)
		}
		if err := s.write(w, d, wi); err != nil {
			return ioError("write", opts.FileName, err)
		}
		if err := w.EndSection(); err != nil {
			return ioError("write", opts.FileName, err)
		}
	}
	if err := w.WriteEOF(); err != nil {
		return ioError("write", opts.FileName, err)
	}
	if err := w.Flush(); err != nil {
		return ioError("write", opts.FileName, err)
	}
	return nil
}

// Read reads a file of any supported version.
func (f *Format[D]) Read(r io.Reader, opts ReadOptions) (*Result[D], error) {
	start := time.Now()
	logger := opts.logger(f.kind)

	res, info, err := f.read(r, opts, logger)

	stats := ReadStats{
		Kind:     f.kind,
		File:     opts.FileName,
		Duration: time.Since(start),
		Err:      err,
	}
	if res != nil {
		stats.FileVersion = res.FileVersion
		stats.Resolved = res.Resolved
		stats.Unresolved = len(res.Unresolved)
		stats.Foreign = len(res.Foreign)
		stats.Warnings = len(res.Warnings)
		stats.Migrations = res.Migrations
	}
	if info != nil {
		stats.Entities = info.Registry.Len()
	}
	if opts.Observer != nil {
		opts.Observer.ObserveRead(stats)
	}

	if err != nil {
		logger.Error("read failed", "error", err)
		return nil, err
	}
	logger.Info("file read",
		"file_version", res.FileVersion,
		"entities", stats.Entities,
		"unresolved", stats.Unresolved,
		"foreign", stats.Foreign,
		"warnings", stats.Warnings,
		"duration", stats.Duration,
	)
	return res, nil
}

func (f *Format[D]) read(r io.Reader, opts ReadOptions, logger *slog.Logger) (*Result[D], *descriptor.ParserInfo, error) {
	c := cursor.New(opts.codec(r))
	if c.AtEnd() {
		return nil, nil, c.Structural("SECTION", "empty stream")
	}

	name, err := c.NextSection()
	if err != nil {
		return nil, nil, err
	}
	fileVersion := version.Oldest
	if name == SectionVersion {
		if fileVersion, err = readVersion(c); err != nil {
			return nil, nil, err
		}
		if name, err = c.NextSection(); err != nil {
			return nil, nil, err
		}
	}
	if err := version.Check(opts.FileName, fileVersion); err != nil {
		return nil, nil, err
	}
	fileVersion = version.Normalize(fileVersion)

	info := opts.parserInfo(fileVersion, logger)
	skip := func(p codec.Pair, context string) {
		info.Warn(p.Location, context, fmt.Sprintf("skipped unknown field %d", p.Code))
	}
	c.OnSkip(skip)

	data := new(D)
	seen := make(map[string]bool, len(f.sections))
	for name != "" {
		s, ok := f.section(name)
		switch {
		case !ok:
			info.Warn(c.Location(), name, "skipped unknown section "+name)
			c.OnSkip(nil)
			err = c.SkipSection()
			c.OnSkip(skip)
		case seen[name]:
			return nil, info, c.Structural("single section "+name, "repeated section "+name)
		default:
			seen[name] = true
			if err = s.read(c, info, data); err == nil {
				err = c.EndSection()
			}
		}
		if err != nil {
			return nil, info, err
		}
		if name, err = c.NextSection(); err != nil {
			return nil, info, err
		}
	}
	if err := c.ExpectEOF(); err != nil {
		return nil, info, err
	}

	info.RunLater()
	report := info.Registry.Resolve()
	res := &Result[D]{
		Data:        data,
		FileVersion: fileVersion,
		Resolved:    report.Resolved,
		Unresolved:  report.Unresolved,
		Foreign:     report.Foreign,
	}
	if f.finish != nil {
		f.finish(data, info, res)
	}
	if f.graph != nil {
		res.Migrations = opts.migrations(logger).Apply(f.graph(data, info, opts), fileVersion)
	}
	res.Warnings = info.Warnings.List
	return res, info, nil
}

func (f *Format[D]) section(name string) (section[D], bool) {
	for _, s := range f.sections {
		if s.name == name {
			return s, true
		}
	}
	return section[D]{}, false
}

func writeVersion(w *cursor.Writer) error {
	if err := w.BeginSection(SectionVersion); err != nil {
		return err
	}
	if err := w.BeginEntity(KindFileVersion); err != nil {
		return err
	}
	if err := w.Int(codeFileVersion, version.Current); err != nil {
		return err
	}
	if err := w.EndEntity(); err != nil {
		return err
	}
	return w.EndSection()
}

// readVersion reads the body of a version section whose header was consumed.
func readVersion(c *cursor.Cursor) (int, error) {
	if err := c.BeginEntity(KindFileVersion); err != nil {
		return 0, err
	}
	v, err := c.ExpectInt(codeFileVersion)
	if err != nil {
		return 0, err
	}
	if err := c.EndEntity(); err != nil {
		return 0, err
	}
	if err := c.EndSection(); err != nil {
		return 0, err
	}
	return int(v), nil
}

// ioError wraps write failures of the underlying stream. Errors that are
// already typed pass through.
func ioError(op, file string, err error) error {
	var fe *dxferrors.FormatError
	var ie *dxferrors.IOError
	if errors.As(err, &fe) || errors.As(err, &ie) {
		return err
	}
	return dxferrors.NewIOError(op, file, err)
}

// listSection binds a section holding any number of entities to a slice of D.
func listSection[D any, V any](name string, child descriptor.Codec[V], ptr func(*D) *[]V) section[D] {
	return section[D]{
		name: name,
		write: func(w *cursor.Writer, d *D, wi *descriptor.WriterInfo) error {
			for _, v := range *ptr(d) {
				if err := child.Write(w, v, wi); err != nil {
					return err
				}
			}
			return nil
		},
		read: func(c *cursor.Cursor, info *descriptor.ParserInfo, d *D) error {
			for !c.IsMarker(cursor.MarkerEndSection) {
				if c.AtEnd() {
					return c.Structural(cursor.MarkerEndSection, "end of stream")
				}
				v, err := child.Parse(c, info)
				if err != nil {
					return err
				}
				*ptr(d) = append(*ptr(d), v)
			}
			return nil
		},
		count: func(d *D) int { return len(*ptr(d)) },
	}
}

// singleSection binds a section holding at most one entity to a field of D.
func singleSection[D any, T any](name string, child *descriptor.Entity[T], ptr func(*D) **T) section[D] {
	return section[D]{
		name: name,
		write: func(w *cursor.Writer, d *D, wi *descriptor.WriterInfo) error {
			if v := *ptr(d); v != nil {
				return child.Write(w, v, wi)
			}
			return nil
		},
		read: func(c *cursor.Cursor, info *descriptor.ParserInfo, d *D) error {
			if c.IsMarker(cursor.MarkerEndSection) {
				return nil
			}
			v, err := child.Parse(c, info)
			if err != nil {
				return err
			}
			*ptr(d) = v
			if !c.AtEnd() && !c.IsMarker(cursor.MarkerEndSection) {
				return c.Structural(cursor.MarkerEndSection, "second "+child.Kind)
			}
			return nil
		},
		count: func(d *D) int {
			if *ptr(d) == nil {
				return 0
			}
			return 1
		},
	}
}
