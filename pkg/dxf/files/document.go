package files

import (
	"bytes"
	"fmt"
	"io"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	dxferrors "github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/errors"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/migrate"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/resolve"
)

// Document is a read file of any kind. Data holds the kind's data type,
// e.g. *ProjectData for KindComponents.
type Document struct {
	Kind        Kind
	Data        any
	FileVersion int
	Counts      map[string]int
	Resolved    int
	Unresolved  []*dxferrors.UnresolvedReferenceError
	Foreign     []resolve.ForeignRef
	Warnings    []descriptor.Warning
	Migrations  []migrate.Report
	Dangling    []*dxferrors.UnresolvedReferenceError
}

type anyFormat interface {
	readDocument(r io.Reader, opts ReadOptions) (*Document, error)
	writeDocument(w io.Writer, data any, opts WriteOptions) error
}

func formatFor(kind Kind) (anyFormat, error) {
	switch kind {
	case KindComponents:
		return Components, nil
	case KindPublicComponents:
		return PublicComponents, nil
	case KindParameterLibrary:
		return ParameterLibrary, nil
	case KindMultiValueLibrary:
		return MultiValues, nil
	case KindExcelTools:
		return ExcelTools, nil
	case KindTaxonomies:
		return Taxonomies, nil
	case KindSitePlanner:
		return SitePlanner, nil
	case KindGeoMap:
		return GeoMaps, nil
	case KindGeometryRelations:
		return GeometryRelations, nil
	case KindUsers:
		return Users, nil
	case KindMeta:
		return Meta, nil
	case KindLinks:
		return Links, nil
	default:
		return nil, fmt.Errorf("unknown file kind %v", kind)
	}
}

// ReadDocument reads a file of the given kind.
func ReadDocument(kind Kind, r io.Reader, opts ReadOptions) (*Document, error) {
	f, err := formatFor(kind)
	if err != nil {
		return nil, err
	}
	return f.readDocument(r, opts)
}

// WriteDocument writes doc.Data at version.Current.
func WriteDocument(w io.Writer, doc *Document, opts WriteOptions) error {
	f, err := formatFor(doc.Kind)
	if err != nil {
		return err
	}
	return f.writeDocument(w, doc.Data, opts)
}

func (f *Format[D]) readDocument(r io.Reader, opts ReadOptions) (*Document, error) {
	res, err := f.Read(r, opts)
	if err != nil {
		return nil, err
	}
	return &Document{
		Kind:        f.kind,
		Data:        res.Data,
		FileVersion: res.FileVersion,
		Counts:      f.Counts(res.Data),
		Resolved:    res.Resolved,
		Unresolved:  res.Unresolved,
		Foreign:     res.Foreign,
		Warnings:    res.Warnings,
		Migrations:  res.Migrations,
		Dangling:    res.Dangling,
	}, nil
}

func (f *Format[D]) writeDocument(w io.Writer, data any, opts WriteOptions) error {
	d, ok := data.(*D)
	if !ok {
		return fmt.Errorf("cannot write %T as %v", data, f.kind)
	}
	return f.Write(w, d, opts)
}

func (f *EncryptedFormat[D]) readDocument(r io.Reader, opts ReadOptions) (*Document, error) {
	plain, err := f.open(r, opts)
	if err != nil {
		return nil, err
	}
	return f.plain.readDocument(bytes.NewReader(plain), opts)
}

func (f *EncryptedFormat[D]) writeDocument(w io.Writer, data any, opts WriteOptions) error {
	d, ok := data.(*D)
	if !ok {
		return fmt.Errorf("cannot write %T as %v", data, f.plain.kind)
	}
	return f.Write(w, d, opts)
}
