package files

import (
	"os"
	"path/filepath"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/entities"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

// Sections of meta and link files.
const (
	SectionMeta  = "META_SECTION"
	SectionLinks = "LINK_SECTION"
)

// MetaData is the content of a meta file.
type MetaData struct {
	Meta *model.ProjectMeta
}

// LinkData is the content of a links file.
type LinkData struct {
	Links []*model.LinkedFile
}

// Meta reads and writes .metadxf files.
var Meta = &Format[MetaData]{
	kind: KindMeta,
	sections: []section[MetaData]{
		singleSection(SectionMeta, entities.ProjectMeta,
			func(d *MetaData) **model.ProjectMeta { return &d.Meta }),
	},
}

// Links reads and writes .lidxf files.
var Links = &Format[LinkData]{
	kind: KindLinks,
	sections: []section[LinkData]{
		listSection(SectionLinks, descriptor.Codec[*model.LinkedFile](entities.LinkedFile),
			func(d *LinkData) *[]*model.LinkedFile { return &d.Links }),
	},
}

// ForMachine returns the links recorded for machine.
func (d *LinkData) ForMachine(machine string) []*model.LinkedFile {
	hash := entities.MachineHash(machine)
	var out []*model.LinkedFile
	for _, l := range d.Links {
		if l.MachineHash == hash {
			out = append(out, l)
		}
	}
	return out
}

// LinkResolver resolves linked resource paths with the links recorded for
// one machine. It implements descriptor.AssetResolver.
type LinkResolver struct {
	links []*model.LinkedFile
	dirs  []string
}

// NewLinkResolver creates a resolver from the links of machine. Extra
// directories are searched after the recorded links.
func NewLinkResolver(d *LinkData, machine string, dirs ...string) *LinkResolver {
	r := &LinkResolver{dirs: dirs}
	if d != nil {
		r.links = d.ForMachine(machine)
	}
	for _, l := range r.links {
		r.dirs = append(r.dirs, filepath.Dir(l.Path))
	}
	return r
}

// ResolveLinked implements descriptor.AssetResolver. An existing absolute
// path wins, then a recorded link with the same file name, then the first
// directory containing path.
func (r *LinkResolver) ResolveLinked(path string) (string, bool) {
	if filepath.IsAbs(path) && exists(path) {
		return path, true
	}
	base := filepath.Base(path)
	for _, l := range r.links {
		if filepath.Base(l.Path) == base && exists(l.Path) {
			return l.Path, true
		}
	}
	for _, dir := range r.dirs {
		candidate := filepath.Join(dir, path)
		if exists(candidate) {
			return candidate, true
		}
		candidate = filepath.Join(dir, base)
		if exists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}
