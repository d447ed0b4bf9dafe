package model

// ResourceVisibility controls who sees a resource.
type ResourceVisibility int

const (
	ResourceVisibleToAll ResourceVisibility = iota
	ResourceVisibleToOwner
	ResourceHidden
)

// ResourceEntry is the closed union of the resource tree's nodes.
type ResourceEntry interface {
	Resource() *ResourceBase
	isResource()
}

// ResourceBase is shared by every resource.
type ResourceBase struct {
	Key        int // project-unique resource key, referenced by assets
	Name       string
	Owner      UserRole
	Visibility ResourceVisibility
}

// Resource returns the shared record.
func (b *ResourceBase) Resource() *ResourceBase { return b }

// ResourceDirectory groups resources.
type ResourceDirectory struct {
	ResourceBase
	Children []ResourceEntry
}

// ContainedResourceFile is a file stored inside the project.
type ContainedResourceFile struct {
	ResourceBase
}

// LinkedResourceFile is a file outside the project. ResolvedPath is filled
// during a read by the asset resolver and is never persisted.
type LinkedResourceFile struct {
	ResourceBase
	Path         string
	ResolvedPath string
}

func (*ResourceDirectory) isResource()     {}
func (*ContainedResourceFile) isResource() {}
func (*LinkedResourceFile) isResource()    {}

// WalkResources calls fn for every resource below root, depth first.
func WalkResources(entries []ResourceEntry, fn func(ResourceEntry)) {
	for _, e := range entries {
		fn(e)
		if d, ok := e.(*ResourceDirectory); ok {
			WalkResources(d.Children, fn)
		}
	}
}

// AssetKind distinguishes what part of a resource an asset points into.
type AssetKind int

const (
	AssetGeometric AssetKind = iota
	AssetDocument
)

// Asset links components to an object inside a resource file.
type Asset struct {
	Kind              AssetKind
	ResourceKey       int
	ContainedObjectID string
	Components        []Ref[*Component]
}
