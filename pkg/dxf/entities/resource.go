package entities

import (
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/ids"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeResourceKey        codec.Code = 2301
	codeResourceName       codec.Code = 2302
	codeResourceOwner      codec.Code = 2303
	codeResourceVisibility codec.Code = 2304
	codeResourceChildren   codec.Code = 2305
	codeResourcePath       codec.Code = 2306
	codeAssetKind          codec.Code = 2401
	codeAssetResource      codec.Code = 2402
	codeAssetObject        codec.Code = 2403
	codeAssetComponents    codec.Code = 2404
	codeAssetComponentGUID codec.Code = 2405
	codeAssetComponentID   codec.Code = 2406
)

func resourceFields[T any](base func(*T) *model.ResourceBase) []*descriptor.Field[T] {
	return []*descriptor.Field[T]{
		descriptor.Int("Key", codeResourceKey, func(e *T) *int { return &base(e).Key }),
		descriptor.String("Name", codeResourceName, func(e *T) *string { return &base(e).Name }),
		descriptor.Enum("Owner", codeResourceOwner, func(e *T) *model.UserRole { return &base(e).Owner }),
		descriptor.Enum("Visibility", codeResourceVisibility, func(e *T) *model.ResourceVisibility { return &base(e).Visibility }).
			Since(version.ResourceVisibility),
	}
}

// ResourceDirectory describes model.ResourceDirectory.
var ResourceDirectory = &descriptor.Entity[model.ResourceDirectory]{
	Kind: "RESOURCE_DIRECTORY",
	Name: func(d *model.ResourceDirectory) string { return d.Name },
}

// ContainedResourceFile describes model.ContainedResourceFile.
var ContainedResourceFile = &descriptor.Entity[model.ContainedResourceFile]{
	Kind:   "RESOURCE_CONTAINED",
	Name:   func(f *model.ContainedResourceFile) string { return f.Name },
	Fields: resourceFields(func(f *model.ContainedResourceFile) *model.ResourceBase { return &f.ResourceBase }),
}

// LinkedResourceFile describes model.LinkedResourceFile. The stored path is
// resolved on the current machine while reading when an AssetResolver is
// configured.
var LinkedResourceFile = &descriptor.Entity[model.LinkedResourceFile]{
	Kind: "RESOURCE_LINKED",
	Name: func(f *model.LinkedResourceFile) string { return f.Name },
	Fields: append(resourceFields(func(f *model.LinkedResourceFile) *model.ResourceBase { return &f.ResourceBase }),
		descriptor.String("Path", codeResourcePath, func(f *model.LinkedResourceFile) *string { return &f.Path }),
	),
	Finish: func(f *model.LinkedResourceFile, info *descriptor.ParserInfo) error {
		if info.Assets == nil {
			return nil
		}
		if p, ok := info.Assets.ResolveLinked(f.Path); ok {
			f.ResolvedPath = p
		} else if info.Logger != nil {
			info.Logger.Debug("linked resource not found", "key", f.Key, "path", f.Path)
		}
		return nil
	},
}

// Resource is the union of all resource tree nodes.
var Resource = &descriptor.Union[model.ResourceEntry]{Name: "resource"}

// Asset describes model.Asset.
var Asset = &descriptor.Entity[model.Asset]{
	Kind: "ASSET",
	Name: func(a *model.Asset) string { return a.ContainedObjectID },
	Fields: []*descriptor.Field[model.Asset]{
		descriptor.Enum("Kind", codeAssetKind, func(a *model.Asset) *model.AssetKind { return &a.Kind }),
		descriptor.Int("ResourceKey", codeAssetResource, func(a *model.Asset) *int { return &a.ResourceKey }),
		descriptor.String("ContainedObjectID", codeAssetObject, func(a *model.Asset) *string { return &a.ContainedObjectID }),
		descriptor.RefList("Components", codeAssetComponents, codeAssetComponentGUID, codeAssetComponentID, ids.KindComponent,
			func(a *model.Asset) *[]model.Ref[*model.Component] { return &a.Components }),
	},
}

func init() {
	ResourceDirectory.Fields = append(resourceFields(func(d *model.ResourceDirectory) *model.ResourceBase { return &d.ResourceBase }),
		descriptor.List("Children", codeResourceChildren, descriptor.Codec[model.ResourceEntry](Resource),
			func(d *model.ResourceDirectory) *[]model.ResourceEntry { return &d.Children }),
	)
	descriptor.AddVariant(Resource, ResourceDirectory)
	descriptor.AddVariant(Resource, ContainedResourceFile)
	descriptor.AddVariant(Resource, LinkedResourceFile)
}
