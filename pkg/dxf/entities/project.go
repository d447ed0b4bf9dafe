package entities

import (
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/version"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeMetaProjectID     codec.Code = 3501
	codeMetaName          codec.Code = 3502
	codeMetaChildren      codec.Code = 3503
	codeChildProjectID    codec.Code = 3511
	codeChildProjectPath  codec.Code = 3512
	codeLinkMachineHash   codec.Code = 3601
	codeLinkResource      codec.Code = 3602
	codeLinkPath          codec.Code = 3603
	codeLinkLegacyMachine codec.Code = 3604
)

// MachineHash returns the hex encoded hash a machine name is stored as.
// Names are compared case insensitively.
func MachineHash(machine string) string {
	sum := blake2b.Sum256([]byte(strings.ToUpper(machine)))
	return hex.EncodeToString(sum[:])
}

// ChildProject describes model.ChildProject.
var ChildProject = &descriptor.Entity[model.ChildProject]{
	Kind: "CHILD_PROJECT",
	Name: func(p *model.ChildProject) string { return p.Path },
	Fields: []*descriptor.Field[model.ChildProject]{
		descriptor.GUID("ProjectID", codeChildProjectID, func(p *model.ChildProject) *uuid.UUID { return &p.ProjectID }),
		descriptor.String("Path", codeChildProjectPath, func(p *model.ChildProject) *string { return &p.Path }),
	},
}

// ProjectMeta describes model.ProjectMeta.
var ProjectMeta = &descriptor.Entity[model.ProjectMeta]{
	Kind: "PROJECT_META",
	Name: func(m *model.ProjectMeta) string { return m.Name },
	Fields: []*descriptor.Field[model.ProjectMeta]{
		descriptor.GUID("ProjectID", codeMetaProjectID, func(m *model.ProjectMeta) *uuid.UUID { return &m.ProjectID }),
		descriptor.String("Name", codeMetaName, func(m *model.ProjectMeta) *string { return &m.Name }),
		descriptor.Values("ChildProjects", codeMetaChildren, ChildProject,
			func(m *model.ProjectMeta) *[]model.ChildProject { return &m.ChildProjects }).
			Since(version.ChildProjects),
	},
}

// LinkedFile describes model.LinkedFile. Old files stored the machine
// name in clear text, which is hashed while reading.
var LinkedFile = &descriptor.Entity[model.LinkedFile]{
	Kind: "LINK",
	Name: func(l *model.LinkedFile) string { return l.Path },
	Fields: []*descriptor.Field[model.LinkedFile]{
		descriptor.String("MachineHash", codeLinkMachineHash, func(l *model.LinkedFile) *string { return &l.MachineHash }).
			Legacy(version.MachineHashes, func(s *descriptor.State[model.LinkedFile]) error {
				name, err := s.C.ExpectString(codeLinkLegacyMachine)
				if err != nil {
					return err
				}
				s.E.MachineHash = MachineHash(name)
				return nil
			}),
		descriptor.Int("ResourceKey", codeLinkResource, func(l *model.LinkedFile) *int { return &l.ResourceKey }),
		descriptor.String("Path", codeLinkPath, func(l *model.LinkedFile) *string { return &l.Path }),
	},
}
