package entities

import (
	"github.com/google/uuid"

	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/codec"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/dxf/descriptor"
	"github.com/bph-tuwien/SIMULTAN-sub001/pkg/model"
)

const (
	codeUserID           codec.Code = 3001
	codeUserName         codec.Code = 3002
	codeUserPasswordHash codec.Code = 3003
	codeUserRole         codec.Code = 3004
	codeUserEncryptedKey codec.Code = 3005
)

// User describes model.User. Users are keyed by GUID and never take part
// in reference resolution.
var User = &descriptor.Entity[model.User]{
	Kind: "USER",
	Name: func(u *model.User) string { return u.Name },
	Fields: []*descriptor.Field[model.User]{
		descriptor.GUID("ID", codeUserID, func(u *model.User) *uuid.UUID { return &u.ID }),
		descriptor.String("Name", codeUserName, func(u *model.User) *string { return &u.Name }),
		descriptor.Bytes("PasswordHash", codeUserPasswordHash, func(u *model.User) *[]byte { return &u.PasswordHash }),
		descriptor.Enum("Role", codeUserRole, func(u *model.User) *model.UserRole { return &u.Role }),
		descriptor.Bytes("EncryptedKey", codeUserEncryptedKey, func(u *model.User) *[]byte { return &u.EncryptedKey }),
	},
}
