// Package descriptor provides the declarative field tables every persisted
// entity kind is described with.
//
// An Entity lists its fields in wire order. Each field carries its code,
// the version range it is present in, the default used when a file
// predates it and, where the encoding changed, a legacy decoder for older
// files. Writers always emit the current layout; parsers accept every
// historical layout by consulting ParserInfo.FileVersion:
//
//	var Person = &descriptor.Entity[model.User]{
//	    Kind: "USER",
//	    Fields: []*descriptor.Field[model.User]{
//	        descriptor.GUID("ID", 1001, func(u *model.User) *uuid.UUID { return &u.ID }),
//	        descriptor.String("Name", 1002, func(u *model.User) *string { return &u.Name }),
//	        descriptor.Enum("Role", 1003, func(u *model.User) *model.UserRole { return &u.Role }).
//	            Since(version.AccessProfiles),
//	    },
//	}
//
// Version branches live in these tables and in the legacy-id table of
// package ids, never in ad hoc checks spread over parsing code.
//
// # References
//
// Ref fields capture the persisted id and queue a placeholder in the
// ParserInfo registry once the whole entity has been read, so reports name
// the holder completely. Entities with an OwnID field are registered under
// that id after parsing.
package descriptor
