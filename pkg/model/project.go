package model

import "github.com/google/uuid"

// ProjectMeta describes a project and its links to child projects.
type ProjectMeta struct {
	ProjectID     uuid.UUID
	Name          string
	ChildProjects []ChildProject
}

// ChildProject links a project nested inside another.
type ChildProject struct {
	ProjectID uuid.UUID
	Path      string
}

// LinkedFile records where a linked resource lives on one machine.
type LinkedFile struct {
	MachineHash string // hex encoded hash of the machine name
	ResourceKey int
	Path        string
}
