package shift

import (
	"strconv"
	"strings"
)

// OwnerKind tells which identifier an OwnerRef carries.
type OwnerKind uint8

const (
	OwnerUnknown OwnerKind = iota
	OwnerByID
	OwnerByUsername
	OwnerByDisplayName
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerByID:
		return "id"
	case OwnerByUsername:
		return "username"
	case OwnerByDisplayName:
		return "name"
	default:
		return "unknown"
	}
}

// OwnerRef is the strongest identity of an owner.
type OwnerRef struct {
	Kind OwnerKind
	ID   int64
	Name string
}

func (r OwnerRef) String() string {
	switch r.Kind {
	case OwnerByID:
		return "#" + strconv.FormatInt(r.ID, 10)
	case OwnerByUsername, OwnerByDisplayName:
		return r.Name
	default:
		return "?"
	}
}

// Owner identifies who an entry belongs to. Build it with NewOwner so the
// identifiers are normalised once, when the entry is ingested.
type Owner struct {
	ID          int64
	Username    string
	DisplayName string
}

// NewOwner trims the names and lower-cases the username. A non-positive id
// counts as absent.
func NewOwner(id int64, username, displayName string) Owner {
	if id < 0 {
		id = 0
	}
	return Owner{
		ID:          id,
		Username:    strings.ToLower(strings.TrimSpace(username)),
		DisplayName: strings.TrimSpace(displayName),
	}
}

// Ref returns the preferred identifier: id, then username, then display name.
func (o Owner) Ref() OwnerRef {
	switch {
	case o.ID > 0:
		return OwnerRef{Kind: OwnerByID, ID: o.ID}
	case o.Username != "":
		return OwnerRef{Kind: OwnerByUsername, Name: o.Username}
	case o.DisplayName != "":
		return OwnerRef{Kind: OwnerByDisplayName, Name: o.DisplayName}
	default:
		return OwnerRef{}
	}
}

// IsZero reports whether o carries no identifier at all.
func (o Owner) IsZero() bool {
	return o.Ref().Kind == OwnerUnknown
}

// SameOwner compares owners on the first identifier both sides carry: id,
// then username (case-insensitive), then display name. Once a criterion
// applies its answer is final.
func SameOwner(a, b Owner) bool {
	switch {
	case a.ID > 0 && b.ID > 0:
		return a.ID == b.ID
	case a.Username != "" && b.Username != "":
		return strings.EqualFold(a.Username, b.Username)
	case a.DisplayName != "" && b.DisplayName != "":
		return a.DisplayName == b.DisplayName
	default:
		return false
	}
}
