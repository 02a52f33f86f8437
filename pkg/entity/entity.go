// Package entity implements the DungeonObject hierarchy: the base
// entity every room, item, piece of equipment, and mob derives from,
// plus the containment operations that keep an object's location and
// its container's contents list consistent.
//
// The engine's concurrency model is single-threaded cooperative: all
// mutation of this package's types happens on the one
// executor goroutine, so these types carry no internal locking. Only the
// boundary types in pkg/character (which do cross goroutines, at the
// network I/O edge) protect themselves with a mutex.
package entity

import (
	"fmt"
	"sync/atomic"
)

// OID is a process-unique 64-bit object identifier.
type OID uint64

var nextOID atomic.Uint64

// NewOID allocates the next unique OID. Safe to call from any goroutine
// (object creation may happen off the executor, e.g. while parsing a
// template during an I/O suspension point) even though the resulting
// object is only ever mutated on the executor afterward.
func NewOID() OID {
	return OID(nextOID.Add(1))
}

// Kind tags the concrete type of a DungeonObject for quick switch-free
// dispatch in persistence and the command layer.
type Kind string

// Kind values for every DungeonObject subtype.
const (
	KindRoom      Kind = "room"
	KindItem      Kind = "item"
	KindEquipment Kind = "equipment"
	KindWeapon    Kind = "weapon"
	KindArmor     Kind = "armor"
	KindCurrency  Kind = "currency"
	KindMob       Kind = "mob"
)

// Object is the interface every DungeonObject-derived type satisfies.
// Rooms (pkg/dungeon), items, equipment, and mobs all implement it by
// embedding Base, which supplies every method here.
type Object interface {
	OID() OID
	Kind() Kind
	Keywords() []string
	Name() string
	LongDescription() string
	RoomDescription() string

	Location() Object
	SetLocation(Object)
	Contents() []Object
	AppendContent(Object)
	RemoveContent(Object) bool
}

// Base is the common embedded struct backing every DungeonObject. It
// owns identity, naming/keywords, and the location/contents bookkeeping;
// concrete types add their own fields alongside it.
type Base struct {
	ID        OID      `yaml:"oid"`
	ObjKind   Kind      `yaml:"kind"`
	KeywordsList []string `yaml:"keywords"`
	DisplayName  string   `yaml:"name"`
	LongDesc     string   `yaml:"long_description,omitempty"`
	RoomDesc     string   `yaml:"room_description,omitempty"`

	location Object
	contents []Object
}

// NewBase constructs a Base with a freshly allocated OID.
func NewBase(kind Kind, name string, keywords []string) Base {
	return Base{
		ID:           NewOID(),
		ObjKind:      kind,
		DisplayName:  name,
		KeywordsList: keywords,
	}
}

// OID returns the object's unique identifier.
func (b *Base) OID() OID { return b.ID }

// Kind returns the object's type tag.
func (b *Base) Kind() Kind { return b.ObjKind }

// Keywords returns the name-matching keyword set.
func (b *Base) Keywords() []string { return b.KeywordsList }

// Name returns the display name.
func (b *Base) Name() string { return b.DisplayName }

// LongDescription returns the optional long description.
func (b *Base) LongDescription() string { return b.LongDesc }

// RoomDescription returns the optional description shown when the object
// sits in a room's contents list (as opposed to `look`ed at directly).
func (b *Base) RoomDescription() string { return b.RoomDesc }

// Location returns the object's current container, or nil if it is not
// contained anywhere.
func (b *Base) Location() Object { return b.location }

// SetLocation overwrites the back-reference without touching any
// contents list; callers that want the full invariant-preserving move
// should use Attach/Detach instead of calling this directly.
func (b *Base) SetLocation(o Object) { b.location = o }

// Contents returns the objects directly contained here. The returned
// slice is the live backing slice; callers must not mutate it and should
// treat it as read-only (Attach/Detach are the only mutators).
func (b *Base) Contents() []Object { return b.contents }

// AppendContent appends a child to the contents list without checking
// for duplicates or updating the child's location; Attach is the safe
// entry point.
func (b *Base) AppendContent(o Object) { b.contents = append(b.contents, o) }

// RemoveContent removes the first occurrence of o from the contents
// list. It reports whether anything was removed.
func (b *Base) RemoveContent(o Object) bool {
	for i, c := range b.contents {
		if c.OID() == o.OID() {
			b.contents = append(b.contents[:i], b.contents[i+1:]...)
			return true
		}
	}
	return false
}

// ErrContainmentCycle is returned by Attach when adding child to
// container would make container a descendant of itself.
type ErrContainmentCycle struct {
	Container OID
	Child     OID
}

func (e *ErrContainmentCycle) Error() string {
	return fmt.Sprintf("entity: attaching %d to %d would create a containment cycle", e.Child, e.Container)
}

// IsAncestor reports whether candidate is found by walking up of's
// location chain, i.e. whether candidate (transitively) contains of.
func IsAncestor(candidate, of Object) bool {
	cur := of.Location()
	for cur != nil {
		if cur.OID() == candidate.OID() {
			return true
		}
		cur = cur.Location()
	}
	return false
}

// Attach moves child into container: it detaches child from its current
// location (if any), verifies the move does not create a containment
// cycle, appends child to container's contents, and points child's
// location at container. It emits no messages.
func Attach(container, child Object) error {
	if container.OID() == child.OID() || IsAncestor(child, container) {
		return &ErrContainmentCycle{Container: container.OID(), Child: child.OID()}
	}
	Detach(child)
	container.AppendContent(child)
	child.SetLocation(container)
	return nil
}

// Detach removes child from its current container's contents list and
// clears its location. It is a no-op if child has no location.
func Detach(child Object) {
	if old := child.Location(); old != nil {
		old.RemoveContent(child)
		child.SetLocation(nil)
	}
}

// MatchKeyword reports whether any of the object's keywords has fragment
// as a case-insensitive prefix. This is the per-object primitive the
// command layer's scope resolution builds on.
func MatchKeyword(o Object, fragment string) bool {
	for _, kw := range o.Keywords() {
		if hasCaseInsensitivePrefix(kw, fragment) {
			return true
		}
	}
	return false
}

func hasCaseInsensitivePrefix(s, prefix string) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		a, b := s[i], prefix[i]
		if 'A' <= a && a <= 'Z' {
			a += 'a' - 'A'
		}
		if 'A' <= b && b <= 'Z' {
			b += 'a' - 'A'
		}
		if a != b {
			return false
		}
	}
	return true
}
