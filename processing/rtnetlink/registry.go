package rtnetlink

import (
	"errors"
	"fmt"
	"strings"

	"github.com/scitags/nlmon-go/enrichment"
	"github.com/scitags/nlmon-go/types"
)

// ErrUnknownGroup is returned when looking up a group we don't know about.
var ErrUnknownGroup = errors.New("unknown group")

// Message is what a DecodeFunc gets to work with: the body of a netlink
// message, that is, the bytes following struct nlmsghdr.
type Message struct {
	Kind types.EventKind
	Body []byte

	// Prober is queried by decoders able to enrich their records. It
	// can be nil, in which case no enrichment takes place.
	Prober enrichment.Prober
}

// DecodeFunc appends the fields extracted from m to r. Returning ErrFiltered
// signals the message should not produce a record without it being a failure.
type DecodeFunc func(m *Message, r *types.Record) error

// Group describes a family of rtnetlink messages.
type Group struct {
	Name string

	// Multicast is the legacy RTMGRP_* bitmask to bind to.
	Multicast uint32

	NewType uint16
	DelType uint16
	GetType uint16

	// DumpFamily is the rtgen_family sent along dump requests.
	DumpFamily types.Family

	// HeaderLen is the size of the fixed header preceding the attributes.
	HeaderLen int

	Decode DecodeFunc
}

func (g Group) String() string {
	return fmt.Sprintf("%s (mcast %#x, new %d, del %d, get %d)", g.Name, g.Multicast, g.NewType, g.DelType, g.GetType)
}

// DefaultGroups returns the rtnetlink groups we support in the order they're
// dispatched and dumped.
func DefaultGroups() []Group {
	return []Group{
		{
			Name:       "link",
			Multicast:  RTMGRP_LINK,
			NewType:    RTM_NEWLINK,
			DelType:    RTM_DELLINK,
			GetType:    RTM_GETLINK,
			DumpFamily: types.IPv4,
			HeaderLen:  sizeofIfInfoMsg,
			Decode:     decodeLink,
		},
		{
			Name:       "ifaddr",
			Multicast:  RTMGRP_IPV4_IFADDR,
			NewType:    RTM_NEWADDR,
			DelType:    RTM_DELADDR,
			GetType:    RTM_GETADDR,
			DumpFamily: types.IPv4,
			HeaderLen:  sizeofIfAddrMsg,
			Decode:     decodeIfAddr,
		},
		{
			Name:       "route",
			Multicast:  RTMGRP_IPV4_ROUTE,
			NewType:    RTM_NEWROUTE,
			DelType:    RTM_DELROUTE,
			GetType:    RTM_GETROUTE,
			DumpFamily: types.IPv4,
			HeaderLen:  sizeofRtMsg,
			Decode:     decodeRoute,
		},
		{
			Name:       "neigh",
			Multicast:  RTMGRP_NEIGH,
			NewType:    RTM_NEWNEIGH,
			DelType:    RTM_DELNEIGH,
			GetType:    RTM_GETNEIGH,
			DumpFamily: types.IPv4,
			HeaderLen:  sizeofNdMsg,
			Decode:     decodeNeigh,
		},
	}
}

// Registry is an immutable, ordered list of groups. It's safe to share it
// between goroutines.
type Registry struct {
	groups []Group
}

// NewRegistry builds a registry out of groups, keeping their order.
func NewRegistry(groups ...Group) (*Registry, error) {
	seen := make(map[string]struct{}, len(groups))
	for _, g := range groups {
		if g.Name == "" {
			return nil, fmt.Errorf("group %s has no name", g)
		}
		if _, ok := seen[g.Name]; ok {
			return nil, fmt.Errorf("group %q is defined more than once", g.Name)
		}
		if g.Decode == nil {
			return nil, fmt.Errorf("group %q has no decoder", g.Name)
		}
		if g.HeaderLen < 0 {
			return nil, fmt.Errorf("group %q has a negative header length", g.Name)
		}
		seen[g.Name] = struct{}{}
	}

	return &Registry{groups: append([]Group(nil), groups...)}, nil
}

// DefaultRegistry returns a registry holding DefaultGroups.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(DefaultGroups()...)
	if err != nil {
		panic(fmt.Sprintf("broken default groups: %v", err))
	}
	return r
}

// Groups returns a copy of the registered groups.
func (r *Registry) Groups() []Group {
	return append([]Group(nil), r.groups...)
}

// Lookup returns the group called name.
func (r *Registry) Lookup(name string) (Group, bool) {
	for _, g := range r.groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Select returns the groups called names in registry order. No names
// selects every group.
func (r *Registry) Select(names ...string) ([]Group, error) {
	if len(names) == 0 {
		return r.Groups(), nil
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := r.Lookup(name); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
		}
		wanted[name] = true
	}

	groups := make([]Group, 0, len(wanted))
	for _, g := range r.groups {
		if wanted[g.Name] {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// Mask ORs the multicast bitmasks of the named groups.
func (r *Registry) Mask(names ...string) (uint32, error) {
	groups, err := r.Select(names...)
	if err != nil {
		return 0, err
	}

	var mask uint32
	for _, g := range groups {
		mask |= g.Multicast
	}
	return mask, nil
}

// Names returns the names of the groups whose bitmask is fully set in mask.
func (r *Registry) Names(mask uint32) []string {
	names := []string{}
	for _, g := range r.groups {
		if g.Multicast != 0 && mask&g.Multicast == g.Multicast {
			names = append(names, g.Name)
		}
	}
	return names
}

// Dispatch returns the first group handling messages of type t and whether
// they announce a creation or a deletion.
func (r *Registry) Dispatch(t uint16) (Group, types.EventKind, bool) {
	for _, g := range r.groups {
		switch t {
		case g.NewType:
			return g, types.Create, true
		case g.DelType:
			return g, types.Delete, true
		}
	}
	return Group{}, 0, false
}
