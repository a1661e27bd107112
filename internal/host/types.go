// Package host defines the contract between the import add-on and the media
// center hosting it: the provider and import descriptors the host hands out,
// the settings capability, the item model, and the callback surfaces the
// discovery, observer and importer components talk to.
package host

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Media types understood by the host's video library.
const (
	MediaTypeMovie           = "movie"
	MediaTypeVideoCollection = "set"
	MediaTypeMusicVideo      = "musicvideo"
	MediaTypeTvShow          = "tvshow"
	MediaTypeSeason          = "season"
	MediaTypeEpisode         = "episode"
)

// DefaultMediaTypes lists every media type a provider can offer for import.
var DefaultMediaTypes = []string{
	MediaTypeMovie,
	MediaTypeVideoCollection,
	MediaTypeMusicVideo,
	MediaTypeTvShow,
	MediaTypeSeason,
	MediaTypeEpisode,
}

// Handle identifies one pending host invocation.
type Handle int

// Provider describes a media provider as registered with the host.
// ID is always assigned by the registering side and never rewritten by the host.
type Provider struct {
	ID           string   `json:"id"`
	FriendlyName string   `json:"friendly_name"`
	IconURL      string   `json:"icon_url"`
	MediaTypes   []string `json:"media_types"`
	Active       bool     `json:"active"`
}

// String renders the provider the way it appears in log lines.
func (p *Provider) String() string {
	if p == nil || p.ID == "" {
		return "unknown media provider"
	}
	return fmt.Sprintf("%q (%s)", p.FriendlyName, p.ID)
}

// Valid reports whether the provider carries an identifier.
func (p *Provider) Valid() bool {
	return p != nil && p.ID != ""
}

// Import pairs a provider with the set of media types synchronised from it.
type Import struct {
	Provider   Provider `json:"provider"`
	MediaTypes []string `json:"media_types"`
}

// String renders the import the way it appears in log lines.
func (i *Import) String() string {
	if i == nil {
		return "unknown media import"
	}
	return fmt.Sprintf("%s [%s]", i.Provider.String(), strings.Join(i.MediaTypes, ", "))
}

// Valid reports whether the import belongs to a valid provider.
func (i *Import) Valid() bool {
	return i != nil && i.Provider.Valid()
}

// Matches reports whether other has the same identity: same provider
// identifier and the same media type set, regardless of order.
func (i *Import) Matches(other *Import) bool {
	if i == nil || other == nil {
		return false
	}
	return i.Provider.ID == other.Provider.ID && SameMediaTypes(i.MediaTypes, other.MediaTypes)
}

// Handles reports whether mediaType belongs to the import's media type set.
func (i *Import) Handles(mediaType string) bool {
	return slices.Contains(i.MediaTypes, mediaType)
}

// Key returns a stable string form of the import identity.
func (i *Import) Key() string {
	types := slices.Clone(i.MediaTypes)
	slices.Sort(types)
	types = slices.Compact(types)
	return i.Provider.ID + "|" + strings.Join(types, ",")
}

// SameMediaTypes compares two media type lists as sets.
func SameMediaTypes(a, b []string) bool {
	as := slices.Clone(a)
	bs := slices.Clone(b)
	slices.Sort(as)
	slices.Sort(bs)
	return slices.Equal(slices.Compact(as), slices.Compact(bs))
}

// ChangesetType tells the host how to treat an item passed back to it.
type ChangesetType int

const (
	// ChangesetNone lets the host decide.
	ChangesetNone ChangesetType = iota
	// ChangesetAdded marks a new item.
	ChangesetAdded
	// ChangesetChanged marks an item that was imported before and changed.
	ChangesetChanged
	// ChangesetRemoved marks an item that has to be removed.
	ChangesetRemoved
)

func (c ChangesetType) String() string {
	switch c {
	case ChangesetAdded:
		return "added"
	case ChangesetChanged:
		return "changed"
	case ChangesetRemoved:
		return "removed"
	default:
		return "none"
	}
}

// ParseChangesetType maps the wire form back to a ChangesetType.
func ParseChangesetType(s string) ChangesetType {
	switch strings.ToLower(s) {
	case "added":
		return ChangesetAdded
	case "changed":
		return ChangesetChanged
	case "removed":
		return ChangesetRemoved
	default:
		return ChangesetNone
	}
}

// Item is one library item as exchanged with the host.
type Item struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Path           string    `json:"path"`
	MediaType      string    `json:"media_type"`
	Playcount      int       `json:"playcount"`
	LastPlayed     time.Time `json:"last_played,omitempty"`
	ResumePosition float64   `json:"resume_position"`
	TotalTime      float64   `json:"total_time"`
}

// IsVideo reports whether the item carries video library information.
func (it *Item) IsVideo() bool {
	return it != nil && slices.Contains(DefaultMediaTypes, it.MediaType)
}

// ChangedItem is one entry of a changeset.
type ChangedItem struct {
	Type ChangesetType
	Item *Item
}

// Option is a label/key pair offered to the user by a settings options filler.
type Option struct {
	Label string
	Key   string
}
