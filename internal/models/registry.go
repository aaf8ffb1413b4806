package models

import "strings"

type AddressType string

const (
	AddressMarketMaker AddressType = "MarketMaker"
	AddressKeeper      AddressType = "Keeper"
	AddressUser        AddressType = "User"
	AddressAppUser     AddressType = "AppUser"
)

// ParseAddressType maps free-form config values onto the known categories.
func ParseAddressType(s string) AddressType {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "")) {
	case "marketmaker", "mm":
		return AddressMarketMaker
	case "keeper":
		return AddressKeeper
	case "appuser":
		return AddressAppUser
	default:
		return AddressUser
	}
}

type KnownAddress struct {
	Address string      `json:"address"`
	Name    string      `json:"name"`
	Type    AddressType `json:"type"`
}

// Registry is the union of every known address list. When two lists name the
// same address the earlier list wins.
type Registry struct {
	entries   []KnownAddress
	byAddress map[string]int
}

func NewRegistry(lists ...[]KnownAddress) *Registry {
	r := &Registry{byAddress: map[string]int{}}
	for _, list := range lists {
		for _, item := range list {
			key := NormalizeAddress(item.Address)
			if key == "" {
				continue
			}
			if _, ok := r.byAddress[key]; ok {
				continue
			}
			item.Address = key
			r.byAddress[key] = len(r.entries)
			r.entries = append(r.entries, item)
		}
	}
	return r
}

func (r *Registry) Lookup(addr string) (KnownAddress, bool) {
	if r == nil {
		return KnownAddress{}, false
	}
	idx, ok := r.byAddress[NormalizeAddress(addr)]
	if !ok {
		return KnownAddress{}, false
	}
	return r.entries[idx], true
}

// NameOr returns the display name for addr or fallback when unregistered.
func (r *Registry) NameOr(addr, fallback string) string {
	if known, ok := r.Lookup(addr); ok && known.Name != "" {
		return known.Name
	}
	return fallback
}

func (r *Registry) IsType(addr string, typ AddressType) bool {
	known, ok := r.Lookup(addr)
	return ok && known.Type == typ
}

func (r *Registry) All() []KnownAddress {
	if r == nil {
		return nil
	}
	out := make([]KnownAddress, len(r.entries))
	copy(out, r.entries)
	return out
}
