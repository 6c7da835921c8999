package model

import "strings"

const (
	customerKeyPrefix = "cart_client_"
	guestKeyPrefix    = "cart_guest_"
)

// Identity is the shopper a cart belongs to. CustomerID wins over GuestID
// when both are set.
type Identity struct {
	CustomerID string
	GuestID    string
}

// IsCustomer reports whether the shopper is authenticated.
func (i Identity) IsCustomer() bool {
	return strings.TrimSpace(i.CustomerID) != ""
}

// StorageKey returns the key of the slot holding this shopper's cart.
func (i Identity) StorageKey() string {
	if i.IsCustomer() {
		return customerKeyPrefix + i.CustomerID
	}
	return guestKeyPrefix + i.GuestID
}

// GuestKey returns the guest slot key, or "" when there is no guest id.
func (i Identity) GuestKey() string {
	if strings.TrimSpace(i.GuestID) == "" {
		return ""
	}
	return guestKeyPrefix + i.GuestID
}

// CanMergeGuest reports whether a guest cart should be folded into the customer cart.
func (i Identity) CanMergeGuest() bool {
	return i.IsCustomer() && i.GuestKey() != ""
}
