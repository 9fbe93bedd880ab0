package domain

import "strings"

const (
	memberKeyPrefix = "member:"
	nameKeyPrefix   = "name:"
)

// IdentityKey is the deduplication key of an attendance entry
type IdentityKey string

// MemberKey builds the key for a registered member
func MemberKey(memberID string) IdentityKey {
	return IdentityKey(memberKeyPrefix + memberID)
}

// NameKey builds the fallback key from an already-normalized display name
func NameKey(normalizedName string) IdentityKey {
	return IdentityKey(nameKeyPrefix + normalizedName)
}

// IsMember reports whether the key refers to a registered member
func (k IdentityKey) IsMember() bool {
	return strings.HasPrefix(string(k), memberKeyPrefix)
}

// MemberID returns the member id for member keys and "" otherwise
func (k IdentityKey) MemberID() string {
	if !k.IsMember() {
		return ""
	}
	return strings.TrimPrefix(string(k), memberKeyPrefix)
}
