// Package identity maps callers and manual entries onto ledger identity keys
package identity

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/domain"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/logger"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store"
	"github.com/Luthfisurya324/project-digcity-website-sub001/internal/store/schema"
)

// Warning flags an identity resolved without a member record
type Warning string

const (
	// WarnNameFallback means the identity is keyed by normalized name because no member matched
	WarnNameFallback Warning = "name_fallback"
	// WarnAmbiguousName means several members share the name, so none was linked
	WarnAmbiguousName Warning = "ambiguous_name"
)

// maxNameMatches bounds name lookups; two results are enough to detect ambiguity
const maxNameMatches = 2

// Caller is the authenticated principal performing a redemption
type Caller struct {
	Subject     string
	Email       string
	DisplayName string
}

// Identity is a resolved ledger identity
type Identity struct {
	Key               domain.IdentityKey
	MemberID          *string
	DisplayName       string
	ExternalReference *string
	Warnings          []Warning
}

// Resolver resolves identities against the member directory
type Resolver struct {
	members store.MemberDirectory
}

// NewResolver creates a resolver
func NewResolver(members store.MemberDirectory) *Resolver {
	return &Resolver{members: members}
}

// Resolve maps an authenticated caller to an identity: member by subject, then by email,
// then a name key built from the display name.
func (r *Resolver) Resolve(ctx context.Context, caller *Caller) (*Identity, error) {
	if caller == nil {
		return nil, domain.ErrNotAuthenticated
	}

	if subject := strings.TrimSpace(caller.Subject); subject != "" {
		member, err := r.members.GetMemberBySubject(ctx, subject)
		if err != nil {
			return nil, err
		}
		if member != nil {
			return fromMember(member), nil
		}
	}

	if email := strings.TrimSpace(caller.Email); email != "" {
		member, err := r.members.GetMemberByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if member != nil {
			return fromMember(member), nil
		}
	}

	normalized := NormalizeName(caller.DisplayName)
	if normalized == "" {
		return nil, domain.ErrNotAuthenticated
	}

	logger.DebugCtx(ctx, "Caller has no member record, using name identity",
		zap.String("subject", caller.Subject))

	return &Identity{
		Key:         domain.NameKey(normalized),
		DisplayName: strings.TrimSpace(caller.DisplayName),
		Warnings:    []Warning{WarnNameFallback},
	}, nil
}

// ResolveManual maps an operator-supplied member ID or free-text name to an identity
func (r *Resolver) ResolveManual(ctx context.Context, memberID string, name string) (*Identity, error) {
	if memberID = strings.TrimSpace(memberID); memberID != "" {
		member, err := r.members.GetMemberByID(ctx, memberID)
		if err != nil {
			return nil, err
		}
		if member == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMemberNotFound, memberID)
		}
		return fromMember(member), nil
	}

	normalized := NormalizeName(name)
	if normalized == "" {
		return nil, fmt.Errorf("%w: member id or name is required", domain.ErrMemberNotFound)
	}

	members, err := r.members.FindMembersByNormalizedName(ctx, normalized, maxNameMatches)
	if err != nil {
		return nil, err
	}

	switch len(members) {
	case 1:
		return fromMember(&members[0]), nil
	case 0:
		return nameIdentity(normalized, name, WarnNameFallback), nil
	default:
		logger.WarnCtx(ctx, "Manual entry name matches several members",
			zap.String("normalized_name", normalized))
		return nameIdentity(normalized, name, WarnAmbiguousName), nil
	}
}

func nameIdentity(normalized, name string, warning Warning) *Identity {
	return &Identity{
		Key:         domain.NameKey(normalized),
		DisplayName: strings.Join(strings.Fields(name), " "),
		Warnings:    []Warning{warning},
	}
}

func fromMember(m *schema.Member) *Identity {
	id := m.ID
	return &Identity{
		Key:               domain.MemberKey(m.ID),
		MemberID:          &id,
		DisplayName:       m.FullName,
		ExternalReference: m.MemberNumber,
	}
}
