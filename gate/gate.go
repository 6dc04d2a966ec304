// Package gate is a small Gate/Policy authorization registry.
//
// A Gate checks two things, in order: that the subject's profile grants the
// "resource:action" permission (when a ProfileResolver is configured), then
// that the resource policy registered for the resource type accepts the
// concrete resource. It has no knowledge of the domain; U is whatever the
// host application uses as its subject (a user id, a session pointer...).
package gate

import (
	"context"
	"errors"
)

// Action is the operation a subject wants to perform. Applications add
// their own on top of the generic ones below.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

var (
	// ErrUnauthorized is returned for an anonymous subject or a refusal.
	ErrUnauthorized = errors.New("gate: not authorized")
	// ErrNoPolicyDefined is returned when neither a profile resolver nor a
	// policy can decide for the resource type.
	ErrNoPolicyDefined = errors.New("gate: no policy for resource type")
)

// Gate is the central authorization checkpoint.
type Gate[U comparable] struct {
	resolver ProfileResolver[U]
	policies map[string]Policy[U]
}

// NewGate creates a Gate. With a nil resolver only registered policies are
// consulted and a resource type without policy is refused.
func NewGate[U comparable](resolver ProfileResolver[U]) *Gate[U] {
	return &Gate[U]{resolver: resolver, policies: make(map[string]Policy[U])}
}

// Register sets the policy of a resource type, replacing any previous one.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.policies[resourceType] = p
}

// Authorize returns nil when user may perform action on resource.
// ErrUnauthorized is returned for the zero subject or a refusal,
// ErrNoPolicyDefined when nothing could decide.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return ErrUnauthorized
	}
	p, hasPolicy := g.policies[resourceType]
	if g.resolver == nil && !hasPolicy {
		return ErrNoPolicyDefined
	}
	if g.resolver != nil && !g.profileAllows(ctx, user, action, resourceType) {
		return ErrUnauthorized
	}
	if hasPolicy && !p.Can(ctx, user, action, resource) {
		return ErrUnauthorized
	}
	return nil
}

// Can is Authorize as a bool.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

// CanProfile checks only the profile permission, before any resource is loaded.
func (g *Gate[U]) CanProfile(ctx context.Context, user U, action Action, resourceType string) bool {
	var zero U
	if user == zero || g.resolver == nil {
		return false
	}
	return g.profileAllows(ctx, user, action, resourceType)
}

func (g *Gate[U]) profileAllows(ctx context.Context, user U, action Action, resourceType string) bool {
	profile, err := g.resolver.Resolve(ctx, user)
	if err != nil || profile == nil {
		return false
	}
	return profile.HasPermission(NewPermission(resourceType, action))
}
