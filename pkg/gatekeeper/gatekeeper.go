// Package gatekeeper holds the single authorization decision function used
// by the edge router and by every resource service. Both call sites share
// this implementation so their decisions can never drift apart.
package gatekeeper

import (
	"errors"

	"github.com/shoplite/catalog-system/internal/core/domain"
	"github.com/shoplite/catalog-system/pkg/token"
)

// DenyReason explains a Deny decision.
type DenyReason string

const (
	ReasonMissingToken     DenyReason = "missing_token"
	ReasonMalformed        DenyReason = "malformed"
	ReasonInvalidSignature DenyReason = "invalid_signature"
	ReasonExpired          DenyReason = "expired"
	ReasonInsufficientRole DenyReason = "insufficient_role"
)

type requirementKind int

const (
	kindNone requirementKind = iota
	kindAuthenticated
	kindAnyRole
)

// Requirement is the capability a route demands: nothing, any valid token,
// or at least one role out of a set (OR semantics).
type Requirement struct {
	kind  requirementKind
	roles []string
}

// None requires no token at all.
func None() Requirement { return Requirement{kind: kindNone} }

// Authenticated requires a valid, unexpired token with any role set.
func Authenticated() Requirement { return Requirement{kind: kindAuthenticated} }

// AnyRole requires a valid token holding at least one of the given roles.
func AnyRole(roles ...string) Requirement {
	return Requirement{kind: kindAnyRole, roles: roles}
}

// Roles returns the role set a requirement demands, nil for None and
// Authenticated.
func (r Requirement) Roles() []string { return r.roles }

// Decision is the outcome of a Decide call. Identity is set whenever a
// valid token was presented, giving handlers an explicit per-request
// identity value instead of ambient state.
type Decision struct {
	Allowed  bool
	Reason   DenyReason
	Identity *domain.Identity
}

// Gatekeeper evaluates requirements against bearer tokens. It is stateless:
// Decide is a pure computation over (token, requirement, clock) and may run
// concurrently without synchronization.
type Gatekeeper struct {
	codec *token.Codec
}

func New(codec *token.Codec) *Gatekeeper {
	return &Gatekeeper{codec: codec}
}

// Decide maps (rawToken, requirement) to Allow or Deny. Deny reasons are
// produced in a fixed evaluation order: MissingToken, then the codec's
// Malformed/InvalidSignature/Expired, then InsufficientRole.
func (g *Gatekeeper) Decide(rawToken string, req Requirement) Decision {
	if req.kind == kindNone {
		// Public route: any token present is forwarded untouched for the
		// downstream service to judge.
		return Decision{Allowed: true}
	}

	if rawToken == "" {
		return Decision{Reason: ReasonMissingToken}
	}

	claims, err := g.codec.Decode(rawToken)
	if err != nil {
		return Decision{Reason: denyReasonFor(err)}
	}

	id := &domain.Identity{Subject: claims.Subject, Roles: claims.Roles}
	if req.kind == kindAnyRole && !id.HasAnyRole(req.roles...) {
		return Decision{Reason: ReasonInsufficientRole, Identity: id}
	}

	return Decision{Allowed: true, Identity: id}
}

func denyReasonFor(err error) DenyReason {
	switch {
	case errors.Is(err, token.ErrInvalidSignature):
		return ReasonInvalidSignature
	case errors.Is(err, token.ErrExpired):
		return ReasonExpired
	default:
		return ReasonMalformed
	}
}
