// Package policy wires the gate with the mission roles and the per-status
// preconditions of every action. These checks only decide what the
// dashboard offers; the backend remains the authority.
package policy

import (
	"context"

	"github.com/diewo77/go-missions/auth"
	"github.com/diewo77/go-missions/gate"
	"github.com/diewo77/go-missions/internal/actions"
	"github.com/diewo77/go-missions/internal/mission"
)

// Backend roles known to the dashboard.
const (
	RoleAdmin        = "ADMIN"
	RoleDirecteur    = "DIRECTEUR"
	RoleGestionnaire = "GESTIONNAIRE"
	RoleAgent        = "AGENT"
)

// DefaultGrants is the permission table of each role.
var DefaultGrants = gate.Grants{
	RoleAdmin: {gate.PermissionAll},
	RoleDirecteur: {
		"*:list", "*:view", "*:confirm", "*:reject", "*:downloadPdf",
	},
	RoleGestionnaire: {
		"*:list", "*:view", "*:create", "*:edit", "*:execute", "*:complete", "*:downloadPdf",
		"ordre:addAttachments",
	},
	RoleAgent: {
		"*:list", "*:view", "*:downloadPdf", "ordre:create", "ordre:addAttachments",
	},
}

// Authorizer answers "may this session do that to this record".
type Authorizer struct {
	gate *gate.Gate[*auth.Session]
}

// New registers the status policy of every family on a role-based gate.
// A nil grants table uses DefaultGrants.
func New(grants gate.Grants) *Authorizer {
	if grants == nil {
		grants = DefaultGrants
	}
	g := gate.NewGate[*auth.Session](gate.NewRoleResolver(grants, func(s *auth.Session) []string {
		return s.Roles
	}))
	for _, f := range mission.Families() {
		g.Register(string(f), StatusPolicy{Family: f})
	}
	return &Authorizer{gate: g}
}

// Gate exposes the underlying gate.
func (a *Authorizer) Gate() *gate.Gate[*auth.Session] { return a.gate }

// CanAct reports whether action n is offered on r.
func (a *Authorizer) CanAct(ctx context.Context, s *auth.Session, f mission.Family, n actions.Name, r mission.Record) bool {
	return a.gate.Can(ctx, s, gate.Action(n), string(f), r)
}

// Allowed returns the actions of set offered on r, in declaration order.
func (a *Authorizer) Allowed(ctx context.Context, s *auth.Session, f mission.Family, set actions.Set, r mission.Record) []actions.Name {
	return set.Filter(func(n actions.Name) bool { return a.CanAct(ctx, s, f, n, r) })
}

// CanUse reports whether the session's roles grant action n on the family,
// regardless of any record.
func (a *Authorizer) CanUse(ctx context.Context, s *auth.Session, f mission.Family, n actions.Name) bool {
	return a.gate.CanProfile(ctx, s, gate.Action(n), string(f))
}

// CanCreate reports whether the session may open the creation form.
func (a *Authorizer) CanCreate(ctx context.Context, s *auth.Session, f mission.Family) bool {
	return a.gate.Can(ctx, s, gate.ActionCreate, string(f), nil)
}

// CanView reports whether the session may open a record's detail.
func (a *Authorizer) CanView(ctx context.Context, s *auth.Session, f mission.Family) bool {
	return a.gate.Can(ctx, s, gate.ActionView, string(f), nil)
}

// StatusPolicy accepts an action only in the status where the workflow
// allows it.
type StatusPolicy struct {
	Family mission.Family
}

// Can implements gate.Policy.
func (p StatusPolicy) Can(_ context.Context, s *auth.Session, action gate.Action, resource any) bool {
	r, ok := resource.(mission.Record)
	if !ok {
		return resource == nil
	}
	status := mission.Normalize(string(r.Statut))
	switch actions.Name(action) {
	case actions.Confirm, actions.Reject:
		return status == mission.StatusEnAttenteConfirmation
	case actions.Execute:
		return status == mission.StatusEnAttenteExecution
	case actions.Complete:
		return status == mission.StatusEnCours
	case actions.AddAttachments:
		return p.Family == mission.FamilyOrdre && status == mission.StatusEnAttenteJustificatif
	case actions.Edit:
		return status == mission.StatusEnAttenteConfirmation && owns(s, r)
	case actions.DownloadPDF:
		return p.Family.Precedes(mission.StatusEnAttenteConfirmation, status)
	}
	switch action {
	case gate.ActionView, gate.ActionList:
		return true
	case gate.ActionUpdate:
		return status == mission.StatusEnAttenteConfirmation && owns(s, r)
	}
	return false
}

// owns is lenient when the backend did not send the creator id.
func owns(s *auth.Session, r mission.Record) bool {
	if s.HasRole(RoleAdmin) || r.CreatedByID == 0 {
		return true
	}
	return r.CreatedByID == s.UserID
}
