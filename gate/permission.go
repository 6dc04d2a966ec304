package gate

import "strings"

// Permission is "resource:action", e.g. "mandat:confirm".
// Either side may be the wildcard "*".
type Permission string

const (
	Wildcard                   = "*"
	PermissionAll   Permission = "*:*"
	permissionSplit            = ":"
)

// NewPermission builds the permission for action on resourceType.
func NewPermission(resourceType string, action Action) Permission {
	return Permission(resourceType + permissionSplit + string(action))
}

// Parse splits a permission. Malformed values give two empty strings.
func (p Permission) Parse() (resourceType string, action Action) {
	res, act, ok := strings.Cut(string(p), permissionSplit)
	if !ok || res == "" || act == "" {
		return "", ""
	}
	return res, Action(act)
}

// Matches reports whether the granted permission p covers requested.
// "mandat:*" covers every mandat action and "*:downloadPdf" covers the
// download of every resource type.
func (p Permission) Matches(requested Permission) bool {
	if p == PermissionAll || p == requested {
		return true
	}
	res, act := p.Parse()
	reqRes, reqAct := requested.Parse()
	if res == "" || reqRes == "" {
		return false
	}
	resOK := res == Wildcard || res == reqRes
	actOK := string(act) == Wildcard || act == reqAct
	return resOK && actOK
}
