// Package policy holds the single authorization decision surface for article
// and user operations.
package policy

import (
	"github.com/knowledgehub/knowledgehub/storage/model"
)

// Action is an operation on an article
type Action string

// Actions
const (
	ActionRead      Action = "read"
	ActionList      Action = "list"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
	ActionSummarize Action = "summarize"
)

// CanAccess decides whether actor may perform action on an article owned by
// ownerID.
func CanAccess(actor model.Actor, ownerID uint, action Action) bool {
	switch action {
	case ActionRead, ActionList:
		return true
	case ActionUpdate:
		return IsAdmin(actor) || actor.ID == ownerID
	case ActionDelete:
		return IsAdmin(actor)
	case ActionSummarize:
		// Any authenticated actor may summarize any article, not only owners.
		return true
	default:
		return false
	}
}

// IsAdmin reports whether the actor has the admin role
func IsAdmin(actor model.Actor) bool {
	return actor.Role == model.RoleAdmin
}
