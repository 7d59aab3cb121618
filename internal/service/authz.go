package service

import "github.com/shopweb/shopweb-api/internal/models"

// CanAccessOrder is the single authorization policy for order reads and
// cancellation: elevated roles reach any order, standard callers only
// their own. Every order path goes through this rather than re-checking
// roles inline.
func CanAccessOrder(role models.Role, callerID, ownerID int64) bool {
	if role.Elevated() {
		return true
	}
	return callerID == ownerID
}
