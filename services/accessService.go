package services

import (
	"strings"

	"foodstop-server/models"
)

// Caller is the authenticated identity decoded from the request token.
// A nil *Caller means an anonymous request.
type Caller struct {
	User_id string
	Email   string
	Role    string
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == models.RoleAdmin
}

// CanReadOrder decides whether the caller may see the order. Admins read
// everything; authenticated customers read only orders carrying their own
// email; anonymous callers read nothing.
func CanReadOrder(order *models.Order, caller *Caller) bool {
	if caller == nil {
		return false
	}
	if caller.IsAdmin() {
		return true
	}
	return strings.EqualFold(order.Email, caller.Email)
}

func CanWriteStatus(caller *Caller) bool {
	return caller.IsAdmin()
}
