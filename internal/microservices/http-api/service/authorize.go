package service

import (
	"titlehub/internal/microservices/http-api/permission"
	"titlehub/internal/shared/apperr"
)

// authorize turns a predicate result into the error the caller should see:
// anonymous callers are asked to authenticate, known ones are refused.
func authorize(actor permission.Identity, allowed bool) error {
	if allowed {
		return nil
	}
	if !actor.Authenticated() {
		return apperr.Unauthenticated("authentication credentials were not provided")
	}
	return apperr.PermissionDenied("you do not have permission to perform this action")
}
