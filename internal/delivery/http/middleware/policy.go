package middleware

import (
	"net/http"

	"medical-imaging-backend/internal/domain/entity"
	"medical-imaging-backend/pkg/response"
)

// Rule identifies an operation on a resource.
type Rule struct {
	Resource string
	Action   string
}

// Policy is the single declarative authorization table: every gated
// route maps to a (resource, action) pair, and the pair maps to the
// roles allowed to perform it.
type Policy map[Rule][]string

// Resource and action names used by the router.
const (
	ResourcePatients    = "patients"
	ResourceImages      = "images"
	ResourceReports     = "reports"
	ResourceAnnotations = "annotations"
	ResourceUsers       = "users"
	ResourceDashboard   = "dashboard"

	ActionRead   = "read"
	ActionWrite  = "write"
	ActionDelete = "delete"
	ActionManage = "manage"
)

// DefaultPolicy grants clinical-record access to every authenticated
// role and reserves user management and the dashboard for admins.
func DefaultPolicy() Policy {
	anyRole := []string{entity.RoleAdmin, entity.RoleStudent, entity.RoleInstructor}
	adminOnly := []string{entity.RoleAdmin}

	return Policy{
		{ResourcePatients, ActionRead}:     anyRole,
		{ResourcePatients, ActionWrite}:    anyRole,
		{ResourcePatients, ActionDelete}:   anyRole,
		{ResourceImages, ActionRead}:       anyRole,
		{ResourceImages, ActionWrite}:      anyRole,
		{ResourceReports, ActionRead}:      anyRole,
		{ResourceReports, ActionWrite}:     anyRole,
		{ResourceReports, ActionDelete}:    anyRole,
		{ResourceAnnotations, ActionRead}:  anyRole,
		{ResourceAnnotations, ActionWrite}: anyRole,
		{ResourceUsers, ActionManage}:      adminOnly,
		{ResourceDashboard, ActionRead}:    adminOnly,
	}
}

// Allows reports whether role may perform action on resource. A rule
// absent from the table denies by default.
func (p Policy) Allows(resource, action, role string) bool {
	for _, allowed := range p[Rule{Resource: resource, Action: action}] {
		if allowed == role {
			return true
		}
	}
	return false
}

// Require returns middleware enforcing the policy for one rule. It runs
// after Authenticate, which put the user in the request context.
func (p Policy) Require(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUserFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !p.Allows(resource, action, user.Role) {
				response.Forbidden(w, "You do not have access to this resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
