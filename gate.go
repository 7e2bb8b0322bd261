package aarogyam

// Well-known navigation targets for gate denials.
const (
	// PathSignIn is where unauthenticated visitors are sent.
	PathSignIn = "/signin"
	// PathDashboard is where non-admin users are sent when they hit an
	// admin-only surface.
	PathDashboard = "/dashboard"
	// PathAdminDashboard is the admin landing surface.
	PathAdminDashboard = "/admin/dashboard"
)

// Decision is the outcome of gating a protected surface. When Allowed is
// false, RedirectTo names the surface the caller should show instead;
// protected content must not be rendered on a deny.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Authorize gates a protected surface against the current session.
// Unauthenticated sessions are sent to sign-in; authenticated non-admin
// users hitting an admin-only surface are sent to the regular dashboard.
func Authorize(s *SessionStore, adminOnly bool) Decision {
	if s == nil || !s.IsAuthenticated() {
		return Decision{RedirectTo: PathSignIn}
	}

	if adminOnly {
		user := s.Current()
		if user == nil || user.Role != RoleAdmin {
			return Decision{RedirectTo: PathDashboard}
		}
	}

	return Decision{Allowed: true}
}

// HomeFor returns the role-appropriate landing surface after sign-in.
func HomeFor(user *User) string {
	if user != nil && user.Role == RoleAdmin {
		return PathAdminDashboard
	}
	return PathDashboard
}
