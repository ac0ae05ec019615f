package guard

import (
	"github.com/qszone/naviguard/internal/infrastructure/logging"
	"github.com/qszone/naviguard/internal/router"
	"github.com/qszone/naviguard/internal/routes"
	"github.com/qszone/naviguard/internal/session"
)

// Deps bundles everything the guard stack needs.
type Deps struct {
	Session   *session.Session
	Users     PrincipalFetcher
	Table     *routes.Table
	Indicator Indicator
	Titles    TitleSink
	Notifier  Notifier
	Logger    *logging.Logger
	BaseTitle string
	Paths     Paths
}

// Setup wires the full guard stack onto the router, in order: loading
// indicator, permission gate, document title. The loading guard's Start must
// run before the permission guard can suspend on a principal fetch, and the
// title guard reads the route the permission guard resolved.
func Setup(rt *router.Router, deps Deps) {
	RegisterLoadingGuard(rt, deps.Indicator)
	rt.BeforeEach(NewPermissionGuard(
		deps.Session,
		deps.Users,
		deps.Table,
		rt,
		deps.Notifier,
		deps.Logger,
		deps.Paths,
	))
	RegisterTitleGuard(rt, deps.Titles, deps.BaseTitle)
}
