package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/qszone/naviguard/internal/httpclient"
	"github.com/qszone/naviguard/internal/infrastructure/logging"
	"github.com/qszone/naviguard/internal/router"
	"github.com/qszone/naviguard/internal/routes"
	"github.com/qszone/naviguard/internal/session"
)

// msgFetchUserFailed is shown when the principal fetch fails without a
// server-supplied message.
const msgFetchUserFailed = "获取用户信息失败！"

// PrincipalFetcher fetches the principal identified by the current
// credential. *api.UserAPI satisfies it.
type PrincipalFetcher interface {
	GetUser(ctx context.Context) (*session.Principal, *httpclient.Result)
}

// Paths configures the permission guard's fixed paths.
type Paths struct {
	// Login is the path unauthenticated navigations are forced to.
	Login string

	// Home is where an authenticated navigation to Login is forced instead.
	Home string

	// Whitelist lists paths reachable without a credential.
	Whitelist []string
}

// NewPermissionGuard builds the guard that gates every route entry on
// authentication and role entitlement.
//
// Per navigation attempt: no credential sends the target to the login path
// unless whitelisted; a credentialled visit to the login path bounces home; a
// session with a loaded principal passes through; otherwise the principal is
// fetched, the accessible route subset is materialised and registered
// (plus the fixed catch-all), and the original navigation is re-dispatched so
// the router can resolve the newly registered routes. A fetch failure is not
// retried: it clears the credential, notifies, and redirects to login.
func NewPermissionGuard(
	sess *session.Session,
	users PrincipalFetcher,
	table *routes.Table,
	rt *router.Router,
	notifier Notifier,
	logger *logging.Logger,
	paths Paths,
) router.Guard {
	log := logger.With("component", "permission-guard")

	return func(ctx context.Context, nav *router.Navigation) router.Verdict {
		if _, ok := sess.Token(); !ok {
			if whitelisted(paths.Whitelist, nav.To) {
				return router.Allow()
			}
			log.Info("unauthenticated navigation redirected",
				"to", nav.To,
				"login", paths.Login,
			)
			return router.Redirect(paths.Login)
		}

		// Already authenticated: keep the user out of the login page.
		if nav.To == paths.Login {
			return router.Redirect(paths.Home)
		}

		if _, ok := sess.Principal(); ok {
			return router.Allow()
		}

		principal, err := sess.LoadPrincipal(ctx, func(ctx context.Context) (*session.Principal, error) {
			p, res := users.GetUser(ctx)
			if !res.OK() {
				return nil, fmt.Errorf("%s", res.Message)
			}
			return p, nil
		})
		if err != nil {
			// The credential is presumed stale; a session reset mid-fetch
			// already removed it.
			if !errors.Is(err, session.ErrSessionReset) {
				_ = sess.RemoveToken()
			}
			message := err.Error()
			if message == "" {
				message = msgFetchUserFailed
			}
			if notifier != nil {
				notifier.Error(message)
			}
			log.Warn("principal fetch failed",
				"to", nav.To,
				"error", err,
			)
			return router.Redirect(paths.Login)
		}

		access := table.Generate(principal.Role)
		for _, route := range access {
			if !rt.HasRoute(route.Name) {
				rt.AddRoute(route)
			}
		}
		rt.AddRoute(routes.NotFoundRoute)
		log.Info("accessible routes registered",
			"roles", principal.Role,
			"count", len(access),
		)

		// Re-dispatch (not merely continue) so the freshly registered
		// routes are resolvable on this navigation.
		return router.Redispatch(nav.To)
	}
}

func whitelisted(whitelist []string, path string) bool {
	for _, p := range whitelist {
		if p == path {
			return true
		}
	}
	return false
}
