package guard

import "github.com/qszone/naviguard/internal/router"

// RegisterTitleGuard attaches document-title derivation to the router:
// after each completed navigation the title becomes
// "<route title> | <base title>" when the resolved route declares a title,
// and the base title alone otherwise.
//
// Side-effect only: it never alters the navigation outcome.
func RegisterTitleGuard(rt *router.Router, sink TitleSink, baseTitle string) {
	if sink == nil {
		return
	}

	rt.AfterEach(func(nav *router.Navigation) {
		title := baseTitle
		if nav.Route != nil && nav.Route.Meta.Title != "" {
			title = nav.Route.Meta.Title + " | " + baseTitle
		}
		sink.SetTitle(title)
	})
}
