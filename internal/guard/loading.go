package guard

import (
	"context"
	"time"

	"github.com/qszone/naviguard/internal/router"
)

// finishDelay holds the indicator visible briefly after completion, so a
// fast navigation doesn't flash it.
const finishDelay = 200 * time.Millisecond

// RegisterLoadingGuard attaches the loading-indicator lifecycle to the
// router: start before any navigation, finish shortly after completion, and
// switch to the error display when a navigation fails.
//
// Side-effect only: it never alters the navigation outcome.
func RegisterLoadingGuard(rt *router.Router, indicator Indicator) {
	if indicator == nil {
		return
	}

	rt.BeforeEach(func(ctx context.Context, nav *router.Navigation) router.Verdict {
		indicator.Start()
		return router.Allow()
	})

	rt.AfterEach(func(nav *router.Navigation) {
		time.AfterFunc(finishDelay, indicator.Finish)
	})

	rt.OnError(func(nav *router.Navigation, err error) {
		indicator.Error()
	})
}
