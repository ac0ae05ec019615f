package router

import (
	"context"
	"errors"
	"testing"

	"github.com/qszone/naviguard/internal/infrastructure/logging"
	"github.com/qszone/naviguard/internal/routes"
)

func newTestRouter() *Router {
	return New(routes.BasicRoutes, logging.Default())
}

func TestAddRoute_HasRoute(t *testing.T) {
	r := newTestRouter()

	if !r.HasRoute("LOGIN") {
		t.Error("HasRoute(LOGIN) = false for an initial route")
	}
	if r.HasRoute("Page2") {
		t.Error("HasRoute(Page2) = true before registration")
	}

	r.AddRoute(routes.AsyncRoutes[1]) // Page2
	if !r.HasRoute("Page2") {
		t.Error("HasRoute(Page2) = false after AddRoute")
	}
}

func TestAddRoute_RegistersChildren(t *testing.T) {
	r := newTestRouter()
	r.AddRoute(routes.Route{
		Name: "Parent",
		Path: "/parent",
		Children: []routes.Route{
			{Name: "Child", Path: "/parent/child"},
		},
	})

	if !r.HasRoute("Child") {
		t.Error("nested child route was not registered")
	}
	if _, ok := r.Match("/parent/child"); !ok {
		t.Error("nested child path does not match")
	}
}

func TestMatch_CatchAll(t *testing.T) {
	r := newTestRouter()

	if _, ok := r.Match("/nope"); ok {
		t.Error("Match() resolved an unregistered path without a catch-all")
	}

	r.AddRoute(routes.NotFoundRoute)
	rt, ok := r.Match("/nope")
	if !ok || rt.Name != "NotFound" {
		t.Errorf("Match(/nope) = (%v, %v), want the catch-all", rt.Name, ok)
	}

	// Exact matches still win over the catch-all.
	rt, _ = r.Match("/login")
	if rt.Name != "LOGIN" {
		t.Errorf("Match(/login) = %v, want LOGIN", rt.Name)
	}
}

func TestPush_GuardsRunInOrder(t *testing.T) {
	r := newTestRouter()

	var order []string
	r.BeforeEach(func(ctx context.Context, nav *Navigation) Verdict {
		order = append(order, "first")
		return Allow()
	})
	r.BeforeEach(func(ctx context.Context, nav *Navigation) Verdict {
		order = append(order, "second")
		return Allow()
	})
	r.AfterEach(func(nav *Navigation) {
		order = append(order, "after")
	})

	if err := r.Push(context.Background(), "/login"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	want := []string{"first", "second", "after"}
	if len(order) != len(want) {
		t.Fatalf("hook order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("hook order = %v, want %v", order, want)
		}
	}
	if r.Current() != "/login" {
		t.Errorf("Current() = %q, want /login", r.Current())
	}
}

func TestPush_Redirect(t *testing.T) {
	r := newTestRouter()

	r.BeforeEach(func(ctx context.Context, nav *Navigation) Verdict {
		if nav.To == "/page2" {
			return Redirect("/login")
		}
		return Allow()
	})

	if err := r.Push(context.Background(), "/page2"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if r.Current() != "/login" {
		t.Errorf("Current() = %q, want the redirect target /login", r.Current())
	}
}

func TestPush_RedispatchSeesNewRoutes(t *testing.T) {
	r := newTestRouter()

	registered := false
	r.BeforeEach(func(ctx context.Context, nav *Navigation) Verdict {
		if nav.To == "/page2" && !registered {
			registered = true
			r.AddRoute(routes.AsyncRoutes[1]) // Page2
			return Redispatch(nav.To)
		}
		return Allow()
	})

	var resolved *routes.Route
	r.AfterEach(func(nav *Navigation) { resolved = nav.Route })

	if err := r.Push(context.Background(), "/page2"); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if resolved == nil || resolved.Name != "Page2" {
		t.Errorf("re-dispatched navigation resolved %v, want Page2", resolved)
	}
}

func TestPush_FailInvokesErrorHooks(t *testing.T) {
	r := newTestRouter()
	boom := errors.New("boom")

	r.BeforeEach(func(ctx context.Context, nav *Navigation) Verdict {
		return Fail(boom)
	})

	var hookErr error
	r.OnError(func(nav *Navigation, err error) { hookErr = err })

	if err := r.Push(context.Background(), "/login"); !errors.Is(err, boom) {
		t.Errorf("Push() error = %v, want boom", err)
	}
	if !errors.Is(hookErr, boom) {
		t.Errorf("error hook received %v, want boom", hookErr)
	}
	if r.Current() == "/login" {
		t.Error("failed navigation still updated Current()")
	}
}

func TestPush_RedirectLoopBounded(t *testing.T) {
	r := newTestRouter()

	r.BeforeEach(func(ctx context.Context, nav *Navigation) Verdict {
		return Redirect("/elsewhere")
	})

	err := r.Push(context.Background(), "/login")
	if !errors.Is(err, ErrTooManyRedirects) {
		t.Errorf("Push() error = %v, want ErrTooManyRedirects", err)
	}
}
