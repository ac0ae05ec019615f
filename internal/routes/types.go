package routes

// Meta carries a route's declarative metadata.
type Meta struct {
	// Title is the human-readable page title, rendered by the title guard
	// as "<title> | <base title>".
	Title string `json:"title,omitempty"`

	// Role lists the role tags entitled to enter the route. A route with no
	// declared roles is denied to every principal — absence of a role
	// requirement is not "public".
	Role []string `json:"role,omitempty"`
}

// Route is a declarative descriptor of a navigable view.
//
// Component is an opaque reference (a lazy-load key) this core never
// inspects; the view-rendering collaborator resolves it. Name is unique
// within its table.
type Route struct {
	Name      string  `json:"name"`
	Path      string  `json:"path"`
	Component string  `json:"component"`
	Meta      Meta    `json:"meta"`
	Children  []Route `json:"children,omitempty"`
	IsHidden  bool    `json:"isHidden,omitempty"`
}

// CatchAllPath marks a route that matches any path not matched by a named
// route, e.g. the "not found" page.
const CatchAllPath = "*"

// BasicRoutes are always registered, independent of the principal's roles.
var BasicRoutes = []Route{
	{
		Name:      "LOGIN",
		Path:      "/login",
		Component: "views/login",
		IsHidden:  true,
		Meta: Meta{
			Title: "登录页",
		},
	},
	{
		Name:      "Dashboard",
		Path:      "/",
		Component: "views/dashboard",
		Meta: Meta{
			Title: "Dashboard",
		},
	},
}

// AsyncRoutes is the declarative candidate set. Which of these become
// reachable is computed per session from the principal's roles.
var AsyncRoutes = []Route{
	{
		Name:      "Page1",
		Path:      "/page1",
		Component: "views/test-page/page1",
		Meta: Meta{
			Title: "动态路由1",
			Role:  []string{"admin"},
		},
	},
	{
		Name:      "Page2",
		Path:      "/page2",
		Component: "views/test-page/page2",
		Meta: Meta{
			Title: "动态路由2",
			Role:  []string{"editor"},
		},
	},
	{
		Name:      "Page3",
		Path:      "/page3",
		Component: "views/test-page/page3",
		Meta: Meta{
			Title: "动态路由3",
			Role:  []string{"admin"},
		},
	},
}

// NotFoundRoute is the fixed catch-all registered after the accessible set.
var NotFoundRoute = Route{
	Name:      "NotFound",
	Path:      CatchAllPath,
	Component: "views/error-page/404",
	IsHidden:  true,
	Meta: Meta{
		Title: "页面飞走了",
	},
}
