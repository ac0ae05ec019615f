package routes

// HasPermission reports whether a principal holding roles may enter route.
//
// True iff roles is non-empty AND the route's declared role set is non-empty
// AND the two sets intersect. Every other combination — a route with no
// declared roles, a principal with no roles — is false.
func HasPermission(route Route, roles []string) bool {
	required := route.Meta.Role
	if len(roles) == 0 || len(required) == 0 {
		return false
	}
	for _, have := range roles {
		for _, want := range required {
			if have == want {
				return true
			}
		}
	}
	return false
}

// FilterAsyncRoutes computes the subset of candidates reachable by a
// principal holding roles, recursively over nested children.
//
// Each permitted route is emitted as a shallow copy in input order. A route
// that has children keeps a (possibly empty) filtered children slice, so a
// permitted branch whose children are all denied stays structurally distinct
// from a leaf, which carries no children at all. Pure function: same inputs
// always yield a structurally equal output tree.
func FilterAsyncRoutes(candidates []Route, roles []string) []Route {
	var ret []Route
	for _, route := range candidates {
		if !HasPermission(route, roles) {
			continue
		}
		cur := route
		if len(route.Children) > 0 {
			children := FilterAsyncRoutes(route.Children, roles)
			if children == nil {
				children = []Route{}
			}
			cur.Children = children
		} else {
			cur.Children = nil
		}
		ret = append(ret, cur)
	}
	return ret
}
