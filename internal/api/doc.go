// Package api provides typed wrappers over the application's HTTP
// endpoints: authentication (login, token refresh) and users.
//
// Wrappers return their decoded payload together with the pipeline's
// normalised Result; callers branch on Result.OK() rather than on errors,
// matching the pipeline's resolve-not-reject contract.
package api
