package api

import (
	"context"
	"net/http"

	"github.com/qszone/naviguard/internal/httpclient"
)

// LoginEndpoint is the credential-exempt login endpoint. It must be on the
// pipeline's exempt list so a login can go out while no credential exists.
var LoginEndpoint = httpclient.Endpoint{Method: http.MethodPost, Path: "/auth/login"}

// LoginData is the payload of a successful login or token refresh.
type LoginData struct {
	Token string `json:"token"`
}

// AuthAPI wraps the authentication endpoints.
type AuthAPI struct {
	client *httpclient.Client
}

// NewAuthAPI creates an AuthAPI over the shared pipeline client.
func NewAuthAPI(client *httpclient.Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges a name/password pair for a bearer token.
//
// Like every pipeline call it resolves rather than rejects: check
// Result.OK() (a wrong name answers code -1 inside a 2xx response).
func (a *AuthAPI) Login(ctx context.Context, name, password string) (LoginData, *httpclient.Result) {
	res := a.client.Do(ctx, httpclient.Request{
		Method: LoginEndpoint.Method,
		Path:   LoginEndpoint.Path,
		Body: map[string]string{
			"name":     name,
			"password": password,
		},
	})
	return decodeLogin(res)
}

// RefreshToken asks for a fresh token. The server reads the current
// credential from the Authorization header, not the body, so the pipeline's
// bearer injection is all the request needs.
func (a *AuthAPI) RefreshToken(ctx context.Context) (LoginData, *httpclient.Result) {
	res := a.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   "/auth/refreshToken",
	})
	return decodeLogin(res)
}

func decodeLogin(res *httpclient.Result) (LoginData, *httpclient.Result) {
	var data LoginData
	if res.OK() {
		if err := res.Decode(&data); err != nil {
			res.Code = httpclient.CodeUnknown
			res.Message = httpclient.MsgInterfaceError
			res.Err = err
		}
	}
	return data, res
}
