package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/qszone/naviguard/internal/httpclient"
	"github.com/qszone/naviguard/internal/session"
)

// UserAPI wraps the user endpoints.
type UserAPI struct {
	client *httpclient.Client
}

// NewUserAPI creates a UserAPI over the shared pipeline client.
func NewUserAPI(client *httpclient.Client) *UserAPI {
	return &UserAPI{client: client}
}

// GetUser fetches the principal identified by the current credential.
func (u *UserAPI) GetUser(ctx context.Context) (*session.Principal, *httpclient.Result) {
	return u.fetchUser(ctx, "/user")
}

// GetUserByID fetches a specific user by ID.
func (u *UserAPI) GetUserByID(ctx context.Context, id int) (*session.Principal, *httpclient.Result) {
	return u.fetchUser(ctx, fmt.Sprintf("/user/%d", id))
}

func (u *UserAPI) fetchUser(ctx context.Context, path string) (*session.Principal, *httpclient.Result) {
	res := u.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   path,
	})
	if !res.OK() {
		return nil, res
	}

	var p session.Principal
	if err := res.Decode(&p); err != nil {
		res.Code = httpclient.CodeUnknown
		res.Message = httpclient.MsgInterfaceError
		res.Err = err
		return nil, res
	}
	return &p, res
}

// GetUsers fetches the user list with the given query parameters
// (pagination, filters).
func (u *UserAPI) GetUsers(ctx context.Context, query url.Values) ([]session.Principal, *httpclient.Result) {
	res := u.client.Do(ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   "/users",
		Query:  query,
	})
	if !res.OK() {
		return nil, res
	}

	var users []session.Principal
	if err := res.Decode(&users); err != nil {
		res.Code = httpclient.CodeUnknown
		res.Message = httpclient.MsgInterfaceError
		res.Err = err
		return nil, res
	}
	return users, res
}

// SaveUser updates the user with id, or creates a new user when id is zero.
//
// Both operations go out as PUT: the backend contract predates this client
// and uses the same method for create and update.
func (u *UserAPI) SaveUser(ctx context.Context, user session.Principal, id int) *httpclient.Result {
	path := "/user"
	if id > 0 {
		path = fmt.Sprintf("/user/%d", id)
	}
	return u.client.Do(ctx, httpclient.Request{
		Method: http.MethodPut,
		Path:   path,
		Body:   user,
	})
}
