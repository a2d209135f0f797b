package ledgerv1connect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	ledgerv1 "github.com/mmynk/potledger/pkg/ledgerv1"
)

const (
	// AuthServiceName is the fully-qualified name of the AuthService service.
	AuthServiceName = "potledger.v1.AuthService"

	// AuthServiceLoginProcedure is the fully-qualified name of the AuthService's Login RPC.
	AuthServiceLoginProcedure = "/potledger.v1.AuthService/Login"
)

// AuthServiceClient is a client for the potledger.v1.AuthService service.
type AuthServiceClient interface {
	Login(context.Context, *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error)
}

// NewAuthServiceClient constructs a client for the potledger.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{ledgerv1.ClientCodec()}, opts...)
	return &authServiceClient{
		login: connect.NewClient[ledgerv1.LoginRequest, ledgerv1.LoginResponse](
			httpClient,
			baseURL+AuthServiceLoginProcedure,
			connect.WithClientOptions(opts...),
		),
	}
}

// authServiceClient implements AuthServiceClient.
type authServiceClient struct {
	login *connect.Client[ledgerv1.LoginRequest, ledgerv1.LoginResponse]
}

// Login calls potledger.v1.AuthService.Login.
func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

// AuthServiceHandler is an implementation of the potledger.v1.AuthService service.
type AuthServiceHandler interface {
	Login(context.Context, *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(ledgerv1.HandlerCodecs(), opts...)
	loginHandler := connect.NewUnaryHandler(
		AuthServiceLoginProcedure,
		svc.Login,
		connect.WithHandlerOptions(opts...),
	)
	return "/potledger.v1.AuthService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case AuthServiceLoginProcedure:
			loginHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedAuthServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedAuthServiceHandler struct{}

func (UnimplementedAuthServiceHandler) Login(context.Context, *connect.Request[ledgerv1.LoginRequest]) (*connect.Response[ledgerv1.LoginResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.AuthService.Login is not implemented"))
}
