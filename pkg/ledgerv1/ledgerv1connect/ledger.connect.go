// Package ledgerv1connect wires the potledger.v1 services to Connect.
//
// It mirrors the layout of protoc-gen-connect-go output: procedure constants,
// a client interface with its constructor, a handler interface with its
// constructor, and an Unimplemented handler to embed.
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
	// LedgerServiceName is the fully-qualified name of the LedgerService service.
	LedgerServiceName = "potledger.v1.LedgerService"
)

// These constants are the fully-qualified names of the RPCs defined in this package. They're
// exposed at runtime as Spec.Procedure and as the final two segments of the HTTP route.
const (
	// LedgerServiceCreateSessionProcedure is the fully-qualified name of the LedgerService's CreateSession RPC.
	LedgerServiceCreateSessionProcedure = "/potledger.v1.LedgerService/CreateSession"
	// LedgerServiceGetSessionProcedure is the fully-qualified name of the LedgerService's GetSession RPC.
	LedgerServiceGetSessionProcedure = "/potledger.v1.LedgerService/GetSession"
	// LedgerServiceListSessionsProcedure is the fully-qualified name of the LedgerService's ListSessions RPC.
	LedgerServiceListSessionsProcedure = "/potledger.v1.LedgerService/ListSessions"
	// LedgerServiceDeleteSessionProcedure is the fully-qualified name of the LedgerService's DeleteSession RPC.
	LedgerServiceDeleteSessionProcedure = "/potledger.v1.LedgerService/DeleteSession"
	// LedgerServiceAddPlayerProcedure is the fully-qualified name of the LedgerService's AddPlayer RPC.
	LedgerServiceAddPlayerProcedure = "/potledger.v1.LedgerService/AddPlayer"
	// LedgerServiceListPlayersProcedure is the fully-qualified name of the LedgerService's ListPlayers RPC.
	LedgerServiceListPlayersProcedure = "/potledger.v1.LedgerService/ListPlayers"
	// LedgerServiceRecordTransactionProcedure is the fully-qualified name of the LedgerService's RecordTransaction RPC.
	LedgerServiceRecordTransactionProcedure = "/potledger.v1.LedgerService/RecordTransaction"
	// LedgerServiceDeleteTransactionProcedure is the fully-qualified name of the LedgerService's DeleteTransaction RPC.
	LedgerServiceDeleteTransactionProcedure = "/potledger.v1.LedgerService/DeleteTransaction"
	// LedgerServiceNextRoundProcedure is the fully-qualified name of the LedgerService's NextRound RPC.
	LedgerServiceNextRoundProcedure = "/potledger.v1.LedgerService/NextRound"
	// LedgerServiceEndSessionProcedure is the fully-qualified name of the LedgerService's EndSession RPC.
	LedgerServiceEndSessionProcedure = "/potledger.v1.LedgerService/EndSession"
	// LedgerServiceGetSummaryProcedure is the fully-qualified name of the LedgerService's GetSummary RPC.
	LedgerServiceGetSummaryProcedure = "/potledger.v1.LedgerService/GetSummary"
	// LedgerServiceExportStateProcedure is the fully-qualified name of the LedgerService's ExportState RPC.
	LedgerServiceExportStateProcedure = "/potledger.v1.LedgerService/ExportState"
	// LedgerServiceImportStateProcedure is the fully-qualified name of the LedgerService's ImportState RPC.
	LedgerServiceImportStateProcedure = "/potledger.v1.LedgerService/ImportState"
)

// LedgerServiceClient is a client for the potledger.v1.LedgerService service.
type LedgerServiceClient interface {
	CreateSession(context.Context, *connect.Request[ledgerv1.CreateSessionRequest]) (*connect.Response[ledgerv1.CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[ledgerv1.GetSessionRequest]) (*connect.Response[ledgerv1.GetSessionResponse], error)
	ListSessions(context.Context, *connect.Request[ledgerv1.ListSessionsRequest]) (*connect.Response[ledgerv1.ListSessionsResponse], error)
	DeleteSession(context.Context, *connect.Request[ledgerv1.DeleteSessionRequest]) (*connect.Response[ledgerv1.DeleteSessionResponse], error)
	AddPlayer(context.Context, *connect.Request[ledgerv1.AddPlayerRequest]) (*connect.Response[ledgerv1.AddPlayerResponse], error)
	ListPlayers(context.Context, *connect.Request[ledgerv1.ListPlayersRequest]) (*connect.Response[ledgerv1.ListPlayersResponse], error)
	RecordTransaction(context.Context, *connect.Request[ledgerv1.RecordTransactionRequest]) (*connect.Response[ledgerv1.RecordTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[ledgerv1.DeleteTransactionRequest]) (*connect.Response[ledgerv1.DeleteTransactionResponse], error)
	NextRound(context.Context, *connect.Request[ledgerv1.NextRoundRequest]) (*connect.Response[ledgerv1.NextRoundResponse], error)
	EndSession(context.Context, *connect.Request[ledgerv1.EndSessionRequest]) (*connect.Response[ledgerv1.EndSessionResponse], error)
	GetSummary(context.Context, *connect.Request[ledgerv1.GetSummaryRequest]) (*connect.Response[ledgerv1.GetSummaryResponse], error)
	ExportState(context.Context, *connect.Request[ledgerv1.ExportStateRequest]) (*connect.Response[ledgerv1.ExportStateResponse], error)
	ImportState(context.Context, *connect.Request[ledgerv1.ImportStateRequest]) (*connect.Response[ledgerv1.ImportStateResponse], error)
}

// NewLedgerServiceClient constructs a client for the potledger.v1.LedgerService service. The
// client speaks the Connect protocol with JSON bodies by default.
//
// The URL supplied here should be the base URL for the Connect server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{ledgerv1.ClientCodec()}, opts...)
	return &ledgerServiceClient{
		createSession: connect.NewClient[ledgerv1.CreateSessionRequest, ledgerv1.CreateSessionResponse](
			httpClient,
			baseURL+LedgerServiceCreateSessionProcedure,
			connect.WithClientOptions(opts...),
		),
		getSession: connect.NewClient[ledgerv1.GetSessionRequest, ledgerv1.GetSessionResponse](
			httpClient,
			baseURL+LedgerServiceGetSessionProcedure,
			connect.WithClientOptions(opts...),
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		),
		listSessions: connect.NewClient[ledgerv1.ListSessionsRequest, ledgerv1.ListSessionsResponse](
			httpClient,
			baseURL+LedgerServiceListSessionsProcedure,
			connect.WithClientOptions(opts...),
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		),
		deleteSession: connect.NewClient[ledgerv1.DeleteSessionRequest, ledgerv1.DeleteSessionResponse](
			httpClient,
			baseURL+LedgerServiceDeleteSessionProcedure,
			connect.WithClientOptions(opts...),
		),
		addPlayer: connect.NewClient[ledgerv1.AddPlayerRequest, ledgerv1.AddPlayerResponse](
			httpClient,
			baseURL+LedgerServiceAddPlayerProcedure,
			connect.WithClientOptions(opts...),
		),
		listPlayers: connect.NewClient[ledgerv1.ListPlayersRequest, ledgerv1.ListPlayersResponse](
			httpClient,
			baseURL+LedgerServiceListPlayersProcedure,
			connect.WithClientOptions(opts...),
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		),
		recordTransaction: connect.NewClient[ledgerv1.RecordTransactionRequest, ledgerv1.RecordTransactionResponse](
			httpClient,
			baseURL+LedgerServiceRecordTransactionProcedure,
			connect.WithClientOptions(opts...),
		),
		deleteTransaction: connect.NewClient[ledgerv1.DeleteTransactionRequest, ledgerv1.DeleteTransactionResponse](
			httpClient,
			baseURL+LedgerServiceDeleteTransactionProcedure,
			connect.WithClientOptions(opts...),
		),
		nextRound: connect.NewClient[ledgerv1.NextRoundRequest, ledgerv1.NextRoundResponse](
			httpClient,
			baseURL+LedgerServiceNextRoundProcedure,
			connect.WithClientOptions(opts...),
		),
		endSession: connect.NewClient[ledgerv1.EndSessionRequest, ledgerv1.EndSessionResponse](
			httpClient,
			baseURL+LedgerServiceEndSessionProcedure,
			connect.WithClientOptions(opts...),
		),
		getSummary: connect.NewClient[ledgerv1.GetSummaryRequest, ledgerv1.GetSummaryResponse](
			httpClient,
			baseURL+LedgerServiceGetSummaryProcedure,
			connect.WithClientOptions(opts...),
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		),
		exportState: connect.NewClient[ledgerv1.ExportStateRequest, ledgerv1.ExportStateResponse](
			httpClient,
			baseURL+LedgerServiceExportStateProcedure,
			connect.WithClientOptions(opts...),
			connect.WithIdempotency(connect.IdempotencyNoSideEffects),
		),
		importState: connect.NewClient[ledgerv1.ImportStateRequest, ledgerv1.ImportStateResponse](
			httpClient,
			baseURL+LedgerServiceImportStateProcedure,
			connect.WithClientOptions(opts...),
		),
	}
}

// ledgerServiceClient implements LedgerServiceClient.
type ledgerServiceClient struct {
	createSession *connect.Client[ledgerv1.CreateSessionRequest, ledgerv1.CreateSessionResponse]
	getSession *connect.Client[ledgerv1.GetSessionRequest, ledgerv1.GetSessionResponse]
	listSessions *connect.Client[ledgerv1.ListSessionsRequest, ledgerv1.ListSessionsResponse]
	deleteSession *connect.Client[ledgerv1.DeleteSessionRequest, ledgerv1.DeleteSessionResponse]
	addPlayer *connect.Client[ledgerv1.AddPlayerRequest, ledgerv1.AddPlayerResponse]
	listPlayers *connect.Client[ledgerv1.ListPlayersRequest, ledgerv1.ListPlayersResponse]
	recordTransaction *connect.Client[ledgerv1.RecordTransactionRequest, ledgerv1.RecordTransactionResponse]
	deleteTransaction *connect.Client[ledgerv1.DeleteTransactionRequest, ledgerv1.DeleteTransactionResponse]
	nextRound *connect.Client[ledgerv1.NextRoundRequest, ledgerv1.NextRoundResponse]
	endSession *connect.Client[ledgerv1.EndSessionRequest, ledgerv1.EndSessionResponse]
	getSummary *connect.Client[ledgerv1.GetSummaryRequest, ledgerv1.GetSummaryResponse]
	exportState *connect.Client[ledgerv1.ExportStateRequest, ledgerv1.ExportStateResponse]
	importState *connect.Client[ledgerv1.ImportStateRequest, ledgerv1.ImportStateResponse]
}

// CreateSession calls potledger.v1.LedgerService.CreateSession.
func (c *ledgerServiceClient) CreateSession(ctx context.Context, req *connect.Request[ledgerv1.CreateSessionRequest]) (*connect.Response[ledgerv1.CreateSessionResponse], error) {
	return c.createSession.CallUnary(ctx, req)
}

// GetSession calls potledger.v1.LedgerService.GetSession.
func (c *ledgerServiceClient) GetSession(ctx context.Context, req *connect.Request[ledgerv1.GetSessionRequest]) (*connect.Response[ledgerv1.GetSessionResponse], error) {
	return c.getSession.CallUnary(ctx, req)
}

// ListSessions calls potledger.v1.LedgerService.ListSessions.
func (c *ledgerServiceClient) ListSessions(ctx context.Context, req *connect.Request[ledgerv1.ListSessionsRequest]) (*connect.Response[ledgerv1.ListSessionsResponse], error) {
	return c.listSessions.CallUnary(ctx, req)
}

// DeleteSession calls potledger.v1.LedgerService.DeleteSession.
func (c *ledgerServiceClient) DeleteSession(ctx context.Context, req *connect.Request[ledgerv1.DeleteSessionRequest]) (*connect.Response[ledgerv1.DeleteSessionResponse], error) {
	return c.deleteSession.CallUnary(ctx, req)
}

// AddPlayer calls potledger.v1.LedgerService.AddPlayer.
func (c *ledgerServiceClient) AddPlayer(ctx context.Context, req *connect.Request[ledgerv1.AddPlayerRequest]) (*connect.Response[ledgerv1.AddPlayerResponse], error) {
	return c.addPlayer.CallUnary(ctx, req)
}

// ListPlayers calls potledger.v1.LedgerService.ListPlayers.
func (c *ledgerServiceClient) ListPlayers(ctx context.Context, req *connect.Request[ledgerv1.ListPlayersRequest]) (*connect.Response[ledgerv1.ListPlayersResponse], error) {
	return c.listPlayers.CallUnary(ctx, req)
}

// RecordTransaction calls potledger.v1.LedgerService.RecordTransaction.
func (c *ledgerServiceClient) RecordTransaction(ctx context.Context, req *connect.Request[ledgerv1.RecordTransactionRequest]) (*connect.Response[ledgerv1.RecordTransactionResponse], error) {
	return c.recordTransaction.CallUnary(ctx, req)
}

// DeleteTransaction calls potledger.v1.LedgerService.DeleteTransaction.
func (c *ledgerServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[ledgerv1.DeleteTransactionRequest]) (*connect.Response[ledgerv1.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

// NextRound calls potledger.v1.LedgerService.NextRound.
func (c *ledgerServiceClient) NextRound(ctx context.Context, req *connect.Request[ledgerv1.NextRoundRequest]) (*connect.Response[ledgerv1.NextRoundResponse], error) {
	return c.nextRound.CallUnary(ctx, req)
}

// EndSession calls potledger.v1.LedgerService.EndSession.
func (c *ledgerServiceClient) EndSession(ctx context.Context, req *connect.Request[ledgerv1.EndSessionRequest]) (*connect.Response[ledgerv1.EndSessionResponse], error) {
	return c.endSession.CallUnary(ctx, req)
}

// GetSummary calls potledger.v1.LedgerService.GetSummary.
func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[ledgerv1.GetSummaryRequest]) (*connect.Response[ledgerv1.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

// ExportState calls potledger.v1.LedgerService.ExportState.
func (c *ledgerServiceClient) ExportState(ctx context.Context, req *connect.Request[ledgerv1.ExportStateRequest]) (*connect.Response[ledgerv1.ExportStateResponse], error) {
	return c.exportState.CallUnary(ctx, req)
}

// ImportState calls potledger.v1.LedgerService.ImportState.
func (c *ledgerServiceClient) ImportState(ctx context.Context, req *connect.Request[ledgerv1.ImportStateRequest]) (*connect.Response[ledgerv1.ImportStateResponse], error) {
	return c.importState.CallUnary(ctx, req)
}

// LedgerServiceHandler is an implementation of the potledger.v1.LedgerService service.
type LedgerServiceHandler interface {
	CreateSession(context.Context, *connect.Request[ledgerv1.CreateSessionRequest]) (*connect.Response[ledgerv1.CreateSessionResponse], error)
	GetSession(context.Context, *connect.Request[ledgerv1.GetSessionRequest]) (*connect.Response[ledgerv1.GetSessionResponse], error)
	ListSessions(context.Context, *connect.Request[ledgerv1.ListSessionsRequest]) (*connect.Response[ledgerv1.ListSessionsResponse], error)
	DeleteSession(context.Context, *connect.Request[ledgerv1.DeleteSessionRequest]) (*connect.Response[ledgerv1.DeleteSessionResponse], error)
	AddPlayer(context.Context, *connect.Request[ledgerv1.AddPlayerRequest]) (*connect.Response[ledgerv1.AddPlayerResponse], error)
	ListPlayers(context.Context, *connect.Request[ledgerv1.ListPlayersRequest]) (*connect.Response[ledgerv1.ListPlayersResponse], error)
	RecordTransaction(context.Context, *connect.Request[ledgerv1.RecordTransactionRequest]) (*connect.Response[ledgerv1.RecordTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[ledgerv1.DeleteTransactionRequest]) (*connect.Response[ledgerv1.DeleteTransactionResponse], error)
	NextRound(context.Context, *connect.Request[ledgerv1.NextRoundRequest]) (*connect.Response[ledgerv1.NextRoundResponse], error)
	EndSession(context.Context, *connect.Request[ledgerv1.EndSessionRequest]) (*connect.Response[ledgerv1.EndSessionResponse], error)
	GetSummary(context.Context, *connect.Request[ledgerv1.GetSummaryRequest]) (*connect.Response[ledgerv1.GetSummaryResponse], error)
	ExportState(context.Context, *connect.Request[ledgerv1.ExportStateRequest]) (*connect.Response[ledgerv1.ExportStateResponse], error)
	ImportState(context.Context, *connect.Request[ledgerv1.ImportStateRequest]) (*connect.Response[ledgerv1.ImportStateResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It returns the
// path on which to mount the handler and the handler itself.
//
// By default, handlers support the Connect, gRPC, and gRPC-Web protocols with the JSON codec.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append(ledgerv1.HandlerCodecs(), opts...)
	createSessionHandler := connect.NewUnaryHandler(
		LedgerServiceCreateSessionProcedure,
		svc.CreateSession,
		connect.WithHandlerOptions(opts...),
	)
	getSessionHandler := connect.NewUnaryHandler(
		LedgerServiceGetSessionProcedure,
		svc.GetSession,
		connect.WithHandlerOptions(opts...),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	)
	listSessionsHandler := connect.NewUnaryHandler(
		LedgerServiceListSessionsProcedure,
		svc.ListSessions,
		connect.WithHandlerOptions(opts...),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	)
	deleteSessionHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteSessionProcedure,
		svc.DeleteSession,
		connect.WithHandlerOptions(opts...),
	)
	addPlayerHandler := connect.NewUnaryHandler(
		LedgerServiceAddPlayerProcedure,
		svc.AddPlayer,
		connect.WithHandlerOptions(opts...),
	)
	listPlayersHandler := connect.NewUnaryHandler(
		LedgerServiceListPlayersProcedure,
		svc.ListPlayers,
		connect.WithHandlerOptions(opts...),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	)
	recordTransactionHandler := connect.NewUnaryHandler(
		LedgerServiceRecordTransactionProcedure,
		svc.RecordTransaction,
		connect.WithHandlerOptions(opts...),
	)
	deleteTransactionHandler := connect.NewUnaryHandler(
		LedgerServiceDeleteTransactionProcedure,
		svc.DeleteTransaction,
		connect.WithHandlerOptions(opts...),
	)
	nextRoundHandler := connect.NewUnaryHandler(
		LedgerServiceNextRoundProcedure,
		svc.NextRound,
		connect.WithHandlerOptions(opts...),
	)
	endSessionHandler := connect.NewUnaryHandler(
		LedgerServiceEndSessionProcedure,
		svc.EndSession,
		connect.WithHandlerOptions(opts...),
	)
	getSummaryHandler := connect.NewUnaryHandler(
		LedgerServiceGetSummaryProcedure,
		svc.GetSummary,
		connect.WithHandlerOptions(opts...),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	)
	exportStateHandler := connect.NewUnaryHandler(
		LedgerServiceExportStateProcedure,
		svc.ExportState,
		connect.WithHandlerOptions(opts...),
		connect.WithIdempotency(connect.IdempotencyNoSideEffects),
	)
	importStateHandler := connect.NewUnaryHandler(
		LedgerServiceImportStateProcedure,
		svc.ImportState,
		connect.WithHandlerOptions(opts...),
	)
	return "/potledger.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceCreateSessionProcedure:
			createSessionHandler.ServeHTTP(w, r)
		case LedgerServiceGetSessionProcedure:
			getSessionHandler.ServeHTTP(w, r)
		case LedgerServiceListSessionsProcedure:
			listSessionsHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteSessionProcedure:
			deleteSessionHandler.ServeHTTP(w, r)
		case LedgerServiceAddPlayerProcedure:
			addPlayerHandler.ServeHTTP(w, r)
		case LedgerServiceListPlayersProcedure:
			listPlayersHandler.ServeHTTP(w, r)
		case LedgerServiceRecordTransactionProcedure:
			recordTransactionHandler.ServeHTTP(w, r)
		case LedgerServiceDeleteTransactionProcedure:
			deleteTransactionHandler.ServeHTTP(w, r)
		case LedgerServiceNextRoundProcedure:
			nextRoundHandler.ServeHTTP(w, r)
		case LedgerServiceEndSessionProcedure:
			endSessionHandler.ServeHTTP(w, r)
		case LedgerServiceGetSummaryProcedure:
			getSummaryHandler.ServeHTTP(w, r)
		case LedgerServiceExportStateProcedure:
			exportStateHandler.ServeHTTP(w, r)
		case LedgerServiceImportStateProcedure:
			importStateHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) CreateSession(context.Context, *connect.Request[ledgerv1.CreateSessionRequest]) (*connect.Response[ledgerv1.CreateSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.CreateSession is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetSession(context.Context, *connect.Request[ledgerv1.GetSessionRequest]) (*connect.Response[ledgerv1.GetSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.GetSession is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListSessions(context.Context, *connect.Request[ledgerv1.ListSessionsRequest]) (*connect.Response[ledgerv1.ListSessionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.ListSessions is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteSession(context.Context, *connect.Request[ledgerv1.DeleteSessionRequest]) (*connect.Response[ledgerv1.DeleteSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.DeleteSession is not implemented"))
}

func (UnimplementedLedgerServiceHandler) AddPlayer(context.Context, *connect.Request[ledgerv1.AddPlayerRequest]) (*connect.Response[ledgerv1.AddPlayerResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.AddPlayer is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListPlayers(context.Context, *connect.Request[ledgerv1.ListPlayersRequest]) (*connect.Response[ledgerv1.ListPlayersResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.ListPlayers is not implemented"))
}

func (UnimplementedLedgerServiceHandler) RecordTransaction(context.Context, *connect.Request[ledgerv1.RecordTransactionRequest]) (*connect.Response[ledgerv1.RecordTransactionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.RecordTransaction is not implemented"))
}

func (UnimplementedLedgerServiceHandler) DeleteTransaction(context.Context, *connect.Request[ledgerv1.DeleteTransactionRequest]) (*connect.Response[ledgerv1.DeleteTransactionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.DeleteTransaction is not implemented"))
}

func (UnimplementedLedgerServiceHandler) NextRound(context.Context, *connect.Request[ledgerv1.NextRoundRequest]) (*connect.Response[ledgerv1.NextRoundResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.NextRound is not implemented"))
}

func (UnimplementedLedgerServiceHandler) EndSession(context.Context, *connect.Request[ledgerv1.EndSessionRequest]) (*connect.Response[ledgerv1.EndSessionResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.EndSession is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetSummary(context.Context, *connect.Request[ledgerv1.GetSummaryRequest]) (*connect.Response[ledgerv1.GetSummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.GetSummary is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ExportState(context.Context, *connect.Request[ledgerv1.ExportStateRequest]) (*connect.Response[ledgerv1.ExportStateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.ExportState is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ImportState(context.Context, *connect.Request[ledgerv1.ImportStateRequest]) (*connect.Response[ledgerv1.ImportStateResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("potledger.v1.LedgerService.ImportState is not implemented"))
}
