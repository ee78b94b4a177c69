package server

import (
	"context"
	"errors"

	slogctx "github.com/veqryn/slog-context"

	"github.com/openkcm/report-wallet/internal/ledger"
	"github.com/openkcm/report-wallet/internal/openapi"
	"github.com/openkcm/report-wallet/internal/presenter"
	"github.com/openkcm/report-wallet/internal/serviceerr"
	"github.com/openkcm/report-wallet/internal/session"
	"github.com/openkcm/report-wallet/internal/submission"
)

// Presenter is what the API exposes.
type Presenter interface {
	View() presenter.View
	Connect(ctx context.Context) (*session.ActiveSession, error)
	Disconnect(ctx context.Context)
	Submit(ctx context.Context) (submission.Result, error)
	Refresh(ctx context.Context) (ledger.Reading, error)
}

// openAPIServer is an implementation of the OpenAPI interface.
type openAPIServer struct {
	presenter Presenter
}

// Ensure openAPIServer implements [openapi.StrictServerInterface]
var _ openapi.StrictServerInterface = (*openAPIServer)(nil)

// newOpenAPIServer creates a new implementation of the openapi.StrictServerInterface.
func newOpenAPIServer(p Presenter) *openAPIServer {
	return &openAPIServer{presenter: p}
}

// Ping implements openapi.StrictServerInterface.
func (s *openAPIServer) Ping(ctx context.Context, _ openapi.PingRequestObject) (openapi.PingResponseObject, error) {
	slogctx.Debug(ctx, "Ping() called")

	return openapi.Ping200JSONResponse{Result: "ping"}, nil
}

// GetView implements openapi.StrictServerInterface.
func (s *openAPIServer) GetView(_ context.Context, _ openapi.GetViewRequestObject) (openapi.GetViewResponseObject, error) {
	return openapi.GetView200JSONResponse(s.presenter.View()), nil
}

// ConnectWallet implements openapi.StrictServerInterface. Wallet calls outlive the
// HTTP request: a client going away does not abort them.
func (s *openAPIServer) ConnectWallet(ctx context.Context, _ openapi.ConnectWalletRequestObject) (openapi.ConnectWalletResponseObject, error) {
	slogctx.Debug(ctx, "ConnectWallet() called")
	defer slogctx.Debug(ctx, "ConnectWallet() completed")

	active, err := s.presenter.Connect(context.WithoutCancel(ctx))
	if err != nil {
		body, status := s.failure(ctx, err)
		return openapi.ConnectWalletdefaultJSONResponse{
			Body:       body,
			StatusCode: status,
		}, nil
	}

	return openapi.ConnectWallet200JSONResponse{
		Result: openapi.ConnectResult{
			Provider:    active.Provider,
			ConnectedAt: active.ConnectedAt,
		},
		View: s.presenter.View(),
	}, nil
}

// DisconnectWallet implements openapi.StrictServerInterface.
func (s *openAPIServer) DisconnectWallet(ctx context.Context, _ openapi.DisconnectWalletRequestObject) (openapi.DisconnectWalletResponseObject, error) {
	slogctx.Debug(ctx, "DisconnectWallet() called")
	defer slogctx.Debug(ctx, "DisconnectWallet() completed")

	s.presenter.Disconnect(context.WithoutCancel(ctx))

	return openapi.DisconnectWallet200JSONResponse{View: s.presenter.View()}, nil
}

// SubmitReport implements openapi.StrictServerInterface.
func (s *openAPIServer) SubmitReport(ctx context.Context, _ openapi.SubmitReportRequestObject) (openapi.SubmitReportResponseObject, error) {
	slogctx.Debug(ctx, "SubmitReport() called")
	defer slogctx.Debug(ctx, "SubmitReport() completed")

	result, err := s.presenter.Submit(context.WithoutCancel(ctx))
	if err != nil {
		body, status := s.failure(ctx, err)
		return openapi.SubmitReportdefaultJSONResponse{
			Body:       body,
			StatusCode: status,
		}, nil
	}

	submitted := openapi.SubmitResult{AttemptId: result.AttemptID}
	if result.TxHash != "" {
		submitted.TxHash = &result.TxHash
	}

	return openapi.SubmitReport200JSONResponse{
		Result: submitted,
		View:   s.presenter.View(),
	}, nil
}

// RefreshReports implements openapi.StrictServerInterface.
func (s *openAPIServer) RefreshReports(ctx context.Context, _ openapi.RefreshReportsRequestObject) (openapi.RefreshReportsResponseObject, error) {
	slogctx.Debug(ctx, "RefreshReports() called")
	defer slogctx.Debug(ctx, "RefreshReports() completed")

	reading, err := s.presenter.Refresh(ctx)
	if err != nil {
		body, status := s.failure(ctx, err)
		return openapi.RefreshReportsdefaultJSONResponse{
			Body:       body,
			StatusCode: status,
		}, nil
	}

	result := openapi.ReportsReading{
		Value: reading.Value.String(),
		Known: reading.Known,
	}
	if !reading.RefreshedAt.IsZero() {
		result.RefreshedAt = &reading.RefreshedAt
	}

	return openapi.RefreshReports200JSONResponse{
		Result: result,
		View:   s.presenter.View(),
	}, nil
}

// failure logs err and renders it with the view the failure left behind.
func (s *openAPIServer) failure(ctx context.Context, err error) (model openapi.ErrorModel, httpStatus int) {
	slogctx.Warn(ctx, "Request failed", "error", err)

	model, httpStatus = s.toErrorModel(err)
	view := s.presenter.View()
	model.View = &view

	return model, httpStatus
}

func (s *openAPIServer) toErrorModel(err error) (model openapi.ErrorModel, httpStatus int) {
	var serviceErr *serviceerr.Error
	if !errors.As(err, &serviceErr) {
		serviceErr = serviceerr.ErrUnknown
	}

	model = openapi.ErrorModel{Error: string(serviceErr.Err)}
	if serviceErr.Description != "" {
		model.ErrorDescription = &serviceErr.Description
	}

	return model, serviceErr.HTTPStatus()
}
