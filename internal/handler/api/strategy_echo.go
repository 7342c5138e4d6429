package api

import (
	"errors"

	models "TrendHunter/internal/domain/models"
	"TrendHunter/internal/usecase"
	xhttp "TrendHunter/pkg/http"
	xlogger "TrendHunter/pkg/logger"

	"github.com/labstack/echo/v4"
)

// StrategyEchoHandler exposes the regime gate, the breakout scan and the
// position diagnostic over HTTP.
type StrategyEchoHandler struct {
	logger   *xlogger.Logger
	regime   *usecase.RegimeGate
	scanner  *usecase.BreakoutScanner
	diagnose *usecase.PositionDiagnostic
}

func NewStrategyEchoHandler(logger *xlogger.Logger, regime *usecase.RegimeGate, scanner *usecase.BreakoutScanner, diagnose *usecase.PositionDiagnostic) *StrategyEchoHandler {
	return &StrategyEchoHandler{logger: logger, regime: regime, scanner: scanner, diagnose: diagnose}
}

func (h *StrategyEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/regime", h.Regime)
	g.POST("/scan", h.Scan)
	g.POST("/diagnose", h.Diagnose)
	e.GET("/ws/scan", h.ScanStream)
}

func (h *StrategyEchoHandler) Regime(c echo.Context) error {
	state := h.regime.Evaluate(c.Request().Context())
	return xhttp.SuccessResponse(c, state)
}

func (h *StrategyEchoHandler) Scan(c echo.Context) error {
	req := &models.ScanRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	report, err := h.scanner.Scan(c.Request().Context(), req.PoolSize, nil)
	if err != nil {
		h.logger.Error("scan usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapUsecaseError(err))
	}
	return xhttp.SuccessResponse(c, report)
}

func (h *StrategyEchoHandler) Diagnose(c echo.Context) error {
	req := &models.DiagnoseRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	diag, err := h.diagnose.Diagnose(c.Request().Context(), req.Symbol, req.Cost)
	if err != nil {
		h.logger.Error("diagnose usecase error",
			xlogger.String("symbol", req.Symbol), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, mapUsecaseError(err))
	}
	return xhttp.SuccessResponse(c, diag)
}

// mapUsecaseError translates engine errors into transport errors. Anything
// unrecognized falls through as an internal error.
func mapUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSymbolNotFound):
		return xhttp.NotFoundError("symbol not found, unsupported or halted").WithError(err)
	case errors.Is(err, usecase.ErrUpstreamUnavailable):
		return xhttp.ServiceUnavailableError("market data sources unavailable").WithError(err)
	case errors.Is(err, usecase.ErrDataUnavailable):
		return xhttp.ServiceUnavailableError("insufficient market data").WithError(err)
	default:
		return err
	}
}
