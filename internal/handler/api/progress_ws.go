package api

import (
	"context"
	"net/http"
	"sync"

	models "TrendHunter/internal/domain/models"
	drepo "TrendHunter/internal/domain/repository"
	xlogger "TrendHunter/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// scanEvent is one websocket frame: progress frames while the scan walks
// the pool, then a single result frame, then an error frame if anything
// went wrong.
type scanEvent struct {
	Type     string               `json:"type"` // progress, result, error
	Progress *models.ScanProgress `json:"progress,omitempty"`
	Result   *models.ScanReport   `json:"result,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// ScanStream runs a scan over a websocket, streaming per-candidate progress
// and finishing with the full report. Closing the socket cancels the scan.
func (h *StrategyEchoHandler) ScanStream(c echo.Context) error {
	req := &models.ScanRequest{}
	if err := c.Bind(req); err != nil || req.PoolSize <= 0 {
		req.PoolSize = 30
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// the reader only exists to detect the peer going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	var mu sync.Mutex
	send := func(ev scanEvent) {
		mu.Lock()
		defer mu.Unlock()
		if err := conn.WriteJSON(ev); err != nil {
			cancel()
		}
	}

	progress := drepo.ProgressFunc(func(p models.ScanProgress) {
		send(scanEvent{Type: "progress", Progress: &p})
	})

	report, err := h.scanner.Scan(ctx, req.PoolSize, progress)
	if err != nil {
		h.logger.Error("scan stream failed", xlogger.Error(err))
		send(scanEvent{Type: "error", Error: err.Error()})
		return nil
	}
	send(scanEvent{Type: "result", Result: &report})
	return nil
}
