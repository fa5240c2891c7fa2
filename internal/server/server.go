package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxdcmn/gpuhud/internal/hud"
	"github.com/maxdcmn/gpuhud/internal/utils"
)

// NewRouter exposes src over HTTP: a one-shot snapshot, plus SSE and
// websocket streams that push a snapshot every interval.
func NewRouter(src hud.CounterSource, interval time.Duration) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/counters", func(c *gin.Context) {
		c.JSON(http.StatusOK, src.StatCounters())
	})

	router.GET("/counters/stream", func(c *gin.Context) {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		utils.Debug("stream client connected", "remote", c.ClientIP())
		c.SSEvent("message", src.StatCounters())
		c.Stream(func(w io.Writer) bool {
			select {
			case <-c.Request.Context().Done():
				utils.Debug("stream client disconnected", "remote", c.ClientIP())
				return false
			case <-ticker.C:
				c.SSEvent("message", src.StatCounters())
				return true
			}
		})
	})

	router.GET("/counters/ws", handleWebSocket(src, interval))

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		utils.Logger().Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start))
	}
}

// Serve runs the exporter on addr until ctx is done.
func Serve(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// Open streams end with ctx instead of holding up Shutdown.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("counter exporter listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		utils.Error("counter exporter failed", "addr", addr, "error", err)
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
