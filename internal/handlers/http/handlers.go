package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tta-cards/internal/usecases"
)

// Options controla a montagem do engine
type Options struct {
	Mode           string
	AllowedOrigins []string
	// servido em /images quando setado
	ImagesDir string
}

type Handlers struct {
	useCases *usecases.UseCases
	opts     Options
	logger   *slog.Logger
}

func New(useCases *usecases.UseCases, opts Options, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{useCases: useCases, opts: opts, logger: logger}
}

// Router monta o engine gin com todas as rotas
func (h *Handlers) Router() *gin.Engine {
	if h.opts.Mode != "" {
		gin.SetMode(h.opts.Mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(Logging(h.logger))

	if len(h.opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  h.opts.AllowedOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"Content-Length", headerRequestID},
			MaxAge:        12 * time.Hour,
		}))
	}

	if h.opts.ImagesDir != "" {
		r.Static("/images", h.opts.ImagesDir)
	}

	h.registerHealthEndpoints(r)
	h.registerCardEndpoints(r)
	h.registerPackEndpoints(r)
	h.registerCollectionEndpoints(r)

	return r
}

// Listen serve em addr até ctx ser cancelado, depois desliga com calma
func (h *Handlers) Listen(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("listening on", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
