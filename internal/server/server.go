// Package server exposes statement conversion over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/glog"

	"github.com/rockstardevs/wsqfx/internal/config"
	"github.com/rockstardevs/wsqfx/internal/dom"
	"github.com/rockstardevs/wsqfx/internal/extract"
	"github.com/rockstardevs/wsqfx/internal/sink"
)

// MaxPageSize bounds the accepted page snapshot.
const MaxPageSize = 16 << 20

const shutdownTimeout = 10 * time.Second

type Server struct {
	Config  *config.Config
	Settler dom.Settler
	// Archive, when set, receives a copy of every exported statement.
	Archive sink.Sink
	Now     func() time.Time
	// Started is reported by the status endpoint. Run sets it when it is zero.
	Started time.Time
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), logRequests())
	v1 := r.Group("/v1")
	v1.GET("/status", s.HandleStatus)
	v1.POST("/statements/:variant", s.HandleStatement)
	return r
}

// Run serves on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if s.Started.IsZero() {
		s.Started = time.Now()
	}
	srv := &http.Server{Addr: s.Config.Server.Addr, Handler: s.Handler()}
	errs := make(chan error, 1)
	go func() {
		glog.Infof("Listening on %s", srv.Addr)
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	glog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) HandleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"variants": []string{extract.ChequingName, extract.CreditCardName},
		"archive":  s.Archive != nil,
		"started":  s.Started,
	})
}

// HandleStatement converts the HTML page in the request body and answers with the
// OFX statement as an attachment.
func (s *Server) HandleStatement(c *gin.Context) {
	variant, err := extract.VariantByName(c.Param("variant"), s.Config, s.Settler)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	root, err := dom.ParseHTML(http.MaxBytesReader(c.Writer, c.Request.Body, MaxPageSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := &extract.Pipeline{Variant: variant, Now: s.Now}
	result, err := p.Run(c.Request.Context(), root)
	switch {
	case errors.Is(err, extract.ErrNoCandidates), errors.Is(err, extract.ErrNoTransactions):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	case err != nil:
		glog.Errorf("convert %s: %v", variant.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if s.Archive != nil {
		location, err := s.Archive.Export(c.Request.Context(), result.Filename, result.Document)
		if err != nil {
			glog.Errorf("archive %s: %v", result.Filename, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.Header("X-Statement-Location", location)
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("X-Transaction-Count", strconv.Itoa(result.Stats.Exported))
	c.Data(http.StatusOK, sink.ContentType, result.Document)
}

func logRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		glog.Infof("%s %s %d %v", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
