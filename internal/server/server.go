// Package server exposes the trainers over HTTP for a browser front end:
// JSON for one-shot runs and server-sent events for live progress.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"perceptron-forge/internal/dataset"
	"perceptron-forge/internal/evaluate"
	"perceptron-forge/internal/model"
	"perceptron-forge/internal/trainer"
)

// TrainRequest is the body of the train endpoints.
type TrainRequest struct {
	Dataset      string     `json:"dataset" binding:"required"`
	Model        model.Kind `json:"model" binding:"required"`
	Eta          float64    `json:"eta" binding:"gt=0"`
	IterationCap int        `json:"iteration_cap" binding:"gte=0"`
	Seed         int64      `json:"seed"`
	Beta         float64    `json:"beta" binding:"gte=0"`
}

// ResultView is the JSON form of trainer.Result.
type ResultView struct {
	RunID          string        `json:"run_id"`
	Dataset        string        `json:"dataset"`
	Model          model.Kind    `json:"model"`
	Weights        model.Weights `json:"weights"`
	Steps          int           `json:"steps"`
	Error          float64       `json:"error"`
	ErrorKind      evaluate.Kind `json:"error_kind"`
	State          trainer.State `json:"state"`
	ElapsedSeconds float64       `json:"elapsed_seconds"`
	Summary        string        `json:"summary"`
}

// ProgressView is the JSON form of trainer.Progress.
type ProgressView struct {
	RunID   string        `json:"run_id"`
	Index   int           `json:"index"`
	Weights model.Weights `json:"weights"`
	Error   float64       `json:"error"`
	Final   bool          `json:"final"`
}

// DatasetView lists one registry entry.
type DatasetView struct {
	Name    string           `json:"name"`
	Dim     int              `json:"dim"`
	Samples []dataset.Sample `json:"samples"`
}

// Server serves training runs against a read-only registry.
type Server struct {
	reg      dataset.Registry
	log      *slog.Logger
	logEvery int
}

// New builds a Server. A nil logger means slog.Default().
func New(reg dataset.Registry, logger *slog.Logger, logEvery int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{reg: reg, log: logger, logEvery: logEvery}
}

// Router returns the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/datasets", s.listDatasets)
		v1.POST("/train", s.train)
		v1.POST("/train/stream", s.trainStream)
	}
	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func (s *Server) listDatasets(c *gin.Context) {
	names := s.reg.Names()
	out := make([]DatasetView, 0, len(names))
	for _, name := range names {
		set, err := s.reg.Lookup(name)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, DatasetView{Name: name, Dim: set.Dim(), Samples: set.Samples()})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) request(req TrainRequest) trainer.Request {
	return trainer.Request{
		Dataset: req.Dataset,
		Model:   req.Model,
		RunConfig: trainer.RunConfig{
			Eta:          req.Eta,
			IterationCap: req.IterationCap,
			Seed:         req.Seed,
			Beta:         req.Beta,
			LogEvery:     s.logEvery,
			Logger:       s.log,
		},
	}
}

func (s *Server) train(c *gin.Context) {
	var req TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := trainer.Train(c.Request.Context(), s.reg, s.request(req), nil)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, resultView(res))
}

// trainStream emits a "progress" event per unit of work and a final
// "result" event. A client that disconnects cancels the run.
func (s *Server) trainStream(c *gin.Context) {
	var req TrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	onProgress := func(p trainer.Progress) {
		c.SSEvent("progress", ProgressView{
			RunID:   p.RunID.String(),
			Index:   p.Index,
			Weights: p.Weights,
			Error:   p.Error,
			Final:   p.Final,
		})
		c.Writer.Flush()
	}
	res, err := trainer.Train(c.Request.Context(), s.reg, s.request(req), onProgress)
	if err != nil {
		if !c.Writer.Written() {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.SSEvent("error", gin.H{"error": err.Error()})
		return
	}
	c.SSEvent("result", resultView(res))
	c.Writer.Flush()
}

func resultView(r *trainer.Result) ResultView {
	return ResultView{
		RunID:          r.RunID.String(),
		Dataset:        r.Dataset,
		Model:          r.Model,
		Weights:        r.Weights,
		Steps:          r.Steps,
		Error:          r.Error,
		ErrorKind:      r.ErrorKind,
		State:          r.State,
		ElapsedSeconds: r.Elapsed.Seconds(),
		Summary:        r.Summary(),
	}
}

func statusFor(err error) int {
	if errors.Is(err, dataset.ErrUnknownDataset) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
