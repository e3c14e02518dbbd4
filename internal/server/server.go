package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rezonia/ifirma/internal/document"
	"github.com/rezonia/ifirma/internal/ifirma"
	"github.com/rezonia/ifirma/internal/model"
)

const (
	headerRequestID = "X-Request-ID"
	headerPageCount = "X-Page-Count"
	ctxRequestID    = "request_id"
)

// Config holds server configuration
type Config struct {
	Address        string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	RequestTimeout time.Duration
	Debug          bool
}

// Server is the HTTP gateway in front of the iFirma API
type Server struct {
	config   *Config
	router   *gin.Engine
	invoicer Invoicer
	logger   *slog.Logger
}

// NewServer creates a new API server
func NewServer(config *Config, invoicer Invoicer, logger *slog.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	cfg := *config
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestID())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   &cfg,
		router:   router,
		invoicer: invoicer,
		logger:   logger,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/invoices", s.handleCreateInvoice)
		v1.GET("/invoices/:id", s.handleInvoiceDetails)
		v1.GET("/invoices/:id/pdf", s.handleInvoicePDF)

		v1.POST("/proformas", s.handleCreateProforma)
		v1.GET("/proformas/:id", s.handleProformaDetails)
		v1.GET("/proformas/:id/pdf", s.handleProformaPDF)
		v1.POST("/proformas/:id/invoice", s.handleConvertProforma)

		v1.PUT("/billing-month", s.handleAdvanceBillingMonth)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID tags every request with an id, reusing the caller's when present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCreateInvoice(c *gin.Context) {
	s.create(c, s.invoicer.CreateInvoice)
}

func (s *Server) handleCreateProforma(c *gin.Context) {
	s.create(c, s.invoicer.CreateProforma)
}

func (s *Server) create(c *gin.Context, issue func(context.Context, *model.Invoice) (int64, error)) {
	var input model.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		s.respondError(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	inv, err := input.Build()
	if err != nil {
		s.respondAPIError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	id, err := issue(ctx, inv)
	if err != nil {
		s.respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id, Total: inv.Total().StringFixed(2)})
}

func (s *Server) handleConvertProforma(c *gin.Context) {
	proformaID, ok := s.documentID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	id, err := s.invoicer.CreateInvoiceFromProforma(ctx, proformaID)
	if err != nil {
		s.respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreatedResponse{ID: id, From: &proformaID})
}

func (s *Server) handleInvoiceDetails(c *gin.Context) {
	s.details(c, s.invoicer.GetInvoiceDetails)
}

func (s *Server) handleProformaDetails(c *gin.Context) {
	s.details(c, s.invoicer.GetProformaDetails)
}

func (s *Server) details(c *gin.Context, fetch func(context.Context, int64) (map[string]any, error)) {
	id, ok := s.documentID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	details, err := fetch(ctx, id)
	if err != nil {
		s.respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

func (s *Server) handleInvoicePDF(c *gin.Context) {
	s.pdf(c, "faktura", s.invoicer.GetInvoicePDF)
}

func (s *Server) handleProformaPDF(c *gin.Context) {
	s.pdf(c, "proforma", s.invoicer.GetProformaPDF)
}

func (s *Server) pdf(c *gin.Context, prefix string, fetch func(context.Context, int64) (*bytes.Reader, error)) {
	id, ok := s.documentID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	doc, err := fetch(ctx, id)
	if err != nil {
		s.respondAPIError(c, err)
		return
	}

	headers := map[string]string{
		"Content-Disposition": fmt.Sprintf(`inline; filename="%s-%d.pdf"`, prefix, id),
	}

	if c.Query("check") == "true" {
		info, err := document.Inspect(doc)
		if err != nil {
			s.respondError(c, http.StatusBadGateway, "vendor returned an invalid document", err)
			return
		}
		headers[headerPageCount] = strconv.Itoa(info.Pages)
	}

	c.DataFromReader(http.StatusOK, doc.Size(), "application/pdf", doc, headers)
}

func (s *Server) handleAdvanceBillingMonth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.RequestTimeout)
	defer cancel()

	if err := s.invoicer.AdvanceBillingMonth(ctx); err != nil {
		s.respondAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, StatusResponse{Status: "advanced"})
}

// Helper functions

func (s *Server) documentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		s.respondError(c, http.StatusBadRequest, "invalid document id", err)
		return 0, false
	}
	return id, true
}

// statusFor maps client errors onto gateway HTTP statuses
func statusFor(err error) int {
	var vErr *model.ValidationError
	switch {
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	case errors.Is(err, ifirma.ErrMissingUserKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, ifirma.ErrBadRequestParameters):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ifirma.ErrBadRequestStructure):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) respondAPIError(c *gin.Context, err error) {
	status := statusFor(err)
	resp := ErrorResponse{
		Error:     err.Error(),
		RequestID: c.GetString(ctxRequestID),
	}

	var apiErr *ifirma.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.Code
		resp.Kind = string(apiErr.Kind)
		resp.Code = &code
		if apiErr.Message != "" {
			resp.Error = apiErr.Message
		}
		if apiErr.Cause != nil {
			resp.Details = apiErr.Cause.Error()
		}
	}

	s.logger.Warn("ifirma call failed",
		"request_id", resp.RequestID,
		"path", c.FullPath(),
		"status", status,
		"error", err,
	)
	c.JSON(status, resp)
}

func (s *Server) respondError(c *gin.Context, status int, message string, err error) {
	resp := ErrorResponse{
		Error:     message,
		RequestID: c.GetString(ctxRequestID),
	}
	if err != nil {
		resp.Details = err.Error()
	}
	c.JSON(status, resp)
}
