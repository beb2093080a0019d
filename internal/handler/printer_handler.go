// internal/handler/printer_handler.go
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-print-service/internal/config"
	"pos-print-service/internal/model"
	"pos-print-service/internal/service"
	"pos-print-service/internal/transport"
	"pos-print-service/internal/utils"
)

// PrinterHandler handles printer listing and print requests
type PrinterHandler struct {
	printService *service.PrintService
	config       *config.Config
	logger       *utils.ServiceLogger
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printService *service.PrintService, cfg *config.Config, logger *zap.Logger) *PrinterHandler {
	return &PrinterHandler{
		printService: printService,
		config:       cfg,
		logger:       utils.NewServiceLogger(logger, "printer-handler"),
	}
}

// RegisterRoutes registers printer routes
func (h *PrinterHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/list", h.ListPrinters)
	router.POST("/print", h.Print)
	router.POST("/print-session", h.PrintSession)
}

// ListPrinters returns every print destination the host can reach.
func (h *PrinterHandler) ListPrinters(c *gin.Context) {
	printers := h.printService.ListPrinters(c.Request.Context())
	utils.Data(c, printers)
}

// Print handles a ticket or test-page print request.
func (h *PrinterHandler) Print(c *gin.Context) {
	var req model.PrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid print request", err)
		return
	}

	h.applyTicketDefaults(&req)

	if err := h.printService.PrintTicket(c.Request.Context(), &req); err != nil {
		h.respondPrintError(c, "Print failed", err)
		return
	}

	utils.OK(c)
}

// PrintSession handles an end-of-session summary print request.
func (h *PrinterHandler) PrintSession(c *gin.Context) {
	var req model.PrintSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Invalid session print request", err)
		return
	}

	h.applySessionDefaults(&req)

	if err := h.printService.PrintSession(c.Request.Context(), &req); err != nil {
		h.respondPrintError(c, "Session print failed", err)
		return
	}

	utils.OK(c)
}

// applyTicketDefaults fills request fields the caller left out from the
// configured printing defaults.
func (h *PrinterHandler) applyTicketDefaults(req *model.PrintRequest) {
	printer := &h.config.Printer

	if req.Printer == "" {
		req.Printer = printer.DefaultPrinter
	}
	if req.Headers.FirstLine == "" && req.Headers.SecondLine == "" {
		req.Headers.FirstLine = printer.Header.FirstLine
		req.Headers.SecondLine = printer.Header.SecondLine
	}
	if req.PrintType == "" {
		req.PrintType = model.PrintType(printer.PrintType)
	}
	// The configured drawer flag is additive: it opens the drawer for
	// callers that never send the field.
	if printer.OpenDrawer {
		req.OpenDrawer = true
	}
	if req.PrintMethod == "" {
		req.PrintMethod = model.PrintMethod(printer.Method)
	}
	if req.PrintMethod == model.PrintMethodDirect && req.DirectPrintConfig == nil {
		req.DirectPrintConfig = h.configuredDirectPrint()
	}
}

func (h *PrinterHandler) applySessionDefaults(req *model.PrintSessionRequest) {
	printer := &h.config.Printer

	if req.Printer == "" {
		req.Printer = printer.DefaultPrinter
	}
	if req.Headers.FirstLine == "" && req.Headers.SecondLine == "" {
		req.Headers.FirstLine = printer.Header.FirstLine
		req.Headers.SecondLine = printer.Header.SecondLine
	}
	if req.PrintMethod == "" {
		req.PrintMethod = model.PrintMethod(printer.Method)
	}
	if req.PrintMethod == model.PrintMethodDirect && req.DirectPrintConfig == nil {
		req.DirectPrintConfig = h.configuredDirectPrint()
	}
}

func (h *PrinterHandler) configuredDirectPrint() *model.DirectPrintConfig {
	direct := h.config.Printer.Direct
	if direct.Type == "" {
		return nil
	}
	return &model.DirectPrintConfig{
		Type:       direct.Type,
		IP:         direct.IP,
		Port:       direct.Port,
		DevicePath: direct.DevicePath,
	}
}

// respondPrintError maps transport errors to HTTP status codes. Caller
// mistakes are 400s; everything that failed at the device is a 500.
func (h *PrinterHandler) respondPrintError(c *gin.Context, message string, err error) {
	var configErr *transport.ConfigurationError
	var unsupportedErr *transport.UnsupportedTransportError

	status := http.StatusInternalServerError
	if errors.As(err, &configErr) || errors.As(err, &unsupportedErr) {
		status = http.StatusBadRequest
	}

	h.logger.Error(message,
		zap.Int("status", status),
		zap.Error(err),
	)
	utils.Error(c, status, message, err)
}
