// internal/service/print_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pos-print-service/internal/compose"
	"pos-print-service/internal/dispatch"
	"pos-print-service/internal/escpos"
	"pos-print-service/internal/model"
	"pos-print-service/internal/transport"
)

// JobEvent describes one dispatch attempt for the live event feed.
type JobEvent struct {
	JobID     string    `json:"job_id"`
	JobName   string    `json:"job_name"`
	Method    string    `json:"method"`
	Target    string    `json:"target"`
	Status    string    `json:"status"` // "dispatched" or "failed"
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// JobEventPublisher receives job lifecycle events. Implemented by the
// websocket layer; publishing must never block the print path.
type JobEventPublisher interface {
	PublishJobEvent(event JobEvent)
}

// PrintService orchestrates one end-to-end print request: compose,
// optionally open the drawer, dispatch. No job is persisted or retried.
type PrintService struct {
	logger     *zap.Logger
	composer   *compose.Composer
	dispatcher *dispatch.Dispatcher
	spooler    *transport.SpoolerBackend
	serialUsb  *transport.SerialUsbBackend
	publisher  JobEventPublisher
}

// NewPrintService creates the print orchestration service.
func NewPrintService(
	logger *zap.Logger,
	composer *compose.Composer,
	dispatcher *dispatch.Dispatcher,
	spooler *transport.SpoolerBackend,
	serialUsb *transport.SerialUsbBackend,
) *PrintService {
	return &PrintService{
		logger:     logger.With(zap.String("service", "print")),
		composer:   composer,
		dispatcher: dispatcher,
		spooler:    spooler,
		serialUsb:  serialUsb,
	}
}

// SetEventPublisher wires the live event feed. Safe to leave unset.
func (s *PrintService) SetEventPublisher(publisher JobEventPublisher) {
	s.publisher = publisher
}

// ListPrinters merges spooler queues and detected raw devices into the
// normalized {name, systemName} list. Enumeration never fails the request.
func (s *PrintService) ListPrinters(ctx context.Context) []model.PrinterInfo {
	seen := make(map[string]bool)
	var printers []model.PrinterInfo

	add := func(infos []model.PrinterInfo) {
		for _, info := range infos {
			if seen[info.SystemName] {
				continue
			}
			seen[info.SystemName] = true
			printers = append(printers, info)
		}
	}

	spoolerPrinters, _ := s.spooler.ListTargets(ctx)
	add(spoolerPrinters)

	devices, _ := s.serialUsb.ListTargets(ctx)
	add(devices)

	if printers == nil {
		printers = []model.PrinterInfo{}
	}
	return printers
}

// PrintTicket handles POST /printer/print: a test page, or the drawer
// pulse plus the item/totals documents selected by printType.
func (s *PrintService) PrintTicket(ctx context.Context, req *model.PrintRequest) error {
	method, target, err := s.resolveTarget(req.Printer, req.PrintMethod, req.DirectPrintConfig)
	if err != nil {
		return err
	}

	if req.Test {
		return s.printTestPage(ctx, req, method, target)
	}

	if req.OpenDrawer {
		// The drawer fires as its own job so a jammed ticket cannot keep
		// the cash drawer shut, and vice versa.
		drawerJob := s.newJob("drawer", escpos.Concat("open-drawer",
			escpos.Initialize(),
			escpos.DrawerPulse(),
		))
		if err := s.dispatch(ctx, method, target, drawerJob); err != nil {
			s.logger.Warn("Drawer job failed, continuing with ticket",
				zap.String("target", target.Describe()),
				zap.Error(err),
			)
		}
	}

	printType := req.PrintType
	if printType == "" {
		printType = model.PrintTypeBoth
	}

	var parts []escpos.Sequence

	if printType.IncludesTickets() {
		for _, line := range compose.ExpandItems(req.Items) {
			parts = append(parts,
				s.composer.ItemTicket(line.Name),
				s.composer.Footer(),
				s.composer.Header(req.Headers),
			)
		}
	}

	if printType.IncludesTotals() {
		parts = append(parts,
			s.composer.TotalsTicket(req.Items, req.TotalAmount),
			s.composer.Footer(),
			s.composer.Header(req.Headers),
		)
	}

	job := s.newJob("ticket", escpos.Concat("ticket-job", parts...))
	return s.dispatch(ctx, method, target, job)
}

// PrintSession handles POST /printer/print-session: the end-of-session
// summary as one job.
func (s *PrintService) PrintSession(ctx context.Context, req *model.PrintSessionRequest) error {
	method, target, err := s.resolveTarget(req.Printer, req.PrintMethod, req.DirectPrintConfig)
	if err != nil {
		return err
	}

	job := s.newJob("session", escpos.Concat("session-job",
		escpos.Initialize(),
		escpos.SelectLatin1(),
		s.composer.SessionSummary(req.SessionSummaryData),
		s.composer.Header(req.Headers),
	))
	return s.dispatch(ctx, method, target, job)
}

func (s *PrintService) printTestPage(ctx context.Context, req *model.PrintRequest, method model.PrintMethod, target *model.TransportTarget) error {
	// Details are diagnostic only; a failed lookup prints a sparser page.
	var details *model.PrinterDetails
	if target.Type == model.TransportSpooler {
		details = s.spooler.PrinterDetails(ctx, req.Printer)
	} else {
		details = &model.PrinterDetails{Name: target.Describe()}
	}

	printType := req.PrintType
	if printType == "" {
		printType = model.PrintTypeBoth
	}

	job := s.newJob("test", escpos.Concat("test-job",
		s.composer.TestPage(req.Headers, printType, req.OpenDrawer, details),
		s.composer.Header(req.Headers),
	))
	return s.dispatch(ctx, method, target, job)
}

func (s *PrintService) resolveTarget(printer string, method model.PrintMethod, direct *model.DirectPrintConfig) (model.PrintMethod, *model.TransportTarget, error) {
	if method == "" {
		method = model.PrintMethodShared
	}

	if method == model.PrintMethodDirect {
		target, err := dispatch.ResolveTarget(direct)
		if err != nil {
			return method, nil, err
		}
		return method, target, nil
	}

	target := model.SpoolerTarget(printer)
	return method, &target, nil
}

func (s *PrintService) newJob(kind string, seq escpos.Sequence) *model.PrintJob {
	return &model.PrintJob{
		Name: "pos-" + kind + "-" + uuid.New().String()[:8],
		Data: seq.Bytes(),
	}
}

func (s *PrintService) dispatch(ctx context.Context, method model.PrintMethod, target *model.TransportTarget, job *model.PrintJob) error {
	err := s.dispatcher.Dispatch(ctx, method, target, job)
	s.publishEvent(job, method, target, err)
	return err
}

func (s *PrintService) publishEvent(job *model.PrintJob, method model.PrintMethod, target *model.TransportTarget, err error) {
	if s.publisher == nil {
		return
	}

	event := JobEvent{
		JobID:     uuid.New().String(),
		JobName:   job.Name,
		Method:    string(method),
		Status:    "dispatched",
		Timestamp: time.Now(),
	}
	if target != nil {
		event.Target = target.Describe()
	}
	if err != nil {
		event.Status = "failed"
		event.Error = err.Error()
	}

	s.publisher.PublishJobEvent(event)
}
