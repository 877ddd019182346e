// Package scheduler ejecuta tareas periódicas de la feria.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/internal/application/dto"
	"github.com/CarlosArtur24/Venda-de-Produtos-em-Feira-de-Empreendedorismo/pkg/logger"
)

// ReportPublisher difunde el resumen de ventas a los vendedores.
type ReportPublisher interface {
	PublishReportSnapshot() dto.ReportSnapshot
}

// Scheduler envía report.snapshot según una expresión cron.
type Scheduler struct {
	cron    *cron.Cron
	reports ReportPublisher
	spec    string
	log     *logger.Logger
}

// New crea el scheduler. spec usa el formato cron estándar de 5 campos
// o descriptores como "@every 30s".
func New(spec string, reports ReportPublisher, log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron:    cron.New(),
		reports: reports,
		spec:    spec,
		log:     log,
	}
}

// Start registra el job y arranca el cron. Falla si la expresión es inválida.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.publishReport); err != nil {
		return fmt.Errorf("programar report.snapshot (%q): %w", s.spec, err)
	}
	s.log.Info().Str("cron", s.spec).Msg("scheduler iniciado")
	s.cron.Start()
	return nil
}

// Stop detiene el cron y espera a que termine el job en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.log.Info().Msg("scheduler detenido")
}

func (s *Scheduler) publishReport() {
	snap := s.reports.PublishReportSnapshot()
	s.log.Debug().
		Int("current_items", snap.Current.TotalItems).
		Int("historical_items", snap.Historical.TotalItems).
		Int("window", snap.Window).
		Msg("report.snapshot enviado")
}
