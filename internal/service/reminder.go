package service

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/iliyamo/room-reservation/internal/repository"
)

// ReminderService runs a daily sweep over unpaid invoices whose due
// date has passed and logs each one. Delivery beyond the log is out of
// scope here; operators tail the log or ship it.
type ReminderService struct {
	cron     *cron.Cron
	invoices *repository.InvoiceRepo
}

func NewReminderService(invoices *repository.InvoiceRepo) *ReminderService {
	return &ReminderService{cron: cron.New(), invoices: invoices}
}

// Start schedules the daily run and launches the cron scheduler.
func (s *ReminderService) Start() error {
	if _, err := s.cron.AddFunc("@daily", s.run); err != nil {
		return err
	}
	s.cron.Start()
	log.Println("invoice-reminder: scheduled daily overdue sweep")
	return nil
}

// Stop halts the scheduler. Running jobs finish.
func (s *ReminderService) Stop() {
	s.cron.Stop()
}

func (s *ReminderService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	now := time.Now().UTC()
	overdue, err := s.invoices.ListOverdue(ctx, now)
	if err != nil {
		log.Printf("invoice-reminder: listing overdue invoices failed: %v", err)
		return
	}
	if len(overdue) == 0 {
		log.Println("invoice-reminder: no overdue invoices")
		return
	}
	for _, inv := range overdue {
		log.Printf("invoice-reminder: invoice %d (booking %d, user %d) overdue since %s, %d cents unpaid",
			inv.ID, inv.BookingID, inv.UserID, inv.DueDate.Format(time.RFC3339), inv.AmountCents)
	}
}
