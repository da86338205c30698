package services

import (
	"vita-balance/internal/database"
	"vita-balance/internal/ledger"
)

type ServiceManager struct {
	Tracker      *TrackerService
	Report       *ReportService
	Notification *NotificationService
	repository   *database.Repository
	directory    *ledger.Directory
}

func NewServiceManager(directory *ledger.Directory, repo *database.Repository) *ServiceManager {
	tracker := NewTrackerService(directory, repo)

	return &ServiceManager{
		Tracker:      tracker,
		Report:       NewReportService(directory),
		Notification: nil,
		repository:   repo,
		directory:    directory,
	}
}

func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.directory, sm.Tracker)
}
