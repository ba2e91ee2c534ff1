package CronJobs

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"MaidManager/Models"
)

// ChallengeSweeper periodically removes attendance challenges whose window
// has passed. Expiry is still enforced at verification time; this job only
// keeps the table from accumulating rows nobody will ever consume.
type ChallengeSweeper struct {
	cronScheduler *cron.Cron
	db            *gorm.DB
	jobID         cron.EntryID
}

func NewChallengeSweeper(db *gorm.DB) *ChallengeSweeper {
	return &ChallengeSweeper{
		cronScheduler: cron.New(cron.WithSeconds()),
		db:            db,
	}
}

// Start schedules the sweep every 10 minutes.
func (s *ChallengeSweeper) Start() error {
	var err error
	s.jobID, err = s.cronScheduler.AddFunc("0 */10 * * * *", s.sweep)
	if err != nil {
		return fmt.Errorf("error scheduling cron job: %w", err)
	}

	s.cronScheduler.Start()
	log.Println("Challenge sweeper started - expired codes purged every 10 minutes")
	return nil
}

// Stop terminates the sweeper.
func (s *ChallengeSweeper) Stop() {
	s.cronScheduler.Stop()
}

func (s *ChallengeSweeper) sweep() {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&Models.AttendanceChallenge{})
	if result.Error != nil {
		log.Printf("Challenge sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Purged %d expired attendance challenges", result.RowsAffected)
	}
}
