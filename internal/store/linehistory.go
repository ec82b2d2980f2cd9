package store

import (
	"fmt"
	"time"

	"github.com/xo/dburl"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/domain/teams"
)

// LineRecord is one observed betting line for a matchup, persisted so
// line movement can be replayed later.
type LineRecord struct {
	ID            uint   `gorm:"primaryKey"`
	League        string `gorm:"size:8;index:idx_line_matchup"`
	AwayTeam      string `gorm:"size:8;index:idx_line_matchup"`
	HomeTeam      string `gorm:"size:8;index:idx_line_matchup"`
	Spread        float64
	SpreadOdds    int
	OverUnder     float64
	TotalOdds     int
	MoneylineHome *int
	MoneylineAway *int
	Sportsbook    string    `gorm:"size:32"`
	Source        string    `gorm:"size:32"`
	ObservedAt    time.Time `gorm:"index"`
	CreatedAt     time.Time
}

// LineHistory records every observed line in a relational store and
// answers opening-line and movement queries.
type LineHistory struct {
	db *gorm.DB
}

// OpenLineHistory connects to the database named by a URL (sqlite: or
// mysql: schemes) and migrates the line table.
func OpenLineHistory(rawURL string) (*LineHistory, error) {
	u, err := dburl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("line history: parse db url: %w", err)
	}

	var dialector gorm.Dialector
	switch u.Driver {
	case "sqlite3", "sqlite":
		dialector = sqlite.Open(u.DSN)
	case "mysql":
		dialector = mysql.Open(u.DSN)
	default:
		return nil, fmt.Errorf("line history: unsupported driver %q", u.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("line history: open: %w", err)
	}
	if err := db.AutoMigrate(&LineRecord{}); err != nil {
		return nil, fmt.Errorf("line history: migrate: %w", err)
	}
	return &LineHistory{db: db}, nil
}

// Record persists one observed movement.
func (h *LineHistory) Record(m odds.Movement) error {
	rec := toRecord(m)
	if err := h.db.Create(&rec).Error; err != nil {
		return fmt.Errorf("line history: record: %w", err)
	}
	return nil
}

// RecordBatch persists a whole cycle's movements in one insert.
func (h *LineHistory) RecordBatch(movements []odds.Movement) error {
	if len(movements) == 0 {
		return nil
	}
	records := make([]LineRecord, 0, len(movements))
	for _, m := range movements {
		records = append(records, toRecord(m))
	}
	if err := h.db.Create(&records).Error; err != nil {
		return fmt.Errorf("line history: record batch: %w", err)
	}
	return nil
}

// Opening returns the earliest observed line for a matchup.
func (h *LineHistory) Opening(league, awayTeam, homeTeam string) (odds.Movement, error) {
	var rec LineRecord
	err := h.matchup(league, awayTeam, homeTeam).
		Order("observed_at asc").
		First(&rec).Error
	if err != nil {
		return odds.Movement{}, fmt.Errorf("line history: opening: %w", err)
	}
	return fromRecord(rec), nil
}

// Movements returns every observed line for a matchup in observation order.
func (h *LineHistory) Movements(league, awayTeam, homeTeam string) ([]odds.Movement, error) {
	var records []LineRecord
	err := h.matchup(league, awayTeam, homeTeam).
		Order("observed_at asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("line history: movements: %w", err)
	}
	movements := make([]odds.Movement, 0, len(records))
	for _, rec := range records {
		movements = append(movements, fromRecord(rec))
	}
	return movements, nil
}

// Close releases the underlying database connection.
func (h *LineHistory) Close() error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (h *LineHistory) matchup(league, awayTeam, homeTeam string) *gorm.DB {
	return h.db.Where(
		"league = ? AND away_team = ? AND home_team = ?",
		league,
		teams.NormalizeAbbreviation(awayTeam),
		teams.NormalizeAbbreviation(homeTeam),
	)
}

func toRecord(m odds.Movement) LineRecord {
	return LineRecord{
		League:        m.League,
		AwayTeam:      teams.NormalizeAbbreviation(m.AwayTeam),
		HomeTeam:      teams.NormalizeAbbreviation(m.HomeTeam),
		Spread:        m.Spread,
		SpreadOdds:    m.SpreadOdds,
		OverUnder:     m.OverUnder,
		TotalOdds:     m.TotalOdds,
		MoneylineHome: m.MoneylineHome,
		MoneylineAway: m.MoneylineAway,
		Sportsbook:    m.Sportsbook,
		Source:        m.Source,
		ObservedAt:    m.Timestamp,
	}
}

func fromRecord(rec LineRecord) odds.Movement {
	return odds.Movement{
		League:        rec.League,
		AwayTeam:      rec.AwayTeam,
		HomeTeam:      rec.HomeTeam,
		Spread:        rec.Spread,
		SpreadOdds:    rec.SpreadOdds,
		OverUnder:     rec.OverUnder,
		TotalOdds:     rec.TotalOdds,
		MoneylineHome: rec.MoneylineHome,
		MoneylineAway: rec.MoneylineAway,
		Sportsbook:    rec.Sportsbook,
		Timestamp:     rec.ObservedAt,
		Source:        rec.Source,
	}
}
