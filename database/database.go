package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bithumbbot/ds"
)

// Ticker is one market snapshot as shown on the panel.
type Ticker struct {
	gorm.Model
	Currency string `gorm:"index"`
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Average  float64
	Volume   float64
}

type Store struct {
	DB *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if err = db.AutoMigrate(&Ticker{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) SaveTicker(currency string, ohlc ds.OHLC, detail ds.MarketDetail) error {
	return s.DB.Create(&Ticker{
		Currency: currency,
		Open:     ohlc.Open,
		High:     ohlc.High,
		Low:      ohlc.Low,
		Close:    ohlc.Close,
		Average:  detail.Average,
		Volume:   detail.Volume,
	}).Error
}

// RecentTickers returns up to n snapshots, newest first.
func (s *Store) RecentTickers(currency string, n int) ([]Ticker, error) {
	var tickers []Ticker
	err := s.DB.Where("currency = ?", currency).Order("id DESC").Limit(n).Find(&tickers).Error
	return tickers, err
}

// Prune keeps the newest keep snapshots of currency.
func (s *Store) Prune(currency string, keep int) error {
	query := `
	DELETE FROM tickers
	WHERE currency = ? AND id NOT IN (
		SELECT id FROM tickers WHERE currency = ? ORDER BY id DESC LIMIT ?
	);`
	return s.DB.Exec(query, currency, currency, keep).Error
}

func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
