// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/checkers/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormPostgreSQL 基于 GORM 的归档存储实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建 GORM PostgreSQL 连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := db.AutoMigrate(&models.GormMatchRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveMatchRecord(record *models.MatchRecord) error {
	if record.RecordID == "" {
		record.RecordID = uuid.New().String()
	}

	row := models.GormMatchRecord{
		RecordID:        record.RecordID,
		RoomID:          record.RoomID,
		Winner:          record.Winner,
		Moves:           record.Moves,
		DurationSeconds: int(record.Duration.Seconds()),
	}
	return g.db.Create(&row).Error
}

func (g *GormPostgreSQL) MatchStats() (*models.MatchStats, error) {
	stats := &models.MatchStats{}

	if err := g.db.Model(&models.GormMatchRecord{}).Count(&stats.TotalGames).Error; err != nil {
		return nil, err
	}
	counts := []struct {
		winner string
		dest   *int64
	}{
		{"white", &stats.WhiteWins},
		{"black", &stats.BlackWins},
		{"draw", &stats.Draws},
	}
	for _, c := range counts {
		err := g.db.Model(&models.GormMatchRecord{}).Where("winner = ?", c.winner).Count(c.dest).Error
		if err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// LoadMatchRecord 按记录ID读取归档
func (g *GormPostgreSQL) LoadMatchRecord(recordID string) (*models.MatchRecord, error) {
	var row models.GormMatchRecord
	err := g.db.Where("record_id = ?", recordID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &models.MatchRecord{
		RecordID:  row.RecordID,
		RoomID:    row.RoomID,
		Winner:    row.Winner,
		Moves:     row.Moves,
		Duration:  time.Duration(row.DurationSeconds) * time.Second,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
