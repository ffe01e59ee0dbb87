// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wfunc/checkers/models"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"
)

// PostgreSQL 基于 database/sql 的归档存储实现
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS match_records (
            id SERIAL PRIMARY KEY,
            record_id UUID UNIQUE NOT NULL,
            room_id TEXT NOT NULL,
            winner TEXT NOT NULL,
            moves INT NOT NULL DEFAULT 0,
            duration_seconds INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )
    `)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE INDEX IF NOT EXISTS idx_match_records_room_id ON match_records (room_id)
    `)
	return err
}

func (p *PostgreSQL) SaveMatchRecord(record *models.MatchRecord) error {
	if record.RecordID == "" {
		record.RecordID = uuid.New().String()
	}

	_, err := p.db.Exec(`
        INSERT INTO match_records (record_id, room_id, winner, moves, duration_seconds)
        VALUES ($1, $2, $3, $4, $5)
    `, record.RecordID, record.RoomID, record.Winner, record.Moves, int(record.Duration.Seconds()))
	return err
}

func (p *PostgreSQL) MatchStats() (*models.MatchStats, error) {
	stats := &models.MatchStats{}

	err := p.db.QueryRow(`
        SELECT
            COUNT(*),
            COUNT(*) FILTER (WHERE winner = 'white'),
            COUNT(*) FILTER (WHERE winner = 'black'),
            COUNT(*) FILTER (WHERE winner = 'draw')
        FROM match_records
    `).Scan(&stats.TotalGames, &stats.WhiteWins, &stats.BlackWins, &stats.Draws)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
