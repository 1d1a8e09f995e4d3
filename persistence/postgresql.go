// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/fruitclash/models"
)

// PostgreSQL 纯 database/sql 的实现，通过 database.driver 配置选择
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

	// 测试连接
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

func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS round_records (
			id BIGSERIAL PRIMARY KEY,
			room_code TEXT NOT NULL,
			round INTEGER NOT NULL,
			winner_id TEXT NOT NULL,
			winner_name TEXT NOT NULL,
			win_seconds INTEGER NOT NULL DEFAULT 0,
			players JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_round_records_room_code ON round_records (room_code);
	`)
	return err
}

func (p *PostgreSQL) SaveRoundRecord(record *models.RoundRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	_, err = p.db.Exec(`
		INSERT INTO round_records (room_code, round, winner_id, winner_name, win_seconds, players)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, record.RoomCode, record.Round, record.WinnerID, record.WinnerName, record.WinSeconds, players)
	return err
}

func (p *PostgreSQL) RecentRounds(limit int) ([]models.RoundRecord, error) {
	rows, err := p.db.Query(`
		SELECT room_code, round, winner_id, winner_name, win_seconds, players, created_at
		FROM round_records
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.RoundRecord
	for rows.Next() {
		var record models.RoundRecord
		var players []byte
		if err := rows.Scan(&record.RoomCode, &record.Round, &record.WinnerID,
			&record.WinnerName, &record.WinSeconds, &players, &record.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal(players, &record.Players)
		records = append(records, record)
	}
	return records, rows.Err()
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
