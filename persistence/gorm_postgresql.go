// persistence/gorm_postgresql.go
package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wfunc/fruitclash/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	// 配置GORM日志
	gormLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormlogger.Config{
			SlowThreshold: time.Second,
			LogLevel:      gormlogger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.GormRoundRecord{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveRoundRecord(record *models.RoundRecord) error {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return err
	}

	row := models.GormRoundRecord{
		RoomCode:   record.RoomCode,
		Round:      record.Round,
		WinnerID:   record.WinnerID,
		WinnerName: record.WinnerName,
		WinSeconds: record.WinSeconds,
		Players:    string(players),
	}
	return g.db.Create(&row).Error
}

func (g *GormPostgreSQL) RecentRounds(limit int) ([]models.RoundRecord, error) {
	var rows []models.GormRoundRecord
	err := g.db.Order("created_at desc").Limit(limit).Find(&rows).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}

	records := make([]models.RoundRecord, 0, len(rows))
	for _, row := range rows {
		var players []string
		_ = json.Unmarshal([]byte(row.Players), &players)
		records = append(records, models.RoundRecord{
			RoomCode:   row.RoomCode,
			Round:      row.Round,
			WinnerID:   row.WinnerID,
			WinnerName: row.WinnerName,
			WinSeconds: row.WinSeconds,
			Players:    players,
			CreatedAt:  row.CreatedAt,
		})
	}
	return records, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
