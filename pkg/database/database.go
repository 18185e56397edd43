package database

import (
	"certquiz_backend/internal/config"
	"certquiz_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Certification{},
		&model.Topic{},
		&model.Question{},
		&model.QuizSession{},
		&model.UserAnswer{},
		&model.UserProgress{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 目录为空时从 seed 文件导入认证/主题/题目
	var certCount int64
	db.Model(&model.Certification{}).Count(&certCount)
	if certCount == 0 && cfg.Seed.ContentFile != "" {
		if err := SeedContent(db, cfg.Seed.ContentFile); err != nil {
			log.Printf("Content seeding failed: %v", err)
		}
	}

	return db, nil
}
