package config

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Firmanhg/PAW-TUGAS3/models"
)

var DB *gorm.DB

// InitDB 初始化数据库连接
func InitDB(config Config) error {
	dialector, err := openDialector(config)
	if err != nil {
		return err
	}

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return err
	}

	// 设置连接池参数
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := DB.AutoMigrate(&models.Review{}); err != nil {
		return fmt.Errorf("数据库迁移失败: %v", err)
	}

	return nil
}

// openDialector 根据配置选择数据库驱动，默认使用sqlite本地文件
func openDialector(config Config) (gorm.Dialector, error) {
	switch config.DBDriver {
	case "", "sqlite":
		return sqlite.Open(config.DBDSN), nil
	case "mysql":
		return mysql.Open(config.DBDSN), nil
	case "postgres":
		return postgres.Open(config.DBDSN), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", config.DBDriver)
	}
}
