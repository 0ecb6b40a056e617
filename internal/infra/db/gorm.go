package db

import (
	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect はDBに接続して *gorm.DB を返す。
// 重複キーはgorm.ErrDuplicatedKeyに変換させる。
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), Options())
}

// テストのsqliteでも同じ設定を使う
func Options() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		// OrderとUserは外部キーで縛らない
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Silent),
	}
}

// Migrate はテーブルを作成・更新する。
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Banner{},
		&model.Order{},
		&model.ProcessedEvent{},
	)
}

// Close は下のsql.DBを閉じる。
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
