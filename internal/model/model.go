package model

import (
	"gorm.io/gorm"
)

// All 返回所有需要迁移的模型，顺序即建表顺序
func All() []any {
	return []any{&Folder{}, &Tag{}, &Note{}, &NoteTag{}}
}

// AutoMigrate 迁移所有表结构
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// DropAll 删除所有表，用于重新初始化数据
func DropAll(db *gorm.DB) error {
	models := All()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(models[i]); err != nil {
			return err
		}
	}
	return nil
}
