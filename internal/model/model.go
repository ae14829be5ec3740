package model

import (
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/internal/model/panshare"
	"github.com/sword-demon/pan-share/internal/model/user"
)

func InitTable(db *gorm.DB) error {
	// 自动迁移数据库表结构
	err := db.AutoMigrate(
		// 用户模型
		&user.User{},
		// 网盘分享
		&panshare.PanShare{},
	)
	if err != nil {
		return err
	}
	return nil
}
