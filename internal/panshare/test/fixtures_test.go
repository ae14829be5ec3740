package panshare_test

import (
	"strings"
	"testing"

	"gorm.io/gorm"

	sharePkg "github.com/sword-demon/pan-share/internal/panshare"
	"github.com/sword-demon/pan-share/internal/testutils"
)

// setupPanShareService 创建 PanShareService 实例用于测试
func setupPanShareService(t *testing.T) (*sharePkg.PanShareService, *sharePkg.PanShareRepository, *gorm.DB) {
	db := testutils.SetupTestDB(t)

	repo := sharePkg.NewPanShareRepository(db)
	service := sharePkg.NewPanShareService(repo)
	return service, repo, db
}

// stringPtr 返回字符串指针
func stringPtr(s string) *string {
	return &s
}

// contains 检查字符串是否包含子字符串
func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
