package testutils

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sword-demon/pan-share/internal/model/panshare"
	"github.com/sword-demon/pan-share/internal/model/user"
)

// CreateTestUser inserts a user row for tests, panics on failure
func CreateTestUser(db *gorm.DB, name string) *user.User {
	u := &user.User{
		ID:       uuid.NewString(),
		Username: name,
		Email:    name + "@example.com",
		Role:     "user",
	}
	if err := db.Create(u).Error; err != nil {
		panic("failed to create test user: " + err.Error())
	}
	return u
}

// ShareOption 测试分享构造选项
type ShareOption func(*panshare.PanShare)

func WithStatus(status panshare.Status) ShareOption {
	return func(s *panshare.PanShare) {
		s.Status = string(status)
	}
}

func WithUser(userID string) ShareOption {
	return func(s *panshare.PanShare) {
		s.UserID = &userID
	}
}

func WithDiskType(dt panshare.DiskType) ShareOption {
	return func(s *panshare.PanShare) {
		s.DiskType = string(dt)
	}
}

func WithTitle(title string) ShareOption {
	return func(s *panshare.PanShare) {
		s.Title = title
	}
}

func WithDescription(desc string) ShareOption {
	return func(s *panshare.PanShare) {
		s.Description = &desc
	}
}

func WithShareCode(code string) ShareOption {
	return func(s *panshare.PanShare) {
		s.ShareCode = &code
	}
}

func WithDeleted() ShareOption {
	return func(s *panshare.PanShare) {
		now := time.Now()
		s.DeletedAt = &now
		s.Status = string(panshare.StatusArchived)
	}
}

func WithCreatedAt(t time.Time) ShareOption {
	return func(s *panshare.PanShare) {
		s.CreatedAt = t
	}
}

// CreateTestShare inserts a share row with sensible defaults, panics on failure
func CreateTestShare(db *gorm.DB, opts ...ShareOption) *panshare.PanShare {
	s := &panshare.PanShare{
		ID:       uuid.NewString(),
		Title:    "测试资源",
		DiskType: string(panshare.DiskTypeBaidu),
		ShareURL: "https://pan.baidu.com/s/" + uuid.NewString()[:8],
		Status:   string(panshare.StatusPublished),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := db.Create(s).Error; err != nil {
		panic("failed to create test share: " + err.Error())
	}
	return s
}
