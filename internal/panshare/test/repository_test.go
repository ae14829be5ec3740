package panshare_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/sword-demon/pan-share/internal/model/panshare"
	sharePkg "github.com/sword-demon/pan-share/internal/panshare"
	"github.com/sword-demon/pan-share/internal/testutils"
)

// TestCreateAndFind_Integration 集成测试：写入后按 ID 能读回相同内容
func TestCreateAndFind_Integration(t *testing.T) {
	_, repo, db := setupPanShareService(t)

	code := "abcd"
	expiredAt := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	share := &model.PanShare{
		ID:          uuid.NewString(),
		Title:       "年度资源合集",
		Description: stringPtr("精选资源"),
		DiskType:    string(model.DiskTypeQuark),
		ShareURL:    "https://pan.quark.cn/s/xyz",
		ShareCode:   &code,
		ExpiredAt:   &expiredAt,
		Status:      string(model.StatusPublished),
	}
	if err := repo.Create(share); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.FindByID(share.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Title != share.Title {
		t.Errorf("Expected title %q, got %q", share.Title, got.Title)
	}
	if got.Description == nil || *got.Description != "精选资源" {
		t.Errorf("Expected description to round-trip, got %v", got.Description)
	}
	if got.DiskType != string(model.DiskTypeQuark) {
		t.Errorf("Expected disk_type quark, got %q", got.DiskType)
	}
	if got.ShareCode == nil || *got.ShareCode != code {
		t.Errorf("Expected share_code %q, got %v", code, got.ShareCode)
	}
	if got.DeletedAt != nil {
		t.Errorf("Expected deleted_at nil on fresh row, got %v", got.DeletedAt)
	}

	// 验证数据库也能直接查到
	var row model.PanShare
	if err := db.Where("id = ?", share.ID).First(&row).Error; err != nil {
		t.Fatalf("Row not found in database: %v", err)
	}
}

// TestSoftDelete_Integration 集成测试：软删除后常规查询不可见，includeDeleted 可见
func TestSoftDelete_Integration(t *testing.T) {
	_, repo, db := setupPanShareService(t)

	share := testutils.CreateTestShare(db)

	deleted, err := repo.SoftDelete(share.ID)
	if err != nil {
		t.Fatalf("SoftDelete failed: %v", err)
	}
	if deleted.Status != string(model.StatusArchived) {
		t.Errorf("Expected status archived after delete, got %q", deleted.Status)
	}
	if deleted.DeletedAt == nil {
		t.Fatalf("Expected deleted_at to be set")
	}

	// 常规单条查询查不到
	if _, err := repo.FindByID(share.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound after soft delete, got %v", err)
	}

	// 包含已删除的查询能查到
	got, err := repo.FindByIDIncludeDeleted(share.ID)
	if err != nil {
		t.Fatalf("FindByIDIncludeDeleted failed: %v", err)
	}
	if got.ID != share.ID {
		t.Errorf("Expected id %q, got %q", share.ID, got.ID)
	}

	// 列表查询默认不包含，includeDeleted 时包含
	shares, err := repo.List(sharePkg.ListFilter{IDs: []string{share.ID}})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(shares) != 0 {
		t.Errorf("Expected deleted share excluded from list, got %d rows", len(shares))
	}

	shares, err = repo.List(sharePkg.ListFilter{IDs: []string{share.ID}, IncludeDeleted: true})
	if err != nil {
		t.Fatalf("List with IncludeDeleted failed: %v", err)
	}
	if len(shares) != 1 {
		t.Errorf("Expected deleted share in includeDeleted list, got %d rows", len(shares))
	}

	// 删除不存在的 ID
	if _, err := repo.SoftDelete("no-such-id"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound for missing id, got %v", err)
	}
}

// TestListOrderingAndPagination_Integration 集成测试：创建时间倒序 + 分页窗口
func TestListOrderingAndPagination_Integration(t *testing.T) {
	_, repo, db := setupPanShareService(t)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		testutils.CreateTestShare(db,
			testutils.WithTitle(fmt.Sprintf("资源 %d", i+1)),
			testutils.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)),
		)
	}

	tests := []struct {
		name        string
		page        int
		limit       int
		expectCount int
		expectFirst string
	}{
		{name: "first page", page: 1, limit: 3, expectCount: 3, expectFirst: "资源 5"},
		{name: "second page", page: 2, limit: 3, expectCount: 2, expectFirst: "资源 2"},
		{name: "page beyond data", page: 3, limit: 3, expectCount: 0},
		{name: "zero page defaults to first", page: 0, limit: 3, expectCount: 3, expectFirst: "资源 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := repo.List(sharePkg.ListFilter{Page: tt.page, Limit: tt.limit})
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(shares) != tt.expectCount {
				t.Fatalf("Expected %d shares, got %d", tt.expectCount, len(shares))
			}
			if tt.expectFirst != "" && shares[0].Title != tt.expectFirst {
				t.Errorf("Expected first title %q, got %q", tt.expectFirst, shares[0].Title)
			}
			// 页内也必须是倒序
			for i := 1; i < len(shares); i++ {
				if shares[i].CreatedAt.After(shares[i-1].CreatedAt) {
					t.Errorf("Expected created_at descending, got %v before %v",
						shares[i-1].CreatedAt, shares[i].CreatedAt)
				}
			}
		})
	}

	// count 与不分页的列表长度一致
	total, err := repo.Count(sharePkg.ListFilter{})
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	all, err := repo.List(sharePkg.ListFilter{Limit: int(total)})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if int64(len(all)) != total {
		t.Errorf("Expected count %d to equal list length %d", total, len(all))
	}
}

// TestListFilters_Integration 集成测试：过滤条件取 AND，搜索忽略大小写
func TestListFilters_Integration(t *testing.T) {
	_, repo, db := setupPanShareService(t)

	owner := testutils.CreateTestUser(db, "filter_owner")

	matched := testutils.CreateTestShare(db,
		testutils.WithTitle("FooBar 教程"),
		testutils.WithDiskType(model.DiskTypeAliyun),
		testutils.WithStatus(model.StatusPublished),
		testutils.WithUser(owner.ID),
	)
	// 标题不匹配但描述匹配搜索词
	descMatched := testutils.CreateTestShare(db,
		testutils.WithTitle("其他资源"),
		testutils.WithDescription("含 foobar 关键字"),
		testutils.WithDiskType(model.DiskTypeAliyun),
		testutils.WithStatus(model.StatusPublished),
	)
	// 网盘类型不同，应被 AND 条件排除
	baiduMatched := testutils.CreateTestShare(db,
		testutils.WithTitle("foobar 百度版"),
		testutils.WithDiskType(model.DiskTypeBaidu),
		testutils.WithStatus(model.StatusPublished),
	)
	// 状态不同，应被排除
	testutils.CreateTestShare(db,
		testutils.WithTitle("foobar 待审核"),
		testutils.WithDiskType(model.DiskTypeAliyun),
		testutils.WithStatus(model.StatusPending),
	)

	tests := []struct {
		name      string
		filter    sharePkg.ListFilter
		expectIDs []string
	}{
		{
			name: "disk type + status + search are conjunctive",
			filter: sharePkg.ListFilter{
				DiskType: string(model.DiskTypeAliyun),
				Status:   string(model.StatusPublished),
				Search:   "foo",
			},
			expectIDs: []string{matched.ID, descMatched.ID},
		},
		{
			name:      "search is case-insensitive",
			filter:    sharePkg.ListFilter{Search: "FOOBAR", Status: string(model.StatusPublished)},
			expectIDs: []string{matched.ID, descMatched.ID, baiduMatched.ID},
		},
		{
			name:      "filter by user",
			filter:    sharePkg.ListFilter{UserID: owner.ID},
			expectIDs: []string{matched.ID},
		},
		{
			name:      "no match",
			filter:    sharePkg.ListFilter{Search: "不存在的词"},
			expectIDs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := repo.List(tt.filter)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(shares) != len(tt.expectIDs) {
				t.Fatalf("Expected %d shares, got %d", len(tt.expectIDs), len(shares))
			}
			got := make(map[string]bool, len(shares))
			for _, s := range shares {
				got[s.ID] = true
			}
			for _, id := range tt.expectIDs {
				if !got[id] {
					t.Errorf("Expected share %s in result", id)
				}
			}

			// Count 必须和列表总量一致
			total, err := repo.Count(tt.filter)
			if err != nil {
				t.Fatalf("Count failed: %v", err)
			}
			if total != int64(len(tt.expectIDs)) {
				t.Errorf("Expected count %d, got %d", len(tt.expectIDs), total)
			}
		})
	}
}

// TestUpdateWhitelist_Integration 集成测试：更新只允许白名单字段，id 和 created_at 不可改
func TestUpdateWhitelist_Integration(t *testing.T) {
	_, repo, db := setupPanShareService(t)

	share := testutils.CreateTestShare(db, testutils.WithTitle("原标题"))
	originalCreatedAt := share.CreatedAt

	updated, err := repo.Update(share.ID, map[string]any{
		"title":      "新标题",
		"id":         "hacked-id",
		"created_at": time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "新标题" {
		t.Errorf("Expected title updated, got %q", updated.Title)
	}
	if updated.ID != share.ID {
		t.Errorf("Expected id unchanged, got %q", updated.ID)
	}
	if !updated.CreatedAt.Equal(originalCreatedAt) {
		t.Errorf("Expected created_at unchanged, got %v", updated.CreatedAt)
	}

	// 只有非法字段时视为无更新
	if _, err := repo.Update(share.ID, map[string]any{"id": "x"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound when all fields filtered, got %v", err)
	}

	// 不存在的 ID
	if _, err := repo.Update("no-such-id", map[string]any{"title": "x"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound for missing id, got %v", err)
	}
}

// TestApproveReject_Integration 集成测试：审核状态流转
func TestApproveReject_Integration(t *testing.T) {
	_, repo, db := setupPanShareService(t)

	pending := testutils.CreateTestShare(db, testutils.WithStatus(model.StatusPending))

	approved, err := repo.Approve(pending.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != string(model.StatusPublished) {
		t.Errorf("Expected status published, got %q", approved.Status)
	}

	rejected, err := repo.Reject(pending.ID)
	if err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if rejected.Status != string(model.StatusRejected) {
		t.Errorf("Expected status rejected, got %q", rejected.Status)
	}
}
