package panshare_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sword-demon/pan-share/config"
	"github.com/sword-demon/pan-share/internal/middleware"
	"github.com/sword-demon/pan-share/internal/model/panshare"
	sharePkg "github.com/sword-demon/pan-share/internal/panshare"
	"github.com/sword-demon/pan-share/internal/testutils"
)

const testJWTSecret = "test-secret-key"

// setupTestConfig 测试环境的最小配置，限流不依赖 redis
func setupTestConfig() {
	config.Conf = &config.AppConfig{
		JWT:       config.JWTConfig{Secret: testJWTSecret, ExpireTime: 24},
		RateLimit: config.RateLimitConfig{SecretPerMinute: 1000},
	}
}

// signTestToken 签发测试用 JWT
func signTestToken(t *testing.T, userID, role string, expiresAt time.Time) string {
	t.Helper()

	claims := middleware.Claims{
		UserID:   userID,
		Username: "tester",
		Email:    "tester@example.com",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign test token: %v", err)
	}
	return token
}

// TestSecret_Service 服务层：敏感字段只对已发布的分享可取
func TestSecret_Service(t *testing.T) {
	service, _, db := setupPanShareService(t)

	published := testutils.CreateTestShare(db,
		testutils.WithStatus(panshare.StatusPublished),
		testutils.WithShareCode("8848"),
	)
	pending := testutils.CreateTestShare(db, testutils.WithStatus(panshare.StatusPending))
	rejected := testutils.CreateTestShare(db, testutils.WithStatus(panshare.StatusRejected))
	deleted := testutils.CreateTestShare(db, testutils.WithDeleted())

	secret, err := service.Secret(published.ID)
	if err != nil {
		t.Fatalf("Secret failed: %v", err)
	}
	if secret.ShareURL != published.ShareURL {
		t.Errorf("Expected share url %q, got %q", published.ShareURL, secret.ShareURL)
	}
	if secret.ShareCode == nil || *secret.ShareCode != "8848" {
		t.Errorf("Expected share code 8848, got %v", secret.ShareCode)
	}

	// 未发布、被拒、已删除、不存在：全部返回同一个错误
	for _, tc := range []struct {
		name string
		id   string
	}{
		{name: "pending share", id: pending.ID},
		{name: "rejected share", id: rejected.ID},
		{name: "deleted share", id: deleted.ID},
		{name: "missing share", id: "no-such-id"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Secret(tc.id)
			if !errors.Is(err, sharePkg.ErrNotFound) {
				t.Errorf("Expected ErrNotFound, got %v", err)
			}
		})
	}
}

// TestSecretEndpoint_HTTP 接口层：未认证 401，已认证按状态返回 404 或数据
func TestSecretEndpoint_HTTP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestConfig()

	_, _, db := setupPanShareService(t)

	user := testutils.CreateTestUser(db, "secret_caller")
	published := testutils.CreateTestShare(db,
		testutils.WithStatus(panshare.StatusPublished),
		testutils.WithShareCode("1024"),
	)
	pending := testutils.CreateTestShare(db, testutils.WithStatus(panshare.StatusPending))

	r := gin.New()
	api := r.Group("/api/v1")
	sharePkg.RegisterRoutes(api, db, nil)

	validToken := signTestToken(t, user.ID, "user", time.Now().Add(time.Hour))

	tests := []struct {
		name         string
		shareID      string
		token        string
		expectStatus int
		expectSecret bool
	}{
		{
			name:         "unauthenticated request rejected",
			shareID:      published.ID,
			token:        "",
			expectStatus: http.StatusUnauthorized,
		},
		{
			name:         "authenticated request gets secret for published share",
			shareID:      published.ID,
			token:        validToken,
			expectStatus: http.StatusOK,
			expectSecret: true,
		},
		{
			name:         "pending share returns not found",
			shareID:      pending.ID,
			token:        validToken,
			expectStatus: http.StatusNotFound,
		},
		{
			name:         "missing share returns not found",
			shareID:      "no-such-id",
			token:        validToken,
			expectStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/pan-shares/"+tt.shareID+"/secret", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.expectStatus, w.Code, w.Body.String())
			}

			if tt.expectSecret {
				var body struct {
					Data struct {
						ShareURL  string  `json:"shareUrl"`
						ShareCode *string `json:"shareCode"`
					} `json:"data"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("Failed to parse response: %v", err)
				}
				if body.Data.ShareURL != published.ShareURL {
					t.Errorf("Expected share url %q, got %q", published.ShareURL, body.Data.ShareURL)
				}
				if body.Data.ShareCode == nil || *body.Data.ShareCode != "1024" {
					t.Errorf("Expected share code 1024, got %v", body.Data.ShareCode)
				}
			}
		})
	}

	// 不存在和未发布的响应体必须一致
	reqPending := httptest.NewRequest(http.MethodPost, "/api/v1/pan-shares/"+pending.ID+"/secret", nil)
	reqPending.Header.Set("Authorization", "Bearer "+validToken)
	wPending := httptest.NewRecorder()
	r.ServeHTTP(wPending, reqPending)

	reqMissing := httptest.NewRequest(http.MethodPost, "/api/v1/pan-shares/no-such-id/secret", nil)
	reqMissing.Header.Set("Authorization", "Bearer "+validToken)
	wMissing := httptest.NewRecorder()
	r.ServeHTTP(wMissing, reqMissing)

	if wPending.Body.String() != wMissing.Body.String() {
		t.Errorf("Pending and missing responses must be identical: %q vs %q",
			wPending.Body.String(), wMissing.Body.String())
	}
}

// TestReviewWorkflow_Integration 集成测试：投稿 → 审核 → 公开可见 → 可取敏感字段
func TestReviewWorkflow_Integration(t *testing.T) {
	service, _, db := setupPanShareService(t)

	submitter := testutils.CreateTestUser(db, "workflow_user")

	share, err := service.Submit(sharePkg.SubmitRequest{
		Title:     "待审核的资源",
		DiskType:  string(panshare.DiskTypeAliyun),
		ShareURL:  "https://www.alipan.com/s/abc",
		ShareCode: "word",
	}, submitter.ID)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	// 审核前：公开目录不可见，敏感字段不可取
	result, err := service.ListPublic(sharePkg.ListPublicParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if result.Total != 0 {
		t.Errorf("Expected empty catalog before approval, got %d", result.Total)
	}
	if _, err := service.Secret(share.ID); !errors.Is(err, sharePkg.ErrNotFound) {
		t.Errorf("Expected ErrNotFound before approval, got %v", err)
	}

	// 审核通过
	approved, err := service.Approve(share.ID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if approved.Status != string(panshare.StatusPublished) {
		t.Errorf("Expected status published, got %q", approved.Status)
	}

	// 审核后：公开目录可见，敏感字段可取
	result, err = service.ListPublic(sharePkg.ListPublicParams{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("ListPublic failed: %v", err)
	}
	if result.Total != 1 || result.Shares[0].ID != share.ID {
		t.Errorf("Expected approved share in catalog, got total=%d", result.Total)
	}
	secret, err := service.Secret(share.ID)
	if err != nil {
		t.Fatalf("Secret failed after approval: %v", err)
	}
	if secret.ShareURL != "https://www.alipan.com/s/abc" {
		t.Errorf("Expected share url, got %q", secret.ShareURL)
	}

	// 拒绝后再次不可见
	if _, err := service.Reject(share.ID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}
	if _, err := service.Secret(share.ID); !errors.Is(err, sharePkg.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after rejection, got %v", err)
	}

	// 软删除后归档且从所有常规查询消失
	if err := service.Delete(share.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	mine, err := service.ListMine(submitter.ID, "", 1, 10)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if mine.Total != 0 {
		t.Errorf("Expected deleted share excluded from mine, got %d", mine.Total)
	}
	if err := service.Delete("no-such-id"); !errors.Is(err, sharePkg.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting a missing share, got %v", err)
	}
}
