// Package storage 封面图对象存储
// 目前只有阿里云 OSS 一个实现，接口留出来是为了测试替身
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"

	"github.com/sword-demon/pan-share/config"
)

// Uploader 上传一个对象，返回可公开访问的 URL
type Uploader interface {
	Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
}

// AliyunOSS 阿里云 OSS 实现
type AliyunOSS struct {
	cfg config.StorageConfig
}

func NewAliyunOSS(cfg config.StorageConfig) *AliyunOSS {
	return &AliyunOSS{cfg: cfg}
}

// uploadPath 规整上传目录，去掉首尾斜杠
func (p *AliyunOSS) uploadPath() string {
	path := p.cfg.UploadPath
	if path == "" {
		path = "uploads"
	}
	return strings.Trim(path, "/")
}

// cleanRegion 去掉误带的 bucket 前缀
// 如 "mybucket.oss-cn-shanghai" -> "oss-cn-shanghai"
func (p *AliyunOSS) cleanRegion() string {
	region := p.cfg.Region
	if prefix := p.cfg.Bucket + "."; strings.HasPrefix(region, prefix) {
		region = region[len(prefix):]
	}
	return region
}

// endpoint OSS endpoint（不含 bucket）
// 格式: https://oss-cn-shanghai.aliyuncs.com
func (p *AliyunOSS) endpoint() string {
	if ep := p.cfg.Endpoint; ep != "" {
		// 同样容错误带的 bucket 前缀
		return strings.Replace(ep, p.cfg.Bucket+".", "", 1)
	}

	internal := ""
	if p.cfg.Internal {
		internal = "-internal"
	}
	return fmt.Sprintf("https://%s%s.aliyuncs.com", p.cleanRegion(), internal)
}

// PublicURL 对象的公开访问地址
func (p *AliyunOSS) PublicURL(key string) string {
	fullKey := p.uploadPath() + "/" + key

	if p.cfg.PublicDomain != "" {
		return strings.TrimRight(p.cfg.PublicDomain, "/") + "/" + fullKey
	}
	return fmt.Sprintf("https://%s.%s.aliyuncs.com/%s", p.cfg.Bucket, p.cleanRegion(), fullKey)
}

// Upload 上传对象并返回公开 URL
func (p *AliyunOSS) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	client, err := oss.New(p.endpoint(), p.cfg.AccessKeyID, p.cfg.AccessKeySecret)
	if err != nil {
		return "", fmt.Errorf("初始化 OSS 客户端失败: %w", err)
	}

	bucket, err := client.Bucket(p.cfg.Bucket)
	if err != nil {
		return "", fmt.Errorf("获取 bucket 失败: %w", err)
	}

	fullKey := p.uploadPath() + "/" + key
	if err := bucket.PutObject(fullKey, reader, oss.ContentType(contentType)); err != nil {
		return "", fmt.Errorf("上传对象失败: %w", err)
	}

	return p.PublicURL(key), nil
}
