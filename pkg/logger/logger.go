package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sword-demon/pan-share/config"
)

// Init 初始化日志系统
func Init(cfg config.LogConfig) {
	// 设置日志级别
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	// 设置日志格式
	switch cfg.Format {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
		})
	default:
		logrus.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	// 控制台输出
	writers := []io.Writer{os.Stdout}

	// 文件输出（带轮转）
	if cfg.Output == "file" && cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			logrus.WithError(err).Warn("无法创建日志目录")
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    100, // MB
			MaxAge:     30,  // days
			MaxBackups: 10,
			LocalTime:  true,
			Compress:   true,
		})
	}

	logrus.SetOutput(io.MultiWriter(writers...))
}

func GetLogger() *logrus.Logger {
	return logrus.StandardLogger()
}
