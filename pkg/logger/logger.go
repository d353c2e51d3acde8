package logger

import (
    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init 按配置构建全局 zap logger；release 模式走 JSON 生产编码
func Init(level, mode string) error {
    cfg := zap.NewDevelopmentConfig()
    if mode == "release" {
        cfg = zap.NewProductionConfig()
    }
    lvl, err := zapcore.ParseLevel(level)
    if err != nil {
        return err
    }
    cfg.Level = zap.NewAtomicLevelAt(lvl)
    l, err := cfg.Build(zap.AddCallerSkip(1))
    if err != nil {
        return err
    }
    log = l
    return nil
}

// L 返回底层 logger，供需要自带 caller 信息的调用方使用
func L() *zap.Logger { return log }

func Debug(msg string, fields ...zap.Field) { log.Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { log.Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { log.Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { log.Error(msg, fields...) }

func Sync() { _ = log.Sync() }
