package service

import (
    "fmt"
    "math/rand"
    "sync"
    "time"
)

// OTPService 邮箱验证码：进程内有界映射 email→(code, 过期时刻)，
// 过期条目在读写时惰性清理。时钟可注入，测试里可拨快。
type OTPService struct {
    mu    sync.Mutex
    codes map[string]otpEntry
    ttl   time.Duration
    now   func() time.Time
}

type otpEntry struct {
    code      string
    expiresAt time.Time
}

func NewOTPService(ttl time.Duration) *OTPService {
    if ttl <= 0 {
        ttl = 10 * time.Minute
    }
    return &OTPService{codes: make(map[string]otpEntry), ttl: ttl, now: time.Now}
}

// WithClock 注入时钟，返回自身便于链式构造
func (s *OTPService) WithClock(now func() time.Time) *OTPService {
    s.now = now
    return s
}

// Generate 生成并登记一个 6 位验证码，覆盖同邮箱的旧码
func (s *OTPService) Generate(email string) string {
    code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))
    s.mu.Lock()
    defer s.mu.Unlock()
    s.prune()
    s.codes[email] = otpEntry{code: code, expiresAt: s.now().Add(s.ttl)}
    return code
}

// Validate 校验成功即销毁该码（单次使用），过期条目顺带清理
func (s *OTPService) Validate(email, code string) bool {
    s.mu.Lock()
    defer s.mu.Unlock()
    entry, ok := s.codes[email]
    if !ok {
        return false
    }
    if s.now().After(entry.expiresAt) {
        delete(s.codes, email)
        return false
    }
    if entry.code != code {
        return false
    }
    delete(s.codes, email)
    return true
}

// prune 调用方必须持锁
func (s *OTPService) prune() {
    now := s.now()
    for email, entry := range s.codes {
        if now.After(entry.expiresAt) {
            delete(s.codes, email)
        }
    }
}
