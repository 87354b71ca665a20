package logic

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"uac/internal/config"
	"uac/internal/logger"
	"uac/internal/model"
	"uac/internal/types"
	"uac/internal/utils"
	"uac/internal/xerr"
)

// AttemptCounter 验证失败次数计数
type AttemptCounter interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	Reset(ctx context.Context, key string) error
}

// CaptchaLogic 滑块验证码逻辑
//
// 状态流转：ACTIVE -> USED（截止前坐标匹配）、ACTIVE -> EXPIRED（超过截止时间或失败次数用尽），
// USED 与 EXPIRED 为终态。
type CaptchaLogic struct {
	ctx      context.Context
	db       *gorm.DB
	cfg      *config.CaptchaConfig
	attempts AttemptCounter
	now      func() time.Time
}

// NewCaptchaLogic 创建验证码逻辑，attempts 为 nil 时不限制失败次数
func NewCaptchaLogic(ctx context.Context, db *gorm.DB, cfg *config.CaptchaConfig, attempts AttemptCounter) *CaptchaLogic {
	return &CaptchaLogic{
		ctx:      ctx,
		db:       db.WithContext(ctx),
		cfg:      cfg,
		attempts: attempts,
		now:      time.Now,
	}
}

// CreateCaptcha 生成验证码记录，目标坐标随机落在画布内
func (l *CaptchaLogic) CreateCaptcha() (*types.CaptchaInfo, error) {
	if _, err := l.ExpireOverdue(); err != nil {
		logger.Ctx(l.ctx).Warn("过期验证码清理失败", zap.Error(err))
	}

	now := l.now()
	c := &model.Captcha{
		BgURL:     utils.RandPick(l.cfg.Background),
		PuzzleURL: l.cfg.PuzzleURL,
		TargetX:   utils.RandInt(l.cfg.PieceSize, l.cfg.Width-l.cfg.PieceSize),
		TargetY:   utils.RandInt(0, l.cfg.Height-l.cfg.PieceSize),
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(l.cfg.TTL) * time.Second),
		Status:    model.CaptchaActive,
	}
	if err := l.db.Create(c).Error; err != nil {
		return nil, xerr.Internal("生成验证码失败", err)
	}
	return types.ToCaptchaInfo(c), nil
}

// GetCaptcha 查询验证码状态，已过截止时间的记录顺带转为 EXPIRED
func (l *CaptchaLogic) GetCaptcha(id string) (*types.CaptchaInfo, error) {
	c, err := l.findCaptcha(id)
	if err != nil {
		return nil, err
	}
	if c.Status == model.CaptchaActive && c.Expired(l.now()) {
		if _, err := l.transition(id, model.CaptchaExpired, nil); err != nil {
			return nil, err
		}
		c.Status = model.CaptchaExpired
	}
	return types.ToCaptchaInfo(c), nil
}

// VerifyCaptcha 校验滑块位置
func (l *CaptchaLogic) VerifyCaptcha(id string, req *types.VerifyCaptchaRequest) (*types.VerifyCaptchaResult, error) {
	if req.X == nil || req.Y == nil {
		return nil, xerr.Validation("坐标不能为空")
	}

	c, err := l.findCaptcha(id)
	if err != nil {
		return nil, err
	}
	if c.IsTerminal() {
		return nil, xerr.Validation("验证码已使用或已过期")
	}

	now := l.now()
	if c.Expired(now) {
		if _, err := l.transition(id, model.CaptchaExpired, nil); err != nil {
			return nil, err
		}
		return nil, xerr.Validation("验证码已过期")
	}

	if abs(*req.X-c.TargetX) <= l.cfg.Tolerance && abs(*req.Y-c.TargetY) <= l.cfg.Tolerance {
		ok, err := l.transition(id, model.CaptchaUsed, &now)
		if err != nil {
			return nil, err
		}
		// 并发校验时只有一个请求能完成状态转换
		if !ok {
			return nil, xerr.Validation("验证码已使用或已过期")
		}
		l.resetAttempts(id)
		return &types.VerifyCaptchaResult{Verified: true, Status: model.CaptchaUsed, VerifiedAt: types.ToDateTime(&now)}, nil
	}

	status := model.CaptchaActive
	if l.attemptsExhausted(id, c.ExpiresAt.Sub(now)) {
		if _, err := l.transition(id, model.CaptchaExpired, nil); err != nil {
			return nil, err
		}
		status = model.CaptchaExpired
	}
	return &types.VerifyCaptchaResult{Verified: false, Status: status}, nil
}

// ExpireOverdue 将所有已过截止时间的 ACTIVE 记录批量转为 EXPIRED
func (l *CaptchaLogic) ExpireOverdue() (int64, error) {
	result := l.db.Model(&model.Captcha{}).
		Where("status = ? AND expires_at <= ?", model.CaptchaActive, l.now()).
		Update("status", model.CaptchaExpired)
	if result.Error != nil {
		return 0, xerr.Internal("更新验证码状态失败", result.Error)
	}
	return result.RowsAffected, nil
}

// transition 条件更新，仅 ACTIVE 记录可以转换，返回是否转换成功
func (l *CaptchaLogic) transition(id, status string, verifiedAt *time.Time) (bool, error) {
	updates := map[string]any{"status": status}
	if verifiedAt != nil {
		updates["verified_at"] = *verifiedAt
	}
	result := l.db.Model(&model.Captcha{}).
		Where("captcha_id = ? AND status = ?", id, model.CaptchaActive).
		Updates(updates)
	if result.Error != nil {
		return false, xerr.Internal("更新验证码状态失败", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// attemptsExhausted 记录一次失败，返回失败次数是否已用尽
func (l *CaptchaLogic) attemptsExhausted(id string, ttl time.Duration) bool {
	if l.attempts == nil {
		return false
	}
	n, err := l.attempts.Incr(l.ctx, id, ttl)
	if err != nil {
		logger.Ctx(l.ctx).Warn("验证码失败次数记录失败", zap.String("captcha_id", id), zap.Error(err))
		return false
	}
	return n >= int64(l.cfg.MaxAttempts)
}

func (l *CaptchaLogic) resetAttempts(id string) {
	if l.attempts == nil {
		return
	}
	if err := l.attempts.Reset(l.ctx, id); err != nil {
		logger.Ctx(l.ctx).Warn("验证码失败次数清理失败", zap.String("captcha_id", id), zap.Error(err))
	}
}

func (l *CaptchaLogic) findCaptcha(id string) (*model.Captcha, error) {
	var c model.Captcha
	if err := l.db.Where("captcha_id = ?", id).Take(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, xerr.NotFound("验证码不存在")
		}
		return nil, xerr.Internal("查询验证码失败", err)
	}
	return &c, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
