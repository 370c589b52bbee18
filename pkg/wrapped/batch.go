package wrapped

import (
	"context"
	"fmt"
	"log"
	"time"
)

// UserFailure 单个用户的失败
type UserFailure struct {
	UserID string
	Err    error
}

// BatchReport 一次批量生成的结果
type BatchReport struct {
	Date       string
	StartedAt  time.Time
	Expired    int64
	SweepError error
	Users      int
	Generated  int
	Skipped    int
	Failures   []UserFailure
}

// GenerateAll 先清理过期记录，再按顺序为所有活跃用户生成 wrapped。
// 单个用户失败只记录不中断；返回的 error 只表示活跃用户查询失败或 ctx 被取消。
func (s *Service) GenerateAll(ctx context.Context) (*BatchReport, error) {
	now := s.now()
	report := &BatchReport{
		Date:      DateFor(now, s.loc),
		StartedAt: now,
	}

	// 先清理过期记录
	deleted, err := s.DeleteExpired(ctx)
	if err != nil {
		log.Printf("批量生成前清理失败: %v\n", err)
		report.SweepError = err
	}
	report.Expired = deleted

	users, err := s.stats.GetActiveUsers(ctx, now.Add(-s.window))
	if err != nil {
		return report, fmt.Errorf("查询活跃用户失败: %w", err)
	}
	report.Users = len(users)

	log.Printf("开始为%d个活跃用户生成wrapped\n", len(users))

	// 顺序执行，避免触发图片接口限流
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		outcome, err := s.generateIsolated(ctx, userID)
		if err != nil {
			log.Printf("为用户 %s 生成wrapped失败: %v\n", userID, err)
			report.Failures = append(report.Failures, UserFailure{UserID: userID, Err: err})
			continue
		}

		if outcome == OutcomeGenerated {
			report.Generated++
		} else {
			report.Skipped++
		}
	}

	log.Printf("批量生成完成: 用户=%d, 生成=%d, 跳过=%d, 失败=%d\n",
		report.Users, report.Generated, report.Skipped, len(report.Failures))
	return report, nil
}

// generateIsolated 把 panic 转为该用户的错误
func (s *Service) generateIsolated(ctx context.Context, userID string) (outcome Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("生成过程异常: %v", r)
		}
	}()
	return s.GenerateForUser(ctx, userID)
}
