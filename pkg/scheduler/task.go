package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/robfig/cron/v3"

	"DailyWrapped/pkg/monitor"
	"DailyWrapped/pkg/wrapped"
)

// Jobs 调度执行的任务
type Jobs interface {
	GenerateAll(ctx context.Context) (*wrapped.BatchReport, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

// Options 调度参数
type Options struct {
	Location     *time.Location
	GenerateSpec string
	CleanupSpec  string
	// JobTimeout 单次任务的超时，0 表示不限制
	JobTimeout time.Duration
}

// Scheduler 任务调度器
type Scheduler struct {
	cron    *cron.Cron
	jobs    Jobs
	monitor *monitor.Monitor
	opts    Options
}

// NewScheduler 创建任务调度器，同一任务上一轮未结束时跳过本轮
func NewScheduler(jobs Jobs, mon *monitor.Monitor, opts Options) *Scheduler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	logger := cron.PrintfLogger(log.New(os.Stdout, "cron: ", log.LstdFlags))

	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(opts.Location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		jobs:    jobs,
		monitor: mon,
		opts:    opts,
	}
}

// Start 注册任务并启动调度器
func (s *Scheduler) Start() error {
	// 每日生成
	if _, err := s.cron.AddFunc(s.opts.GenerateSpec, func() { s.RunGenerate(context.Background()) }); err != nil {
		return fmt.Errorf("注册生成任务失败: %w", err)
	}

	// 定期清理过期记录
	if s.opts.CleanupSpec != "" {
		if _, err := s.cron.AddFunc(s.opts.CleanupSpec, func() { s.RunCleanup(context.Background()) }); err != nil {
			return fmt.Errorf("注册清理任务失败: %w", err)
		}
	}

	s.cron.Start()
	log.Printf("调度器已启动: 生成=%q, 清理=%q, 时区=%s\n", s.opts.GenerateSpec, s.opts.CleanupSpec, s.opts.Location)
	return nil
}

// Stop 停止调度器并等待正在执行的任务
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// Entries 已注册的任务
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// RunGenerate 执行一次批量生成
func (s *Scheduler) RunGenerate(ctx context.Context) *wrapped.BatchReport {
	ctx, cancel := s.jobContext(ctx)
	defer cancel()

	log.Println("开始每日wrapped生成...")
	report, err := s.jobs.GenerateAll(ctx)
	if err != nil {
		log.Printf("每日wrapped生成失败: %v\n", err)
		s.update(monitor.ComponentBatch, monitor.StatusUnhealthy, err.Error())
		return report
	}

	if report.SweepError != nil {
		s.update(monitor.ComponentSweep, monitor.StatusDegraded, report.SweepError.Error())
	} else {
		s.update(monitor.ComponentSweep, monitor.StatusHealthy, "")
	}

	if len(report.Failures) > 0 {
		s.update(monitor.ComponentBatch, monitor.StatusDegraded,
			fmt.Sprintf("%d/%d个用户生成失败", len(report.Failures), report.Users))
	} else {
		s.update(monitor.ComponentBatch, monitor.StatusHealthy, "")
	}
	return report
}

// RunCleanup 执行一次过期清理
func (s *Scheduler) RunCleanup(ctx context.Context) (int64, error) {
	ctx, cancel := s.jobContext(ctx)
	defer cancel()

	deleted, err := s.jobs.DeleteExpired(ctx)
	if err != nil {
		log.Printf("定期清理失败: %v\n", err)
		s.update(monitor.ComponentSweep, monitor.StatusDegraded, err.Error())
		return 0, err
	}
	s.update(monitor.ComponentSweep, monitor.StatusHealthy, "")
	return deleted, nil
}

func (s *Scheduler) jobContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.JobTimeout > 0 {
		return context.WithTimeout(ctx, s.opts.JobTimeout)
	}
	return context.WithCancel(ctx)
}

func (s *Scheduler) update(component, status, message string) {
	if s.monitor != nil {
		s.monitor.UpdateStatus(component, status, message)
	}
}
