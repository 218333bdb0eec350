package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"market_backend/internal/platform/metrics"
)

const (
	DefaultRefreshInitialDelay = 5 * time.Hour
	DefaultRefreshPeriod       = 5 * time.Hour
)

// RefreshJob はキャッシュキーとその値を再計算して書き込む処理の組です。
type RefreshJob struct {
	Key string
	Run func(ctx context.Context) error
}

// RefreshResult は1回の更新の結果です。Failedはキーごとのエラーメッセージです。
type RefreshResult struct {
	Refreshed []string
	Failed    map[string]string
}

// RefresherConfig は定期更新のスケジュールです。
type RefresherConfig struct {
	InitialDelay time.Duration
	Period       time.Duration
}

// Refresher は集計キャッシュを一定間隔で強制更新します。
type Refresher struct {
	jobs         []RefreshJob
	initialDelay time.Duration
	period       time.Duration
}

// NewRefresher は新しいRefresherを生成します。ゼロ値の設定は既定値になります。
func NewRefresher(cfg RefresherConfig, jobs ...RefreshJob) *Refresher {
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultRefreshInitialDelay
	}
	if cfg.Period <= 0 {
		cfg.Period = DefaultRefreshPeriod
	}
	return &Refresher{jobs: jobs, initialDelay: cfg.InitialDelay, period: cfg.Period}
}

// Start は初回遅延の後、周期ごとにRefreshAllを実行します。ctxがキャンセルされるまでブロックします。
func (r *Refresher) Start(ctx context.Context) {
	slog.Info("cache refresher scheduled", "initial_delay", r.initialDelay, "period", r.period, "keys", len(r.jobs))

	timer := time.NewTimer(r.initialDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}
	r.RefreshAll(ctx)

	ticker := time.NewTicker(r.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("cache refresher stopped")
			return
		case <-ticker.C:
			r.RefreshAll(ctx)
		}
	}
}

// RefreshAll はすべてのキーを強制更新します。
// 1つのキーが失敗（panicを含む）しても残りのキーの処理は続けます。
func (r *Refresher) RefreshAll(ctx context.Context) RefreshResult {
	res := RefreshResult{Refreshed: make([]string, 0, len(r.jobs)), Failed: make(map[string]string)}
	start := time.Now()
	for _, job := range r.jobs {
		if ctx.Err() != nil {
			res.Failed[job.Key] = ctx.Err().Error()
			continue
		}
		if err := runJob(ctx, job); err != nil {
			slog.Error("failed to refresh cache", "key", job.Key, "error", err)
			metrics.RefreshRuns.WithLabelValues(job.Key, "error").Inc()
			res.Failed[job.Key] = err.Error()
			continue
		}
		metrics.RefreshRuns.WithLabelValues(job.Key, "ok").Inc()
		res.Refreshed = append(res.Refreshed, job.Key)
	}
	slog.Info("cache refresh finished", "refreshed", len(res.Refreshed), "failed", len(res.Failed), "elapsed", time.Since(start))
	return res
}

func runJob(ctx context.Context, job RefreshJob) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while refreshing %s: %v", job.Key, rec)
		}
	}()
	return job.Run(ctx)
}
