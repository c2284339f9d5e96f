package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/sheet-viz/internal/logger"
)

// PresenceSweeper periodically marks users offline once their last activity
// is older than the session timeout. Read paths already derive presence from
// last_seen_at; the sweeper keeps the stored status column in line with it.
type PresenceSweeper struct {
	sessions       SessionExpirer
	sessionTimeout time.Duration
	interval       time.Duration
	now            func() time.Time
	logger         *logger.Logger
}

func NewPresenceSweeper(sessions SessionExpirer, sessionTimeout, interval time.Duration, logger *logger.Logger) *PresenceSweeper {
	return &PresenceSweeper{
		sessions:       sessions,
		sessionTimeout: sessionTimeout,
		interval:       interval,
		now:            time.Now,
		logger:         logger,
	}
}

func (p *PresenceSweeper) Run(ctx context.Context) {
	if p.interval <= 0 || p.sessionTimeout <= 0 {
		p.logger.Warn().Msg("presence sweeper disabled")
		return
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info().Dur("interval", p.interval).Dur("session_timeout", p.sessionTimeout).Msg("presence sweeper started")
	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("presence sweeper stopped")
			return
		case <-ticker.C:
			p.sweep(ctx)
		}
	}
}

func (p *PresenceSweeper) sweep(ctx context.Context) {
	cutoff := p.now().Add(-p.sessionTimeout)

	expired, err := p.sessions.ExpireSessions(ctx, cutoff)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Err(err).Msg("failed to expire sessions")
		}
		return
	}

	if expired > 0 {
		p.logger.Debug().Int64("expired", expired).Time("cutoff", cutoff).Msg("sessions marked offline")
	}
}
