package poller

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	cachepkg "github.com/warden-ai/warden/pkg/cache/sqlite"
	"github.com/warden-ai/warden/pkg/client"
	"github.com/warden-ai/warden/pkg/config"
	"github.com/warden-ai/warden/pkg/history"
	"github.com/warden-ai/warden/pkg/models"
)

const maxConcurrentFetches = 5

// Poller periodically refreshes governance and lineage snapshots for a
// set of agents. Successful governance fetches are written through to
// the cache and appended to history; failures are logged and leave the
// last cached snapshot in place, since a stale snapshot renders better
// than none. Stale in-flight fetches are discarded by context
// cancellation before they reach the classifiers.
type Poller struct {
	client  *client.Client
	cache   *cachepkg.Cache
	history history.Store
	agents  []string

	statusInterval  time.Duration
	lineageInterval time.Duration

	// OnStatus, when set, is called after every successful governance
	// fetch. The watch command uses it to re-render.
	OnStatus func(agentID string, status *models.GovernanceStatus)
}

// New constructs a Poller. cache and hist may be nil to disable
// write-through caching or history recording.
func New(c *client.Client, cache *cachepkg.Cache, hist history.Store, cfg *config.Config) *Poller {
	return &Poller{
		client:          c,
		cache:           cache,
		history:         hist,
		agents:          cfg.Agents,
		statusInterval:  cfg.Poll.StatusInterval,
		lineageInterval: cfg.Poll.LineageInterval,
	}
}

// Run polls until ctx is canceled. Both resource kinds are fetched
// immediately on start, then on their own intervals.
func (p *Poller) Run(ctx context.Context) {
	log.Infof("poller started (status=%s lineage=%s agents=%d)",
		p.statusInterval, p.lineageInterval, len(p.agents))

	p.PollStatusOnce(ctx)
	p.PollLineageOnce(ctx)

	statusTicker := time.NewTicker(p.statusInterval)
	defer statusTicker.Stop()
	lineageTicker := time.NewTicker(p.lineageInterval)
	defer lineageTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("poller stopped")
			return
		case <-statusTicker.C:
			p.PollStatusOnce(ctx)
		case <-lineageTicker.C:
			p.PollLineageOnce(ctx)
		}
	}
}

// PollStatusOnce fetches the governance snapshot for every agent.
func (p *Poller) PollStatusOnce(ctx context.Context) {
	p.forEachAgent(ctx, p.pollStatus)
}

// PollLineageOnce fetches the lineage payload for every agent.
func (p *Poller) PollLineageOnce(ctx context.Context) {
	p.forEachAgent(ctx, p.pollLineage)
}

func (p *Poller) forEachAgent(ctx context.Context, fetch func(ctx context.Context, agentID string)) {
	sem := make(chan struct{}, maxConcurrentFetches)
	var wg sync.WaitGroup
	for _, agentID := range p.agents {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			wg.Wait()
			return
		}
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			defer func() { <-sem }()
			fetch(ctx, id)
		}(agentID)
	}
	wg.Wait()
}

func (p *Poller) pollStatus(ctx context.Context, agentID string) {
	status, err := p.client.GovernanceStatus(ctx, agentID)
	if err != nil {
		log.WithError(err).Warnf("poller: governance fetch failed (agent=%s)", agentID)
		return
	}
	if status != nil && p.cache != nil {
		payload, err := json.Marshal(status)
		if err != nil {
			log.WithError(err).Warnf("poller: encode snapshot failed (agent=%s)", agentID)
		} else if err := p.cache.Put(agentID, cachepkg.KindGovernance, payload); err != nil {
			log.WithError(err).Warnf("poller: cache write failed (agent=%s)", agentID)
		}
	}
	if p.history != nil {
		rec := history.FromStatus(agentID, status, time.Now().UTC())
		if err := p.history.Record(ctx, rec); err != nil {
			log.WithError(err).Warnf("poller: history write failed (agent=%s)", agentID)
		}
	}
	if p.OnStatus != nil {
		p.OnStatus(agentID, status)
	}
}

func (p *Poller) pollLineage(ctx context.Context, agentID string) {
	data, err := p.client.Lineage(ctx, agentID)
	if err != nil {
		log.WithError(err).Warnf("poller: lineage fetch failed (agent=%s)", agentID)
		return
	}
	if data == nil || p.cache == nil {
		return
	}
	payload, err := json.Marshal(data)
	if err != nil {
		log.WithError(err).Warnf("poller: encode lineage failed (agent=%s)", agentID)
		return
	}
	if err := p.cache.Put(agentID, cachepkg.KindLineage, payload); err != nil {
		log.WithError(err).Warnf("poller: cache write failed (agent=%s)", agentID)
	}
}
