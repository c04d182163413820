package tasks

import (
	"context"
	"log/slog"

	"github.com/bensahar7/howtosolvethis/app/episodes"
)

// WarmEpisodesTask recomputes the enriched episode list when the cached copy
// has expired, so page renders rarely pay for a cold fetch. Recomputation is
// idempotent; running it concurrently with request-driven recomputes is safe.
type WarmEpisodesTask struct {
	Task
	service *episodes.Service
}

func NewWarmEpisodesTask(service *episodes.Service) *WarmEpisodesTask {
	return &WarmEpisodesTask{
		Task:    NewTask(TaskTypeWarmEpisodes),
		service: service,
	}
}

func (t *WarmEpisodesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	episodeList := t.service.GetAll(ctx)

	slog.Info("Task completed",
		"type", string(t.GetType()),
		"duration", t.GetDuration(),
		"episodes", len(episodeList))

	return nil
}
