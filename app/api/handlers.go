package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bensahar7/howtosolvethis/app/cache"
	"github.com/bensahar7/howtosolvethis/app/episodes"
)

var validCacheTags = map[string]bool{
	cache.TagEpisodes:    true,
	cache.TagMetadata:    true,
	cache.TagTranscripts: true,
}

type Handler struct {
	service  *episodes.Service
	appCache *cache.Cache
	mapping  episodes.Mapping
}

func NewHandler(service *episodes.Service, appCache *cache.Cache, mapping episodes.Mapping) *Handler {
	return &Handler{
		service:  service,
		appCache: appCache,
		mapping:  mapping,
	}
}

// GetEpisodes returns the full enriched episode list, newest first.
// Transcripts are never included here.
func (h *Handler) GetEpisodes(c *gin.Context) {
	episodeList := h.service.GetAll(c.Request.Context())

	c.Header("X-Episode-Count", strconv.Itoa(len(episodeList)))
	c.JSON(http.StatusOK, gin.H{
		"episodes": episodeList,
		"total":    len(episodeList),
	})
}

// GetEpisode returns a single enriched episode with its transcript loaded,
// addressed by the feed's episode number.
func (h *Handler) GetEpisode(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Episode number must be a positive integer"})
		return
	}

	episode, ok := h.service.GetOneWithTranscript(c.Request.Context(), number)
	if !ok {
		slog.Debug("Episode not found", "number", number)
		c.JSON(http.StatusNotFound, gin.H{"error": "Episode not found"})
		return
	}

	c.JSON(http.StatusOK, episode)
}

func (h *Handler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats(c.Request.Context()))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp":      time.Now().In(time.Local).Format(time.RFC3339),
		"cached_entries": h.appCache.Len(),
		"mapped_entries": len(h.mapping),
	})
}

// APIGetMapping exposes the episode-number-to-folder table for operational
// inspection; its correctness is maintained by hand and cannot be verified
// automatically.
func (h *Handler) APIGetMapping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"mapping": h.mapping,
		"total":   len(h.mapping),
	})
}

// APIInvalidateCache drops all cache entries carrying the given tag, forcing
// the next request to re-fetch and re-parse the affected sources.
func (h *Handler) APIInvalidateCache(c *gin.Context) {
	tag := c.Param("tag")
	if !validCacheTags[tag] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown cache tag", "tag": tag})
		return
	}

	removed := h.appCache.Invalidate(tag)
	slog.Info("Cache invalidated", "tag", tag, "removed", removed)

	c.JSON(http.StatusOK, gin.H{
		"tag":     tag,
		"removed": removed,
	})
}
