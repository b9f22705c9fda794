package itinerary

import (
	"context"
	"log/slog"
	"time"

	"backend-trafella/internal/metrics"
	"backend-trafella/internal/poi"
)

// POISource is the POI lookup used for generation. An empty result means
// the destination has no data and is not an error.
type POISource interface {
	ByDestination(ctx context.Context, destination string, interests []string) ([]poi.POI, error)
}

type Options struct {
	CapPerDay   int
	CacheTTL    time.Duration
	MaxTripDays int
}

type Service struct {
	pois    POISource
	cache   Cache
	opts    Options
	log     *slog.Logger
	metrics *metrics.Metrics
}

func NewService(pois POISource, cache Cache, opts Options, logger *slog.Logger, m *metrics.Metrics) *Service {
	if opts.CapPerDay <= 0 {
		opts.CapPerDay = DefaultCapPerDay
	}
	if opts.MaxTripDays <= 0 {
		opts.MaxTripDays = DefaultMaxTripDays
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{pois: pois, cache: cache, opts: opts, log: logger, metrics: m}
}

// Generate returns the itinerary for req, from cache when possible.
// Returned errors are always *Error.
func (s *Service) Generate(ctx context.Context, req Request) (Response, error) {
	started := time.Now()
	resp, outcome, err := s.generate(ctx, req)
	s.metrics.ObserveGeneration(outcome, time.Since(started))
	if err == nil {
		s.log.Info("itinerary.done", "duration_ms", time.Since(started).Milliseconds())
	}
	return resp, err
}

func (s *Service) generate(ctx context.Context, req Request) (Response, string, error) {
	n, err := Normalize(req, s.opts.MaxTripDays)
	if err != nil {
		s.log.Warn("itinerary.invalid_input", "details", AsError(err).Details)
		return Response{}, "invalid_input", err
	}

	key := CacheKey(n)
	s.log.Debug("cache.lookup", "cache_key", key, "destination", n.Destination, "days", n.DaysCount, "interests_count", len(n.Interests))
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.metrics.CacheLookup("error")
			s.log.Error("cache.get_failed", "cache_key", key, "error", err)
			return Response{}, "internal_error", internalError()
		}
		if ok {
			s.metrics.CacheLookup("hit")
			s.log.Info("cache.hit", "cache_key", key)
			return cached, "cache_hit", nil
		}
		s.metrics.CacheLookup("miss")
	}

	pois, err := s.pois.ByDestination(ctx, n.Destination, n.Interests)
	if err != nil {
		s.log.Error("pois.lookup_failed", "destination", n.Destination, "error", err)
		return Response{}, "internal_error", internalError()
	}
	if len(pois) == 0 {
		s.log.Warn("pois.empty", "destination", n.Destination, "interests_count", len(n.Interests))
		return Response{}, "not_found", notFound(n.Destination)
	}

	resp := Response{Days: Cluster(pois, n.DaysCount, s.opts.CapPerDay, n.StartDate)}
	placed := resp.ItemCount()
	if dropped := len(pois) - placed; dropped > 0 {
		s.metrics.DroppedPOIs(dropped)
		s.log.Warn("itinerary.capacity_exceeded", "destination", n.Destination, "dropped", dropped)
	}
	s.log.Info("itinerary.generate.ok", "destination", n.Destination, "days", len(resp.Days), "total_items", placed)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, s.opts.CacheTTL); err != nil {
			s.log.Error("cache.set_failed", "cache_key", key, "error", err)
			return Response{}, "internal_error", internalError()
		}
		s.log.Debug("cache.set", "cache_key", key, "ttl_seconds", int(s.opts.CacheTTL.Seconds()))
	}
	return resp, "ok", nil
}
