// Package api: HTTP route registration and the classification service behind
// it, kept out of the main package so entrypoints stay wiring-only.
package api

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"fs-api/internal/cache"
	"fs-api/internal/check"
	"fs-api/internal/geometry"
	"fs-api/internal/logger"
	"fs-api/internal/metrics"
	"fs-api/internal/refdata"
	"fs-api/pkg/geojson"

	"github.com/redis/go-redis/v9"
)

// First-level cache in front of redis; hot geometries skip both the network
// and the classification.
var localCache = cache.NewLRU(1024, 600)

// CheckResponse is the external result shape. FederalState and FS carry the
// comma-joined report strings; Message carries the no-match sentinel.
type CheckResponse struct {
	FederalState string        `json:"federal_state,omitempty"`
	FS           string        `json:"fs,omitempty"`
	Matches      []check.Match `json:"matches,omitempty"`
	Message      string        `json:"message,omitempty"`
}

// CheckGeoJSON classifies a request body holding the AOI as GeoJSON.
// Background: responses are cached in redis keyed by the body digest; the
// same geometry text always yields the same answer for a given reference set.
func CheckGeoJSON(ctx context.Context, rc *redis.Client, ref *refdata.RefLayer, body []byte, cacheTTLSeconds int) (*CheckResponse, error) {
	tBegin := time.Now()
	metrics.ChecksTotal.Inc()
	sum := sha256.Sum256(body)
	key := "fscheck:" + hex.EncodeToString(sum[:])
	if res, ok := localCache.Get(key); ok {
		metrics.CheckDurationMs.Observe(float64(time.Since(tBegin).Milliseconds()))
		return responseFrom(res), nil
	}
	if rc != nil {
		if s, _ := rc.Get(ctx, key).Result(); s != "" {
			var out CheckResponse
			if json.Unmarshal([]byte(s), &out) == nil {
				metrics.RedisHitsTotal.Inc()
				metrics.CheckDurationMs.Observe(float64(time.Since(tBegin).Milliseconds()))
				return &out, nil
			}
		}
		metrics.RedisMissesTotal.Inc()
	}
	fc, err := geojson.Decode(body)
	if err != nil {
		return nil, err
	}
	var aoi []geometry.Polygon
	for _, f := range fc.Features {
		aoi = append(aoi, geometry.FromGeoJSON(f.Geometry)...)
	}
	if len(aoi) == 0 {
		return nil, fmt.Errorf("api: request carries no polygon geometry")
	}
	res := check.Classify(aoi, ref)
	metrics.MatchedStates.Observe(float64(len(res.Matches)))
	if !res.InGermany() {
		metrics.NotInGermanyTotal.Inc()
	}
	localCache.Set(key, res)
	out := responseFrom(res)
	logger.L().Debug("check_served", "fs", out.FS, "in_germany", res.InGermany())
	if rc != nil {
		ttl := time.Duration(cacheTTLSeconds) * time.Second
		if cacheTTLSeconds <= 0 {
			ttl = time.Hour
		}
		if b, err := json.Marshal(out); err == nil {
			_ = rc.Set(ctx, key, string(b), ttl).Err()
		}
	}
	metrics.CheckDurationMs.Observe(float64(time.Since(tBegin).Milliseconds()))
	return out, nil
}

func responseFrom(res check.Result) *CheckResponse {
	out := &CheckResponse{}
	if res.InGermany() {
		out.FederalState = res.Names()
		out.FS = res.Codes()
		out.Matches = res.Matches
	} else {
		out.Message = check.NotInGermany
	}
	return out
}
