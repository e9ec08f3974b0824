package fetch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// diskCache persists fetched PMID publications as JSON files, one per
// identifier, in the layout PMID_<digits>_abstract.json. Cache corruption or
// I/O failure is never fatal: a bad read falls through to a fresh fetch and a
// failed write is logged and dropped.
type diskCache struct {
	dir    string
	logger *zap.Logger
}

func newDiskCache(dir string, logger *zap.Logger) *diskCache {
	return &diskCache{dir: dir, logger: logger}
}

func (c *diskCache) path(reference string) string {
	id := strings.TrimPrefix(reference, "PMID:")
	return filepath.Join(c.dir, fmt.Sprintf("PMID_%s_abstract.json", id))
}

func (c *diskCache) get(reference string) (*Publication, bool) {
	data, err := os.ReadFile(c.path(reference))
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("cache read failed",
				zap.String("reference", reference),
				zap.Error(err))
		}
		return nil, false
	}

	var pub Publication
	if err := json.Unmarshal(data, &pub); err != nil {
		c.logger.Warn("cache entry corrupt, refetching",
			zap.String("reference", reference),
			zap.Error(err))
		return nil, false
	}
	return &pub, true
}

func (c *diskCache) put(reference string, pub *Publication) {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		c.logger.Warn("cache dir create failed", zap.String("dir", c.dir), zap.Error(err))
		return
	}

	data, err := json.MarshalIndent(pub, "", "  ")
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("reference", reference), zap.Error(err))
		return
	}

	if err := os.WriteFile(c.path(reference), data, 0o644); err != nil {
		c.logger.Warn("cache write failed", zap.String("reference", reference), zap.Error(err))
	}
}
