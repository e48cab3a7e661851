// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Reporter logs non-fatal storage failures. A broken disk fails every write,
// so after the first few reports it logs at most once per interval and
// counts what it skipped.
type Reporter struct {
	logger     *zap.Logger
	sometimes  rate.Sometimes
	suppressed atomic.Int64
}

// NewReporter returns a Reporter writing to logger. A nil logger discards.
func NewReporter(logger *zap.Logger) *Reporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{
		logger:    logger,
		sometimes: rate.Sometimes{First: 3, Interval: 10 * time.Second},
	}
}

// Report records that op on key failed with err. The caller carries on with
// its in-memory state.
func (r *Reporter) Report(op, key string, err error) {
	if err == nil {
		return
	}
	logged := false
	r.sometimes.Do(func() {
		logged = true
		r.logger.Warn("storage operation failed",
			zap.String("op", op),
			zap.String("key", key),
			zap.Int64("suppressed", r.suppressed.Swap(0)),
			zap.Error(err),
		)
	})
	if !logged {
		r.suppressed.Add(1)
	}
}
