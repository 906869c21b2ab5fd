/*
 * Copyright 2025 The DocVault Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package clock provides the chain height source of the registry. Every
// mutating operation reads the current height once when it starts, so the
// height a source reports must never decrease.
package clock

import (
	"errors"
	"sync/atomic"
	"time"
)

// ErrInvalidInterval is returned when the height interval is not positive.
var ErrInvalidInterval = errors.New("height interval must be positive")

// Source provides the current chain height.
type Source interface {
	// Height returns the current chain height.
	Height() uint64
}

// Wall is a height source derived from wall clock time. The height is the
// number of whole intervals elapsed since the genesis time.
type Wall struct {
	genesis  time.Time
	interval time.Duration
}

// NewWall creates a new wall clock height source with the given genesis time
// and interval per height.
func NewWall(genesis time.Time, interval time.Duration) (*Wall, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	return &Wall{
		genesis:  genesis,
		interval: interval,
	}, nil
}

// Height returns the current chain height. Before the genesis time the
// height is zero.
func (w *Wall) Height() uint64 {
	elapsed := time.Since(w.genesis)
	if elapsed < 0 {
		return 0
	}

	return uint64(elapsed / w.interval)
}

// Genesis returns the genesis time of this source.
func (w *Wall) Genesis() time.Time {
	return w.genesis
}

// Interval returns the duration of one height.
func (w *Wall) Interval() time.Duration {
	return w.interval
}

// Manual is a height source advanced by hand. It is used in tests and in
// deployments where an external process drives the height.
type Manual struct {
	height uint64
}

// NewManual creates a new manual height source starting at the given height.
func NewManual(height uint64) *Manual {
	return &Manual{
		height: height,
	}
}

// Height returns the current chain height.
func (m *Manual) Height() uint64 {
	return atomic.LoadUint64(&m.height)
}

// Forward advances the height by the given number of heights and returns
// the new height.
func (m *Manual) Forward(heights uint64) uint64 {
	return atomic.AddUint64(&m.height, heights)
}
