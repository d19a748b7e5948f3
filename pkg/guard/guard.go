// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package guard refuses to rename while a local Supabase stack is running.
//
// The Supabase CLI names its containers and volumes after the project id in
// supabase/config.toml. Rewriting that id under a running stack orphans them,
// so the stack has to be stopped first.
package guard

import (
	"context"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// ErrBackendRunning is returned when a checked port accepts connections.
var ErrBackendRunning = errors.Base("local backend is running")

// 🛡️ Guard decides whether it is safe to proceed
type Guard interface {
	Check(ctx context.Context) error
}

// Disabled is a Guard that always allows the run.
type Disabled struct{}

func (Disabled) Check(context.Context) error { return nil }

// DialFunc matches net.Dialer.DialContext.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// 🔌 PortGuard fails when any of its ports is accepting TCP connections
type PortGuard struct {
	Host    string
	Ports   []int
	Timeout time.Duration
	Dial    DialFunc
}

// 🏭 NewPortGuard creates a PortGuard using a net.Dialer
func NewPortGuard(host string, ports []int, timeout time.Duration) *PortGuard {
	d := &net.Dialer{}
	return &PortGuard{
		Host:    host,
		Ports:   ports,
		Timeout: timeout,
		Dial:    d.DialContext,
	}
}

// Check dials every port concurrently and returns ErrBackendRunning, with
// the open ports in the error details, when any of them answers.
func (g *PortGuard) Check(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	var (
		mu   sync.Mutex
		open []int
	)

	group, groupCtx := errgroup.WithContext(ctx)
	for _, port := range g.Ports {
		group.Go(func() error {
			if g.listening(groupCtx, port) {
				mu.Lock()
				open = append(open, port)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return errors.Errorf("probing local backend: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	if len(open) == 0 {
		logger.Debug().Str("host", g.Host).Ints("ports", g.Ports).Msg("no local backend detected")
		return nil
	}

	sort.Ints(open)
	logger.Debug().Str("host", g.Host).Ints("open", open).Msg("local backend detected")

	return errors.WithDetails(
		errors.Errorf("%w on %s ports %v; stop it (supabase stop) or skip this check", ErrBackendRunning, g.Host, open),
		"host", g.Host,
		"ports", open,
	)
}

func (g *PortGuard) listening(ctx context.Context, port int) bool {
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := g.Dial(ctx, "tcp", net.JoinHostPort(g.Host, strconv.Itoa(port)))
	if err != nil {
		zerolog.Ctx(ctx).Trace().Err(err).Int("port", port).Msg("port closed")
		return false
	}
	conn.Close()
	return true
}
