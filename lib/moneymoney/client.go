// Copyright 2023 Niklas Kohl
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package moneymoney is a typed client for the MoneyMoney application's
// scripting interface. Each operation is one synchronous round trip: render
// a command, submit it through the Executor, decode the property list it
// returns and map it onto domain records. The client holds no state between
// calls and never retries; MoneyMoney's write operations are not known to
// be idempotent, so retrying is the caller's decision.
package moneymoney

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/nkohl/pfennig/lib/moneymoney/plist"
	"github.com/nkohl/pfennig/lib/moneymoney/script"
)

// DefaultApplication is the bundle name commands are addressed to.
const DefaultApplication = "MoneyMoney"

// Executor submits one rendered command to the application and returns its
// raw output. Timeouts and cancellation are the executor's concern, reached
// through ctx; the client passes transport failures through verbatim.
type Executor interface {
	Execute(ctx context.Context, command string) (string, error)
}

// Client issues scripting commands to a MoneyMoney instance.
type Client struct {
	exec         Executor
	application  string
	experimental bool
	log          zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithApplication addresses commands to a differently named application
// bundle, such as a beta build.
func WithApplication(name string) Option {
	return func(c *Client) {
		c.application = name
	}
}

// WithExperimental unlocks the payment order operations. They are gated
// because MoneyMoney documents them as subject to change.
func WithExperimental() Option {
	return func(c *Client) {
		c.experimental = true
	}
}

// WithLogger attaches a logger. Commands are logged at debug level.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New returns a client submitting commands through exec.
func New(exec Executor, opts ...Option) *Client {
	c := &Client{
		exec:        exec,
		application: DefaultApplication,
		log:         zerolog.New(nil).Level(zerolog.Disabled),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With().Str("client", "moneymoney").Logger()
	return c
}

// run performs one round trip and decodes the raw output. Executor failures
// come back as *TransportError, empty output as plist.ErrEmpty; the callers
// decide per operation what empty means.
func (c *Client) run(ctx context.Context, cmd *script.Command) (plist.Node, error) {
	command := cmd.Render(c.application)
	c.log.Debug().Str("command", command).Msg("submitting command")
	out, err := c.exec.Execute(ctx, command)
	if err != nil {
		c.log.Debug().Err(err).Msg("executor failed")
		return nil, &TransportError{Err: err}
	}
	return plist.Decode(out)
}
