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

// Package web serves the application exports as JSON over HTTP.
package web

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/pkg/logger"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the exports as JSON over HTTP",
		Long: `Serve the account, category, transaction and portfolio exports of the
running MoneyMoney application as JSON over HTTP.

The server is read only and binds to localhost by default. Anyone who can
reach it can read the banking data, so choose the bind address with care.`,

		Args: cobra.NoArgs,

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type runner struct {
	address string
	port    int16
}

func (r *runner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.address, "address", "a", "localhost", "listen address")
	cmd.Flags().Int16VarP(&r.port, "port", "p", 9001, "port")
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	client, cfg, err := config.Client(cmd)
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	srv := NewServer(ServerConfig{
		Address: r.address,
		Port:    r.port,
		Client:  client,
		Log:     log,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
