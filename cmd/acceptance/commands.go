package main

import (
	"context"
	"fmt"
	"maps"
	"net"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/webapp-acceptance/internal/application/service"
	"github.com/jhoicas/webapp-acceptance/internal/browser"
	"github.com/jhoicas/webapp-acceptance/internal/dbsetup"
	"github.com/jhoicas/webapp-acceptance/internal/fixtures"
	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/database"
	apphttp "github.com/jhoicas/webapp-acceptance/internal/interfaces/http"
	"github.com/jhoicas/webapp-acceptance/internal/webapp"
)

func newSchemaCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Crea las tablas que falten en la base configurada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.openPersistentDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "esquema aplicado en %s\n", db.Name())
			return nil
		},
	}
}

// loadDataset borra todo y carga name en db.
func (e *env) loadDataset(ctx context.Context, db *database.Database, name string) error {
	op, err := fixtures.Default().Reset(name)
	if err != nil {
		return err
	}
	dest, err := db.Destination()
	if err != nil {
		return err
	}
	return dbsetup.New(dest, op, dbsetup.WithLogger(e.log.Named("dbsetup"))).Launch(ctx)
}

func newResetCmd(e *env) *cobra.Command {
	var dataset string
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Vacía las tablas y carga un dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := e.openPersistentDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			if err := e.loadDataset(cmd.Context(), db, dataset); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dataset %s cargado en %s\n", dataset, db.Name())
			return nil
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", fixtures.CustomerSale, "dataset a cargar")
	return cmd
}

func newDatasetsCmd(_ *env) *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "Lista los datasets con sus filas por tabla",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat := fixtures.Default()
			out := cmd.OutOrStdout()
			for _, ds := range cat.Datasets {
				counts, err := cat.RowCounts(ds.Name)
				if err != nil {
					return err
				}
				parts := make([]string, 0, len(counts))
				for _, table := range slices.Sorted(maps.Keys(counts)) {
					parts = append(parts, fmt.Sprintf("%s=%d", table, counts[table]))
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", ds.Name, strings.Join(parts, " "), ds.Description)
			}
			return nil
		},
	}
}

func newServeCmd(e *env) *cobra.Command {
	var dataset string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el front end de reemplazo sobre la base configurada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, err := e.openDB(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			if dataset != "" {
				if err := e.loadDataset(ctx, db, dataset); err != nil {
					return err
				}
			}

			svc := service.New(db.Repos(), db.TxRunner())
			app, err := apphttp.NewApp(e.cfg.App.Name, apphttp.RouterDeps{
				Customers:   svc.Customers,
				Sales:       svc.Sales,
				ContextPath: e.cfg.Webapp.ContextPath,
				Log:         e.log.Named("stub"),
			})
			if err != nil {
				return err
			}

			ln, err := net.Listen("tcp", e.cfg.HTTP.Addr())
			if err != nil {
				return fmt.Errorf("escuchar en %s: %w", e.cfg.HTTP.Addr(), err)
			}
			e.log.Info().
				Str("addr", ln.Addr().String()).
				Str("context_path", e.cfg.Webapp.ContextPath).
				Str("db", db.Name()).
				Msg("front end escuchando")

			errCh := make(chan error, 1)
			go func() { errCh <- app.Listener(ln) }()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}
			e.log.Info().Msg("señal de apagado recibida, cerrando servidor...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := app.ShutdownWithContext(shutdownCtx); err != nil {
				return fmt.Errorf("apagado del servidor: %w", err)
			}
			e.log.Info().Msg("front end detenido")
			return nil
		},
	}
	cmd.Flags().StringVar(&dataset, "dataset", "", "dataset a cargar antes de escuchar")
	return cmd
}

func newPingCmd(e *env) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Abre el índice de la aplicación y exige HTTP 200",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if target == "" {
				target = e.baseURL()
			}
			b, err := browser.New(cmd.Context(), e.cfg.Browser, e.log.Named("browser"))
			if err != nil {
				return err
			}
			defer b.Close()

			c, err := webapp.New(cmd.Context(), b, target)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %q\n", target, c.Index().Title())
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "url", "", "URL del índice (por defecto WEBAPP_URL o el front end local)")
	return cmd
}

// baseURL índice configurado; sin WEBAPP_URL, el de `serve` en HTTP_HOST:HTTP_PORT.
func (e *env) baseURL() string {
	u := e.cfg.Webapp.BaseURL
	if u == "" {
		u = "http://" + e.cfg.HTTP.Addr() + "/" + strings.Trim(e.cfg.Webapp.ContextPath, "/")
	}
	if !strings.HasSuffix(u, "/") {
		u += "/"
	}
	return u
}
