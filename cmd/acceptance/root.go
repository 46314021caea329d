package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/webapp-acceptance/internal/infrastructure/database"
	"github.com/jhoicas/webapp-acceptance/pkg/config"
	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// env configuración y logger compartidos por los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func newRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:          "acceptance",
		Short:        "Entorno de pruebas de aceptación de la aplicación de clientes y ventas",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			e.cfg = cfg
			e.log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
			return nil
		},
	}
	root.AddCommand(
		newSchemaCmd(e),
		newResetCmd(e),
		newDatasetsCmd(e),
		newServeCmd(e),
		newPingCmd(e),
	)
	return root
}

// errMemoryDB schema y reset sobre una base que desaparece al terminar el comando.
var errMemoryDB = errors.New("la base sqlite en memoria se descarta al salir; defina SQLITE_PATH con un archivo")

// openPersistentDB como openDB, pero rechaza las bases en memoria.
func (e *env) openPersistentDB(ctx context.Context) (*database.Database, error) {
	if e.cfg.DB.InMemory() {
		return nil, errMemoryDB
	}
	return e.openDB(ctx)
}

// openDB abre la base configurada con el esquema creado.
func (e *env) openDB(ctx context.Context) (*database.Database, error) {
	db, err := database.Open(ctx, e.cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("crear esquema: %w", err)
	}
	return db, nil
}
