package dbsetup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/webapp-acceptance/pkg/logger"
)

// DbSetup une una operación con su destino.
type DbSetup struct {
	dest Destination
	op   Operation
	log  *logger.Logger
}

// Option configura un DbSetup.
type Option func(*DbSetup)

// WithLogger registra cada lanzamiento en l.
func WithLogger(l *logger.Logger) Option {
	return func(s *DbSetup) { s.log = l }
}

// New construye el setup. Sin logger explícito no registra nada.
func New(dest Destination, op Operation, opts ...Option) *DbSetup {
	s := &DbSetup{dest: dest, op: op, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Statements sentencias que ejecutará Launch.
func (s *DbSetup) Statements() []Statement {
	return s.op.Statements(s.dest.Dialect())
}

// Launch aplica el fixture. Cualquier error de conexión o de constraint se devuelve
// sin reintentos; la transacción garantiza que no queda un fixture a medias.
func (s *DbSetup) Launch(ctx context.Context) error {
	launchID := uuid.NewString()
	stmts := s.Statements()
	start := time.Now()

	if err := s.dest.Apply(ctx, stmts); err != nil {
		s.log.Error().Err(err).
			Str("launch_id", launchID).
			Str("destination", s.dest.Name()).
			Msg("fixture no aplicado")
		return fmt.Errorf("dbsetup %s: %w", s.dest.Name(), err)
	}

	s.log.Debug().
		Str("launch_id", launchID).
		Str("destination", s.dest.Name()).
		Int("statements", len(stmts)).
		Dur("elapsed", time.Since(start)).
		Msg("fixture aplicado")
	return nil
}

// Fingerprint identifica el par (destino, sentencias). Dos setups con el mismo fingerprint
// dejan la base en el mismo estado.
func (s *DbSetup) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%s\x00", s.dest.Name(), s.dest.Dialect())
	for _, st := range s.Statements() {
		fmt.Fprintf(h, "%s\x00%v\x00", st.SQL, st.Args)
	}
	return hex.EncodeToString(h.Sum(nil))
}
