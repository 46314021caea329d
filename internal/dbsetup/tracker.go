package dbsetup

import "context"

// Tracker decide si hace falta relanzar un fixture antes de la siguiente prueba.
// Su vida es la de una suite: se crea una vez y se consulta antes de cada prueba.
// No es seguro para uso concurrente; las pruebas de una suite corren en secuencia.
type Tracker struct {
	last     string
	skipNext bool
	launches int
}

// LaunchIfNecessary lanza setup salvo que la prueba anterior haya llamado a SkipNextLaunch
// y setup sea el mismo que se lanzó la última vez. La marca de salto se consume siempre.
func (t *Tracker) LaunchIfNecessary(ctx context.Context, setup *DbSetup) error {
	fp := setup.Fingerprint()
	skip := t.skipNext && fp == t.last
	t.skipNext = false
	if skip {
		return nil
	}

	t.last = ""
	if err := setup.Launch(ctx); err != nil {
		return err
	}
	t.last = fp
	t.launches++
	return nil
}

// SkipNextLaunch declara que la prueba en curso no modificó la base.
// Solo debe llamarla una prueba de solo lectura.
func (t *Tracker) SkipNextLaunch() {
	t.skipNext = true
}

// ForceNextLaunch anula un SkipNextLaunch pendiente.
func (t *Tracker) ForceNextLaunch() {
	t.skipNext = false
}

// Launches cantidad de lanzamientos efectivos.
func (t *Tracker) Launches() int {
	return t.launches
}
