// Command acceptance administra el entorno de las pruebas de aceptación: esquema, datasets,
// front end de reemplazo y verificación de la aplicación desplegada.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
