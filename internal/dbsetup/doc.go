// Package dbsetup restaura una base de datos a un estado conocido antes de cada prueba.
//
// Una Operation describe qué hacer (borrar todas las filas de unas tablas, insertar un
// conjunto fijo de filas, ejecutar SQL arbitrario) y se compone con SequenceOf:
//
//	op := dbsetup.SequenceOf(
//		dbsetup.DeleteAllFrom("sale_delivery", "sale", "address", "customer"),
//		dbsetup.InsertInto("customer").
//			Columns("vat", "designation", "phone_number").
//			Values(197672337, "JOSE FAUSTINO", 914276732).
//			Build(),
//	)
//	setup := dbsetup.New(dest, op)
//	err := setup.Launch(ctx)
//
// Launch ejecuta todas las sentencias en una sola transacción: o se aplica el fixture
// completo o no se aplica nada. Las sentencias se generan por dialecto; el borrado reinicia
// los identificadores para que dos lanzamientos del mismo fixture produzcan las mismas filas
// con los mismos ids.
//
// Tracker evita relanzar un fixture cuando la prueba anterior declaró no haber modificado
// la base (SkipNextLaunch).
package dbsetup
