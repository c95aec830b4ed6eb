// Package dynamo provides the core abstractions for defining and running
// dynamical-systems models over named state variables.
//
// A model is a set of ordinary differential equations written against
// named containers rather than raw vectors:
//
//   - [State]: insertion-ordered mapping from variable name to value
//   - [Flow]: a conserved transfer between two state variables
//   - [Base]: the containers and descriptors every model owns
//   - [Model]: the four hooks a concrete model implements
//   - [Run]: bridges named state to the vector form an integrator needs
//     and reshapes the result back into named time series
//
// # Example
//
//	m := models.NewEcology()
//	if err := dynamo.Run(ctx, m); err != nil {
//		log.Fatal(err)
//	}
//	prey := m.Core().Solution.Series("prey")
//
// # Thread Safety
//
// Model instances are NOT thread-safe. Each model owns its containers
// exclusively; concurrent Run calls on the same model must be serialized
// by the caller.
package dynamo
