// Package models collects the built-in dynamical models: population
// growth, predator-prey ecology, compartmental epidemiology, a spring
// oscillator, and two socio-economic models (Goodwin, Turchin). Each
// model embeds dynamo.Base and supplies only the hooks it needs.
package models
