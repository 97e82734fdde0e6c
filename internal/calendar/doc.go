// Package calendar builds month display grids and resolves date selections.
//
// Everything here is a pure function of its inputs. Hosts keep the displayed
// Month and the current Selection themselves, rebuild grids with BuildMonth on
// every navigation and feed clicks through ResolveClick.
package calendar
