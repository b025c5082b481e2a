// Package pkg provides the core libraries for airfoil2d mesh preprocessing.
//
// # Overview
//
// Airfoil2d turns airfoil profiles into 2D CFD meshes. The pkg directory is
// organized into four main areas:
//
//  1. Geometry (geometry, naca, database) - profile acquisition, contour
//     normalization and upper/lower decomposition
//  2. Planning (topology) - the five-block structured C-grid plan
//  3. Backend (kernel) - the geometry/meshing backend contract, a request
//     recorder for tests and a Gmsh .geo script writer
//  4. Orchestration (pipeline) - a single Run that goes from a profile name
//     to a mesh script
//
// # Architecture
//
// The typical data flow:
//
//	NACA code or UIUC database name
//	         ↓
//	    [naca] / [database] (raw profile points)
//	         ↓
//	    [geometry] (normalize, rotate, split, repair, bounds check)
//	         ↓
//	    [topology] (structured runs: block plan with node counts)
//	         ↓
//	    [kernel] (points, curves, surfaces, constraints, fields)
//	         ↓
//	    mesh script + [preview] plot
//
// # Quick Start
//
// Mesh a NACA profile with the script backend:
//
//	import (
//	    "context"
//	    "github.com/cassyr/airfoil2d/pkg/kernel"
//	    "github.com/cassyr/airfoil2d/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(kernel.NewScript(), nil, nil)
//	res, err := runner.Run(context.Background(), pipeline.Options{
//	    Airfoil:    "naca0012",
//	    Structural: true,
//	})
//
// # Main Packages
//
// [geometry] - Points, cyclic contours, normalization to the unit chord,
// upper/lower splitting with blunt trailing-edge repair, and domain-fit
// validation for boundary-layer extrusion.
//
// [naca] - 4-digit NACA profile generator with cosine point spacing.
//
// [database] - Client for the UIUC airfoil coordinate database: listing,
// Selig and Lednicer parsing, retry and on-disk caching.
//
// [topology] - Five-block structured C-grid planning: transfinite node
// counts from boundary-layer growth, block/side layout, Graphviz debug
// output.
//
// [kernel] - Backend contract plus two implementations: [kernel.Recorder]
// records request sequences for tests, [kernel.Script] emits Gmsh .geo
// scripts.
//
// [pipeline] - Orchestration and option validation; one Run covers both the
// unstructured and structured paths.
//
// [preview] - Contour and block-outline plots via gonum/plot.
//
// [cache], [httputil], [errors], [buildinfo] - Supporting infrastructure:
// file-backed caching, HTTP retry, coded errors, build metadata.
//
// [geometry]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/geometry
// [naca]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/naca
// [database]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/database
// [topology]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/topology
// [kernel]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/kernel
// [pipeline]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/pipeline
// [preview]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/preview
// [cache]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/cassyr/airfoil2d/pkg/buildinfo
package pkg
