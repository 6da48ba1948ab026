// Package launcher starts and supervises the two local processes behind the
// AI_first dashboard: the control/API server and the static file server.
// Its one job is lifecycle coupling: both processes are up together or down
// together, and every exit path runs the same teardown exactly once.
package launcher
