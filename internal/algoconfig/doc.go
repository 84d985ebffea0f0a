// Package algoconfig holds the active inference configuration: the algorithm
// selected per category, the shader backend per category, the global
// precision, the last classifier output index and the change flag that gates
// the loading indicator while the native library reconfigures.
//
// The Store is owned by the selection coordinator. The inference backend
// only reads snapshots and acknowledges applied changes through
// MarkApplied/MarkAppliedRevision; all transitions share one mutex.
package algoconfig
