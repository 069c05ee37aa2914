// Package compression applies row, page or no data compression to the heaps
// and indexes of chosen databases through generated REBUILD statements, with
// an optional wall-clock budget checked between objects.
package compression
