// Package billing contains the invoice computation engine and the locally
// owned billing configuration entities for the managed-service billing
// platform.
//
// The engine is a pure function over a snapshot of upstream inventory data
// and configuration rows: given identical inputs it produces an identical
// InvoiceResult. It performs no I/O and holds no state between invocations,
// so concurrent computations for different customers need no coordination.
package billing
