// Package report builds the monthly report view over a ledger snapshot.
//
// Everything here is a pure function of its inputs: the month index, the
// filtered rows and the totals are recomputed on every render and the input
// slice is never modified. The only state is the user's selection, held by
// View.
package report
