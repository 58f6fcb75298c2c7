// Package textutil provides text helpers shared by the dat writer and the
// audit reports.
//
// The primary use cases are:
//   - Sanitizing output file names derived from catalog metadata
//   - Ordering release names the way people read them ("Disc 2" before
//     "Disc 10")
package textutil
