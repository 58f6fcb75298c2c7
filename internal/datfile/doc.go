// Package datfile reads Logiqx XML dats into catalogs and writes reduced
// 1G1R dats.
//
// The reader accepts both game and machine elements. The writer emits one
// game element per output title, carrying cloneof only for clones kept in
// legacy mode. OutputName builds the conventional file name that records the
// title count, catalog version, and active options.
package datfile
