// Package catalog loads the function catalog: the set of named
// Haskell functions a diagram may place as blocks, each with its type
// signature.
//
// Catalogs are written in CUE and compiled through the CUE Go API.
// Signatures are validated at compile time by the type parser, so a
// catalog that loads cleanly can always back a diagram build.
package catalog
