// Package view renders the store's HTML pages.
//
// Pages are html/template files embedded in the binary. Every page is
// parsed together with layout.html into its own template set at start-up,
// after which an Engine is immutable and safe for concurrent use.
package view
