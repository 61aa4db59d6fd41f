// Package pipeline holds the request-handling stages that sit between the
// server and the page handlers. Failsafe is the outermost of them: it turns
// any failure below it into a generic 500 page.
package pipeline
