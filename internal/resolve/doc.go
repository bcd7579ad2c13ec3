// Package resolve sequences classification over a project's dependencies and
// hands the resulting batch of type packages to an installer. Lookups may run
// concurrently, but outcomes and the batch always follow manifest order.
package resolve
