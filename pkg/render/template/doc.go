// Package template defines the template engine seam renderers use for page
// chrome. Implementations live in subpackages.
package template
