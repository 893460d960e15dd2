// Package field implements the procedural surface field: a pure mapping from
// surface position, animation clocks, and pointer-interaction state to a
// scalar displacement and an RGB color.
//
// The functions here carry no state beyond the parameters supplied per frame.
// The rendering host decides how to execute them (per-vertex on the CPU, or
// as a template for a shader program); tests run them directly.
package field
