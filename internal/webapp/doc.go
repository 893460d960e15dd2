// Package webapp wires the capture analyzer, the surface animator, and the
// displacement field into one engine for a browser render host. The engine
// advances the pipeline once per frame and evaluates displaced geometry and
// vertex colors on the CPU into flat float32 buffers, so the host only has
// to upload attributes and draw.
package webapp
