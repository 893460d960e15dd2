// Package motion drives the surface animation. Once per render frame the
// animator folds the latest voice analysis and tunable settings into the
// uniform set consumed by the displacement and color fields: smoothed shape
// targets, monotonic animation clocks, passive rotation, pointer
// interaction, and a throttled telemetry feed.
package motion
