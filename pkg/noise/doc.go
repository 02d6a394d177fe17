// Package noise provides the seeded continuous noise primitives of the world
// generator: improved Perlin octaves, octave sums, double Perlin noise, 2D
// simplex noise, and the parameter registry naming every noise the router uses.
package noise
