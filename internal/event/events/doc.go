// Package events defines the topic constants and payload types
// published on the bus. Topics are hierarchical: "reveal.*" for engine
// output, "pointer.*" for raw input, "config.*" for configuration
// changes, "app.*" for lifecycle.
package events
