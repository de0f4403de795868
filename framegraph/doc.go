// Package framegraph builds and executes a per-frame render graph: a
// builder records transient and imported textures and the passes that
// read or write them, then compiles that declaration into a Plan —
// ordered passes, aliased physical textures, and the barriers between
// them — which Plan.Execute drives against a driver.CommandBuffer.
package framegraph
