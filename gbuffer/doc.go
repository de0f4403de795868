// Package gbuffer packs the parameters of one or more lighting models into
// a minimal set of G-Buffer textures of at most four channels each, and
// emits shader source snippets that read and write those channels under
// stable, generated names.
//
// A Build call is the only entry point: it takes the full set of lighting
// models a renderer intends to support concurrently and returns a GBuffer
// describing where every parameter landed. Two parameters can only share a
// texture's channels if no single lighting model uses both, since a
// fragment shader compiled against one lighting model must be able to
// write its own parameters into the shared texture without disturbing
// another lighting model's occupant of the same channel range.
package gbuffer
