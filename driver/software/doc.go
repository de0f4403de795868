// Package software is a CPU-side stand-in for the driver collaborator
// contract: it allocates Images with no backing storage and records
// every barrier and render-pass call instead of submitting them to a
// device. It exists so the frame graph, its tests, and examples can run
// without a real GPU — it is not, and is not meant to become, a real
// Vulkan backend.
package software
