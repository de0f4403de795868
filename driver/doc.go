// Package driver defines the external collaborator contract the core
// consumes and nothing more: an opaque GPU-image handle, a command-buffer
// interface that accepts explicit barrier and pass-begin/end calls, and a
// shader-source backing store. It does not implement a Vulkan driver —
// instance/device creation, VkImage/VkBuffer adapters, and swapchain
// management are external collaborators, out of scope for this module.
//
// The software subpackage provides a CPU-side stand-in that implements
// these interfaces by recording calls instead of submitting them to a
// device, for tests and examples to run without a GPU.
package driver
