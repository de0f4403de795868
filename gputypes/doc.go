// Package gputypes holds the value types shared by every package in forge:
// pixel formats, pipeline stages, memory access flags and image layouts.
//
// It sits below driver and every other forge package, holding data
// structures with no logic beyond small pure queries (format->component
// type, stage->flag mapping).
package gputypes
