// Package process runs external binaries such as ffmpeg with bounded
// lifetimes. On cancellation the whole process group receives SIGTERM,
// then SIGKILL after a grace period.
package process
