// Package voice defines the message preset catalog and the interfaces to
// the external voice-cloning and text-to-speech provider. It is the boundary
// between the application core and the provider integration in
// internal/platform/elevenlabs.
package voice
