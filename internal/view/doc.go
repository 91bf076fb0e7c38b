// Package view is the presentation contract of the window manager: it maps
// window state to on-screen frames, hit-tests pointer positions against
// window chrome, the dock and desktop icons, and translates raw pointer
// events into intents. It holds no window state of its own.
package view
