/*
Package wm holds the authoritative state of every desktop window.

The identity set is closed: windows are declared when the Registry is built
and are never created or destroyed afterwards. Lifecycle transitions (open,
close, minimize, restore, maximize) and geometry updates are total functions
over that set; out-of-range geometry is normalised rather than rejected.

	reg, err := wm.NewRegistry(windows, wm.Options{Viewport: geom.Size{Width: 1280, Height: 800}})
	if err != nil {
		// duplicate or empty identity in the declaration
	}
	reg.Toggle("about")

Calling a transition with an identity the registry was not built with is a
programming error and panics. Callers that accept identities from outside
the process check Has first.
*/
package wm
