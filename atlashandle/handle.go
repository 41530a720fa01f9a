// Package atlashandle defines the atlas handle type shared between the
// assets package (an InAtlas asset holds one) and the atlas package (which
// allocates them). It is split into its own leaf package because the two
// would otherwise import each other (spec §3 "AtlasHandle").
package atlashandle

import "github.com/dlraster/dlraster/au"

// Handle is a reference to an allocated rect inside the atlas texture.
// Go's garbage collector gives it the "shared, reference-counted" lifetime
// spec §3 asks for: whoever still holds a *Handle keeps it alive, and
// nothing needs an explicit refcount.
type Handle struct {
	Rect au.RectU
}
