//go:build !windows

package keys

// SystemLayout returns nil: there is no live OS layout to query here, so a
// resolver built from it stops at the catalog stage.
func SystemLayout() LayoutContext {
	return nil
}
