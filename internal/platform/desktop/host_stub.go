//go:build !cgo

package desktop

// Run reports that no window backend is compiled in.
func Run(Options) error {
	return ErrNoWindow
}
