package matrix

import "fmt"

// FontError reports that a font could not be loaded or classified. None of
// the font's combinations are part of the grid.
type FontError struct {
	Font string // font key
	Op   string // "load" or "classify"
	Err  error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("font %s: %s: %v", e.Font, e.Op, e.Err)
}

func (e *FontError) Unwrap() error {
	return e.Err
}
