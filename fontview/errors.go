package fontview

import "fmt"

// LoadError is returned if a font cannot be read or its lookup data cannot
// be extracted.
type LoadError struct {
	Font string // font key
	Path string // font file, empty if parsed from memory
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("font %s (%s): %v", e.Font, e.Path, e.Err)
	}
	return fmt.Sprintf("font %s: %v", e.Font, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ShapeError is returned if the shaper fails on a base+mark pair.
type ShapeError struct {
	Font       string
	Base, Mark rune
	Cause      string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("font %s: shaper failed on U+%04X U+%04X: %s", e.Font, e.Base, e.Mark, e.Cause)
}
