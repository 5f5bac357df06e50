//go:build js && wasm

package shm

// Create initializes the static region once and returns a handle to it.
// opts is accepted for symmetry with file-backed targets; there is only one
// region per linear memory.
func Create(_ Options) (Handle, error) {
	return InitStatic(), nil
}

// Open attaches to the static region, failing with ErrNotInitialized until
// Create has run.
func Open(_ Options) (Handle, error) {
	s, err := AttachStatic()
	if err != nil {
		return nil, err
	}
	return s, nil
}
