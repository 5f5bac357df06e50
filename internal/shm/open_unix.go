//go:build unix

package shm

// Create creates and initializes the region named in opts. Only the side
// that owns the region's lifetime calls Create; the other side calls Open.
func Create(opts Options) (Handle, error) {
	m, err := CreateMapped(opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Open attaches to an existing region without initializing it.
func Open(opts Options) (Handle, error) {
	m, err := OpenMapped(opts)
	if err != nil {
		return nil, err
	}
	return m, nil
}
