package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey keys one rendered output of a resolved update.
	// inputHash identifies the update options and defaults.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render parameters that change artifact bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Scale  float64 `json:"scale,omitempty"`
	Class  string  `json:"class,omitempty"`
}

// DefaultKeyer produces unprefixed keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return digestKey("artifact", inputHash, opts)
}
