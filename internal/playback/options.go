package playback

// DefaultVolume is the initial volume percent.
const DefaultVolume = 50

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithWrap makes Next on the last row go to the first and Previous on the
// first row go to the last.
func WithWrap(wrap bool) Option {
	return func(c *Coordinator) { c.wrap = wrap }
}

// WithSkipUnplayable advances past tracks that fail to load or decode,
// trying each row at most once per run of failures.
func WithSkipUnplayable(skip bool) Option {
	return func(c *Coordinator) { c.skipUnplayable = skip }
}

// WithVolume sets the initial volume percent (clamped to 0-100).
func WithVolume(percent int) Option {
	return func(c *Coordinator) { c.volume = clampVolume(percent) }
}

// WithMuted sets the initial mute state.
func WithMuted(muted bool) Option {
	return func(c *Coordinator) { c.muted = muted }
}
