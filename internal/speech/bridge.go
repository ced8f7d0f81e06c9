package speech

// DefaultBridge returns the native speech bridge for the current platform.
// The Speech framework bridge ships with macOS application builds; every
// other target reports unavailable, and callers surface that as an error.
func DefaultBridge() *unsupportedBridge {
	return &unsupportedBridge{}
}

type unsupportedBridge struct{}

func (*unsupportedBridge) Available() bool { return false }

func (*unsupportedBridge) RequestAuthorization(result func(authorized bool)) {
	result(false)
}
