package constant

// Platform identifies the push channel a device token belongs to.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformLine    Platform = "line"
)

func (p Platform) String() string {
	return string(p)
}

// Valid reports whether p is a known push platform.
func (p Platform) Valid() bool {
	switch p {
	case PlatformIOS, PlatformAndroid, PlatformLine:
		return true
	}
	return false
}
