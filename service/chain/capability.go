package chain

// Capability is the outcome of probing a bound contract for one of several
// equivalent methods.
type Capability struct {
	method string
}

func Available(method string) Capability {
	return Capability{method: method}
}

func Unavailable() Capability {
	return Capability{}
}

// Method returns the resolved method name, false when unavailable
func (c Capability) Method() (string, bool) {
	return c.method, c.method != ""
}

func (c Capability) IsAvailable() bool {
	return c.method != ""
}

// Detect returns the first candidate the handle's ABI declares
func Detect(h *Handle, candidates ...string) Capability {
	for _, m := range candidates {
		if h.Has(m) {
			return Available(m)
		}
	}
	return Unavailable()
}
