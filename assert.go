package geobin

import "fmt"

// assertf panics with a formatted message when cond is false. Call sites
// guard it with debugAssertions, which only the geobindebug build tag
// enables.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("geobin: "+format, args...))
	}
}
