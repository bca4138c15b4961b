//go:build geobindebug

package geobin

const debugAssertions = true
