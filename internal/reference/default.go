//go:build !gmp

package reference

func newDefault() Oracle { return Big{} }
