package keycrypto

import (
	"crypto/elliptic"
	"sort"
)

// curveRegistry maps SEC 2 curve names to the curves this backend can both
// generate and re-read through PKCS#8.
var curveRegistry = map[string]elliptic.Curve{
	"secp224r1": elliptic.P224(),
	"secp256r1": elliptic.P256(),
	"secp384r1": elliptic.P384(),
	"secp521r1": elliptic.P521(),
}

// SupportedCurves returns the sorted names of every curve the backend can
// generate. The key type catalog is built from this list at startup.
func SupportedCurves() []string {
	names := make([]string, 0, len(curveRegistry))
	for name := range curveRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func CurveByName(name string) (elliptic.Curve, bool) {
	curve, found := curveRegistry[name]
	return curve, found
}
