package keyspec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind selects the algorithm family of a resolved key type.
type Kind uint8

const (
	KindRSA Kind = iota
	KindEC
)

func (kind Kind) String() string {
	switch kind {
	case KindRSA:
		return "rsa"
	case KindEC:
		return "ec"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(kind))
	}
}

// Spec is a fully resolved key type. Exactly one of Bits and Curve is
// populated, depending on Kind.
type Spec struct {
	Kind  Kind
	Bits  int    // RSA modulus size in bits
	Curve string // named elliptic curve, lower-case
}

func (spec Spec) String() string {
	if spec.Kind == KindRSA {
		return fmt.Sprintf("rsa%d", spec.Bits)
	}
	return spec.Curve
}

var rsaModulusSizes = [...]int{2048, 3072, 4096}

// Catalog maps user-facing key type tokens to Specs. The curve half of the
// token set comes from the cryptographic backend, so the advertised tokens
// never drift from what the backend can actually generate. Build one with
// New at startup and treat it as read-only.
type Catalog struct {
	curves map[string]struct{}
	tokens []string
}

func New(curveNames []string) Catalog {
	curves := make(map[string]struct{}, len(curveNames))
	for _, name := range curveNames {
		curves[strings.ToLower(name)] = struct{}{}
	}

	sortedCurves := make([]string, 0, len(curves))
	for name := range curves {
		sortedCurves = append(sortedCurves, name)
	}
	sort.Strings(sortedCurves)

	tokens := make([]string, 0, len(rsaModulusSizes)+len(sortedCurves))
	for _, bits := range rsaModulusSizes {
		tokens = append(tokens, "rsa"+strconv.Itoa(bits))
	}
	tokens = append(tokens, sortedCurves...)

	return Catalog{curves: curves, tokens: tokens}
}

// Tokens returns the full set of accepted key type tokens: the RSA sizes
// followed by the backend's curve names, sorted within each group.
func (catalog Catalog) Tokens() []string {
	tokens := make([]string, len(catalog.tokens))
	copy(tokens, catalog.tokens)
	return tokens
}

// Resolve normalizes token and maps it to a Spec. Tokens containing "rsa"
// are RSA key requests and must carry one of the supported modulus sizes as
// their numeric suffix; every other token must name a curve the backend
// supports.
func (catalog Catalog) Resolve(token string) (Spec, error) {
	normalized := strings.ToLower(strings.TrimSpace(token))

	if strings.Contains(normalized, "rsa") {
		bits, err := strconv.Atoi(strings.TrimPrefix(normalized, "rsa"))
		if err != nil {
			return Spec{}, UnsupportedKeyTypeError{Token: token}
		}
		for _, want := range rsaModulusSizes {
			if bits == want {
				return Spec{Kind: KindRSA, Bits: bits}, nil
			}
		}
		return Spec{}, UnsupportedKeyTypeError{Token: token}
	}

	if _, found := catalog.curves[normalized]; found {
		return Spec{Kind: KindEC, Curve: normalized}, nil
	}
	return Spec{}, UnsupportedKeyTypeError{Token: token}
}

type UnsupportedKeyTypeError struct {
	Token string
}

func (err UnsupportedKeyTypeError) Error() string {
	return fmt.Sprintf("unsupported key type %q", err.Token)
}
